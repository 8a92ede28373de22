// Package config provides configuration management for pomo.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the pomo application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// TimerConfig holds the countdown and goal settings.
type TimerConfig struct {
	FocusMinutes      int     `mapstructure:"focus_minutes"`
	ShortBreakMinutes int     `mapstructure:"short_break_minutes"`
	LongBreakMinutes  int     `mapstructure:"long_break_minutes"`
	AutoStartBreaks   bool    `mapstructure:"auto_start_breaks"`
	AutoStartFocus    bool    `mapstructure:"auto_start_focus"`
	GoalHours         float64 `mapstructure:"goal_hours"`
	CycleDisplayCount int     `mapstructure:"cycle_display_count"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds theme customization settings.
type ThemeConfig struct {
	ColorFocus         string `mapstructure:"color_focus"`
	ColorBreak         string `mapstructure:"color_break"`
	ColorPaused        string `mapstructure:"color_paused"`
	ColorHelp          string `mapstructure:"color_help"`
	FocusGradientStart string `mapstructure:"focus_gradient_start"`
	FocusGradientEnd   string `mapstructure:"focus_gradient_end"`
	BreakGradientStart string `mapstructure:"break_gradient_start"`
	BreakGradientEnd   string `mapstructure:"break_gradient_end"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:         "#E05252",
		ColorBreak:         "#4ECDC4",
		ColorPaused:        "#6B7280",
		ColorHelp:          "#95A5A6",
		FocusGradientStart: "#E05252",
		FocusGradientEnd:   "#F29C9C",
		BreakGradientStart: "#4ECDC4",
		BreakGradientEnd:   "#2ECC71",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			FocusMinutes:      25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			AutoStartBreaks:   false,
			AutoStartFocus:    false,
			GoalHours:         4.0,
			CycleDisplayCount: 4,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: "~/.pomo",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.pomo" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".pomo")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("timer.focus_minutes", cfg.Timer.FocusMinutes)
	viper.Set("timer.short_break_minutes", cfg.Timer.ShortBreakMinutes)
	viper.Set("timer.long_break_minutes", cfg.Timer.LongBreakMinutes)
	viper.Set("timer.auto_start_breaks", cfg.Timer.AutoStartBreaks)
	viper.Set("timer.auto_start_focus", cfg.Timer.AutoStartFocus)
	viper.Set("timer.goal_hours", cfg.Timer.GoalHours)
	viper.Set("timer.cycle_display_count", cfg.Timer.CycleDisplayCount)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.color_focus", cfg.Theme.ColorFocus)
	viper.Set("theme.color_break", cfg.Theme.ColorBreak)
	viper.Set("theme.color_paused", cfg.Theme.ColorPaused)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("theme.focus_gradient_start", cfg.Theme.FocusGradientStart)
	viper.Set("theme.focus_gradient_end", cfg.Theme.FocusGradientEnd)
	viper.Set("theme.break_gradient_start", cfg.Theme.BreakGradientStart)
	viper.Set("theme.break_gradient_end", cfg.Theme.BreakGradientEnd)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomo.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("timer.focus_minutes", 25)
	viper.SetDefault("timer.short_break_minutes", 5)
	viper.SetDefault("timer.long_break_minutes", 15)
	viper.SetDefault("timer.auto_start_breaks", false)
	viper.SetDefault("timer.auto_start_focus", false)
	viper.SetDefault("timer.goal_hours", 4.0)
	viper.SetDefault("timer.cycle_display_count", 4)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("storage.data_dir", "~/.pomo")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_focus", defaults.ColorFocus)
	viper.SetDefault("theme.color_break", defaults.ColorBreak)
	viper.SetDefault("theme.color_paused", defaults.ColorPaused)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
	viper.SetDefault("theme.focus_gradient_start", defaults.FocusGradientStart)
	viper.SetDefault("theme.focus_gradient_end", defaults.FocusGradientEnd)
	viper.SetDefault("theme.break_gradient_start", defaults.BreakGradientStart)
	viper.SetDefault("theme.break_gradient_end", defaults.BreakGradientEnd)
}
