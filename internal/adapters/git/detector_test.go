package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initTestRepo(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "pomo-git-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	repo, err := git.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}

	testFile := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if _, err := worktree.Add("test.txt"); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}
	if _, err := worktree.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
		},
	}); err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	return tmpDir
}

func TestNewDetector(t *testing.T) {
	d := NewDetector()
	if d == nil {
		t.Fatal("NewDetector() returned nil")
	}
}

func TestDetector_Detect(t *testing.T) {
	tmpDir := initTestRepo(t)

	d := NewDetector()
	info, err := d.Detect(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info == nil {
		t.Fatal("Detect() returned nil info")
	}

	// go-git initializes on master by default
	if info.Branch != "master" && info.Branch != "main" {
		t.Errorf("Unexpected branch: %s", info.Branch)
	}
}

func TestDetector_Detect_FromSubdirectory(t *testing.T) {
	tmpDir := initTestRepo(t)
	subDir := filepath.Join(tmpDir, "level1", "level2")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	d := NewDetector()
	info, err := d.Detect(context.Background(), subDir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Branch != "master" && info.Branch != "main" {
		t.Errorf("Unexpected branch: %s", info.Branch)
	}
}

func TestDetector_Detect_NoGitRepo(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "pomo-git-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	d := NewDetector()
	if _, err := d.Detect(context.Background(), tmpDir); err == nil {
		t.Error("Expected error when no git repo exists")
	}
}

func TestFindGitRepo(t *testing.T) {
	tmpDir := initTestRepo(t)
	subDir := filepath.Join(tmpDir, "level1", "level2")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	found, err := findGitRepo(subDir)
	if err != nil {
		t.Fatalf("findGitRepo() error = %v", err)
	}
	if found != tmpDir {
		t.Errorf("Expected repo at %s, found at %s", tmpDir, found)
	}
}

func TestFindGitRepo_NotFound(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "pomo-git-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	if _, err := findGitRepo(tmpDir); err == nil {
		t.Error("Expected error when no git repo exists")
	}
}
