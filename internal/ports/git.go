package ports

import "context"

// GitInfo describes the repository context a focus session ran in.
type GitInfo struct {
	Branch string
}

// GitDetector detects git context for the working directory.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect returns the git context for workingDir, or an error when
	// no repository is found.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable reports whether detection can be attempted at all.
	IsAvailable() bool
}
