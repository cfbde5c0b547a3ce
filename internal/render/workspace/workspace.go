package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Prefix is prepended to every workspace directory name
	Prefix = "manim-server-"
	// SourceFile is the fixed name the script is written to
	SourceFile = "manim_note.py"
	// MediaDir is where the engine writes its output, relative to the workspace
	MediaDir = "media"
)

// Workspace is a per-request scratch directory
type Workspace struct {
	Dir string
}

// New allocates a fresh, uniquely named directory under root.
// An empty root means the OS temp directory.
func New(root string) (*Workspace, error) {
	dir, err := os.MkdirTemp(root, Prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{Dir: dir}, nil
}

// WriteSource writes the script verbatim and returns its absolute path
func (w *Workspace) WriteSource(code string) (string, error) {
	path := filepath.Join(w.Dir, SourceFile)
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return "", fmt.Errorf("failed to write source: %w", err)
	}
	return path, nil
}

// MediaPath is the root of the engine's output tree
func (w *Workspace) MediaPath() string {
	return filepath.Join(w.Dir, MediaDir)
}

// Cleanup removes the whole workspace tree
func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.Dir)
}
