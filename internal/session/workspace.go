package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace bridges configuration settings with local file organization.
// It handles directory creation and path resolution for saved games,
// independent of the record storage mechanism.
type Workspace struct {
	GamesDir string
}

// NewWorkspace returns a workspace rooted at the specified directory.
func NewWorkspace(gamesDir string) *Workspace {
	return &Workspace{GamesDir: gamesDir}
}

// GamePath produces the directory of one saved game.
func (w *Workspace) GamePath(name string) string {
	return filepath.Join(w.GamesDir, name)
}

// RecordPath returns the path to the JSONL record file for a game.
func (w *Workspace) RecordPath(name string) string {
	return filepath.Join(w.GamePath(name), "record.jsonl")
}

// JournalPath returns the path to the text journal file for a game.
func (w *Workspace) JournalPath(name string) string {
	return filepath.Join(w.GamePath(name), "journal.txt")
}

// Create generates the directory structure for a new game and returns the
// record file path (the caller opens it with the appropriate store).
func (w *Workspace) Create(name string) (string, error) {
	path := w.GamePath(name)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return w.RecordPath(name), nil
}

// Load verifies the game directory exists and returns the record file
// path.
func (w *Workspace) Load(name string) (string, error) {
	path := w.GamePath(name)
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return "", fmt.Errorf("game folder not found: %s", path)
	}
	return w.RecordPath(name), nil
}
