package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirStatus reports whether a directory exists and accepts writes.
type DirStatus struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists reports whether path can be stat'ed.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir and its parents if missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SaveTOMLFile encodes v as TOML into path, truncating any existing file.
func SaveTOMLFile(v any, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// AbsolutePath returns path made absolute, or "unknown" when empty.
func AbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// ExecutableDir returns the directory of the running binary with symlinks
// resolved.
func ExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath), nil
}

// CheckDirStatus creates dir if needed and probes it for write access.
func CheckDirStatus(dir string) DirStatus {
	status := DirStatus{}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		status.Error = err
		log.Warnf("Cannot create directory %s: %v", dir, err)
		return status
	}
	status.Exists = true

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		log.Debugf("Directory %s is not writable: %v", dir, err)
		return status
	}
	os.Remove(probe)
	status.Writable = true
	return status
}
