package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// tableExtensions are tried, in order, for a table path given without one.
var tableExtensions = []string{".bin", ".mpk", ".txt"}

// TableCandidates lists where a syllable table named by path may live:
// the path itself, then relative to the working directory, the executable
// and its data/ directories, and the config directory.
func TableCandidates(path, configDir string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if execDir, err := ExecutableDir(); err == nil {
		dirs = append(dirs, execDir, filepath.Join(execDir, "data"), filepath.Join(filepath.Dir(execDir), "data"))
	}
	if configDir != "" {
		dirs = append(dirs, configDir)
	}

	candidates := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		candidates = append(candidates, filepath.Join(dir, path))
	}
	return candidates
}

// ResolveTablePath returns the first existing candidate for path. A name
// without an extension also matches the compiled and text table formats. If
// nothing exists the path is returned unchanged so the caller can report it.
func ResolveTablePath(path, configDir string) string {
	for _, candidate := range TableCandidates(path, configDir) {
		if isFile(candidate) {
			log.Debugf("Resolved table %s to %s", path, candidate)
			return candidate
		}
		if filepath.Ext(candidate) != "" {
			continue
		}
		for _, ext := range tableExtensions {
			if isFile(candidate + ext) {
				log.Debugf("Resolved table %s to %s", path, candidate+ext)
				return candidate + ext
			}
		}
	}
	log.Debugf("No table found for %s", path)
	return path
}

func isFile(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}
