// Package utils contains general helper functions used across ilnav.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	fileURLPrefix = "file://"
	schemeMarker  = "://"
	pathSeparator = "/"
)

// DeduplicatePatterns removes duplicate and blank entries from a slice while preserving order.
// The first occurrence of each unique entry is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// LocalURL converts a local file system path into a file URL understood by afs.
// Values that already carry a scheme are returned unchanged.
func LocalURL(location string) string {
	if strings.Contains(location, schemeMarker) {
		return location
	}
	if !filepath.IsAbs(location) {
		if absolutePath, absoluteError := filepath.Abs(location); absoluteError == nil {
			location = absolutePath
		}
	}
	slashed := filepath.ToSlash(location)
	if !strings.HasPrefix(slashed, pathSeparator) {
		slashed = pathSeparator + slashed
	}
	return fileURLPrefix + slashed
}

// ExecutableDirectory returns the directory holding the running binary.
func ExecutableDirectory() (string, error) {
	executablePath, executableError := os.Executable()
	if executableError != nil {
		return "", executableError
	}
	resolvedPath, resolveError := filepath.EvalSymlinks(executablePath)
	if resolveError != nil {
		resolvedPath = executablePath
	}
	return filepath.Dir(resolvedPath), nil
}
