// Package fileutils provides small file-system helpers used by the loader
// and the CLI.
package fileutils

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Extension returns the lower-cased file extension including the dot,
// e.g. ".csv" for "Orders.CSV".
func Extension(filePath string) string {
	return strings.ToLower(filepath.Ext(filePath))
}
