// Package filex contains local-filesystem helpers for the object storage
// gateway: path validation against a restrictive character allow-list and
// handling of the local downloads directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// validPathPattern is the character allow-list applied to local file paths
// and folder names before they take part in any storage operation.
var validPathPattern = regexp.MustCompile(`^[a-zA-Z0-9 _\-/\\.]+$`)

// ValidPath reports whether p contains only allow-listed characters.
// Empty strings are not valid paths.
func ValidPath(p string) bool {
	if p == "" {
		return false
	}
	return validPathPattern.MatchString(p)
}

// EnsureSubDir creates (if needed) a subdirectory of the current working
// directory and returns its absolute path.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// Exists reports whether a file or directory is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
