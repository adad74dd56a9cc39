// Package filex prepares on-disk locations used by the console.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path, so that a
// database file can be opened there. Paths without a directory component
// and sqlite ":memory:" DSNs are left alone.
func EnsureParentDir(path string) (string, error) {
	if path == "" || path == ":memory:" {
		return "", nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
