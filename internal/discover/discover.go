// Package discover locates the store file by walking ancestor directories.
//
// The original behavior is an upward search from the working directory: the
// nearest ancestor containing a readable file with the store's name is the
// store's home. The walk here is purely lexical over absolute paths; it never
// changes the process working directory, so a failed search trivially leaves
// the caller where it started.
package discover

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dukaforge/ftag/pkg/types"
)

// Locate walks upward from startDir looking for a readable regular file
// named filename. It returns the directory containing the file, or
// types.ErrStoreNotFound once the filesystem root has been searched.
//
// filename must be a bare name, not a path.
func Locate(startDir, filename string) (string, error) {
	if filepath.Base(filename) != filename {
		return "", fmt.Errorf("store filename %q must not contain a path separator", filename)
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		if readableFile(filepath.Join(dir, filename)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the filesystem root.
			return "", types.ErrStoreNotFound
		}
		dir = parent
	}
}

// LocateFromWorkingDir runs Locate starting at the process working directory.
func LocateFromWorkingDir(filename string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return Locate(cwd, filename)
}

// readableFile reports whether path names a regular file the process can
// open for reading. A directory or an unreadable file does not stop the walk.
func readableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
