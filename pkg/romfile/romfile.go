// Package romfile loads CHIP-8 program images from disk.
package romfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Read loads the program image at relPath.
func Read(relPath string) ([]byte, error) {
	fullPath, _, err := PathInfo(relPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}
	return data, nil
}

// PathInfo resolves relPath to an absolute path (resolving ../../ and
// cleaning it) and returns it with the directory containing the file.
func PathInfo(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	parentDir = filepath.Dir(fullPath)
	return fullPath, parentDir, nil
}

// Name returns the bare rom name, the base of path with its extension
// stripped. It is used for window titles and screenshot file names.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
