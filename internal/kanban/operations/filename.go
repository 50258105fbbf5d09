package operations

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ExportBaseName is the default name of an exported board file, without extension
const ExportBaseName = "kanban-board"

// UniqueFilename finds a file name in dir that does not exist yet.
// If base+ext exists, tries base_2+ext, base_3+ext, etc.
func UniqueFilename(base, ext, dir string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	candidate := base + ext
	if !fileExists(filepath.Join(dir, candidate)) {
		return candidate
	}

	for i := 2; ; i++ {
		candidate = base + "_" + strconv.Itoa(i) + ext
		if !fileExists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
