package utils

import (
	"os"
	"path/filepath"

	"github.com/funvibe/ollang/internal/config"
)

// ResolveImportPath joins a relative import path onto baseDir. Absolute
// paths and an empty baseDir leave the path unchanged.
func ResolveImportPath(baseDir, importPath string) string {
	if filepath.IsAbs(importPath) || baseDir == "" || baseDir == "." {
		return importPath
	}
	return filepath.Join(baseDir, importPath)
}

// ExtractModuleName derives a module name from a file path.
// It takes the base filename and removes any recognized source extension.
func ExtractModuleName(path string) string {
	name := filepath.Base(path)
	return config.TrimSourceExt(name)
}

// IsRegularFile reports whether path names an existing non-directory.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
