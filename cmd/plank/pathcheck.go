package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/plank/internal/config"
	"github.com/hpungsan/plank/internal/errors"
)

// validateExportPath restricts where the export command may write. The
// output must be an .html file without traversal segments, located under
// the working directory or one of the configured allowed_paths, unless
// allow_unsafe_paths is set.
func validateExportPath(path string, cfg *config.Config) error {
	if path == "" {
		return errors.NewInvalidRequest("output path is required")
	}
	if containsTraversal(path) {
		return errors.NewInvalidRequest("output path must not contain directory traversal (..)")
	}

	cleaned := filepath.Clean(path)
	if filepath.Ext(cleaned) != ".html" {
		return errors.NewInvalidRequest("output path must have .html extension")
	}

	absPath, err := filepath.Abs(cleaned)
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid output path: %v", err))
	}

	if cfg != nil && cfg.AllowUnsafePaths {
		return nil
	}

	allowed := allowedDirs(cfg)
	for _, dir := range allowed {
		if underDir(absPath, dir) {
			return nil
		}
	}
	return errors.NewUnsafePath(path)
}

// allowedDirs is the working directory plus the absolute allowed_paths
// entries from config.
func allowedDirs(cfg *config.Config) []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if cfg != nil {
		for _, p := range cfg.AllowedPaths {
			if filepath.IsAbs(p) {
				dirs = append(dirs, filepath.Clean(p))
			}
		}
	}
	return dirs
}

func underDir(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

// containsTraversal reports whether any path segment is "..".
func containsTraversal(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
