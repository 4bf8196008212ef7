// Package paths normalizes and validates filesystem paths for a scan.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	discoerrors "jdisco/internal/errors"
)

// EnsureRoot validates that root exists and is a directory, returning its
// absolute form. On failure it returns the fatal PATH_NOT_FOUND error.
func EnsureRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", discoerrors.New(discoerrors.PathNotFound, "invalid scan root", err).WithPath(root)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", discoerrors.New(discoerrors.PathNotFound, "scan root does not exist", err).WithPath(abs)
	}
	if !info.IsDir() {
		return "", discoerrors.New(discoerrors.PathNotFound, "scan root is not a directory", nil).WithPath(abs)
	}

	return abs, nil
}

// Relative converts an absolute path to a root-relative canonical path:
// forward slashes, no leading separator. Paths outside the root fall back to
// the normalized absolute path.
func Relative(absolutePath, root string) string {
	rel, err := filepath.Rel(root, absolutePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(absolutePath)
	}
	return filepath.ToSlash(rel)
}

// Extension returns the lower-cased file suffix including the dot,
// or "" when the name has none.
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// ProjectName derives the analyzed project's display name from its root path.
func ProjectName(root string) string {
	base := filepath.Base(filepath.Clean(root))
	if base == "." || base == string(filepath.Separator) {
		return "project"
	}
	return base
}
