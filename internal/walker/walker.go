// Package walker enumerates the regular files under a scan root.
//
// The walk is recursive and lazy: each discovered file is handed to the
// caller's visit function before the next directory entry is read. Symbolic
// links are followed at most once per real path, so mutually linked
// directories terminate instead of recursing forever.
package walker

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"jdisco/internal/paths"
)

// FileRecord describes one discovered regular file.
type FileRecord struct {
	AbsolutePath string `json:"absolutePath"`
	RelativePath string `json:"relativePath"` // root-relative, forward slashes, no leading separator
	Extension    string `json:"extension"`    // lower-cased suffix including the dot
	Size         int64  `json:"size"`
}

// VisitFunc receives each discovered file. Returning an error aborts the walk.
type VisitFunc func(FileRecord) error

// Walker walks a directory tree yielding FileRecords.
type Walker struct {
	root     string
	logger   *slog.Logger
	skipDirs map[string]bool
}

// DefaultSkipDirs are directory names never descended into. They hold build
// output or metadata, not analyzable sources.
func DefaultSkipDirs() []string {
	return []string{".git", ".svn", ".hg", ".jdisco", "node_modules", "target", "build", "output"}
}

// New creates a Walker for the given root. The root is validated lazily by
// Walk so construction never fails.
func New(root string, logger *slog.Logger, skipDirs []string) *Walker {
	if skipDirs == nil {
		skipDirs = DefaultSkipDirs()
	}
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}
	return &Walker{
		root:     root,
		logger:   logger,
		skipDirs: skip,
	}
}

// Walk visits every regular file under the root exactly once, in
// deterministic (lexical per-directory) order. It fails with PATH_NOT_FOUND
// when the root is missing or not a directory; unreadable entries below the
// root are skipped with a warning.
func (w *Walker) Walk(ctx context.Context, visit VisitFunc) error {
	root, err := paths.EnsureRoot(w.root)
	if err != nil {
		return err
	}

	// Real paths already seen, directories and files alike. Protects against
	// symlink cycles and against symlink aliases of regular files.
	visited := make(map[string]bool)
	return w.walkDir(ctx, root, root, visited, visit)
}

func (w *Walker) walkDir(ctx context.Context, root, dir string, visited map[string]bool, visit VisitFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		w.logger.Warn("Skipping unresolvable directory", "dir", dir, "error", err)
		return nil
	}
	if visited[real] {
		return nil
	}
	visited[real] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Warn("Skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)

		// Resolve symlinks so linked files and directories are handled by
		// what they point at, not by the link itself.
		info, err := os.Stat(full)
		if err != nil {
			w.logger.Warn("Skipping unreadable entry", "path", full, "error", err)
			continue
		}

		if info.IsDir() {
			if w.skipDirs[name] {
				continue
			}
			if err := w.walkDir(ctx, root, full, visited, visit); err != nil {
				return err
			}
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}

		// A file reachable both directly and through a symlink alias must
		// yield exactly one record.
		real, err := filepath.EvalSymlinks(full)
		if err != nil {
			w.logger.Warn("Skipping unresolvable entry", "path", full, "error", err)
			continue
		}
		if visited[real] {
			continue
		}
		visited[real] = true

		rec := FileRecord{
			AbsolutePath: full,
			RelativePath: paths.Relative(full, root),
			Extension:    paths.Extension(name),
			Size:         info.Size(),
		}
		if err := visit(rec); err != nil {
			return err
		}
	}

	return nil
}
