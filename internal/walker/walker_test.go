package walker

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"jdisco/internal/slogutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func collect(t *testing.T, root string, skipDirs []string) []FileRecord {
	t.Helper()
	w := New(root, slogutil.NewDiscardLogger(), skipDirs)
	var records []FileRecord
	err := w.Walk(context.Background(), func(rec FileRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	return records
}

func TestWalkVisitsEveryFileOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "A.java"), "class A {}")
	writeFile(t, filepath.Join(root, "src", "sub", "B.java"), "class B {}")
	writeFile(t, filepath.Join(root, "web", "index.xhtml"), "<html/>")
	writeFile(t, filepath.Join(root, "db.properties"), "jdbc.url=x")

	records := collect(t, root, nil)

	seen := map[string]int{}
	for _, rec := range records {
		seen[rec.RelativePath]++
	}
	want := []string{"db.properties", "src/A.java", "src/sub/B.java", "web/index.xhtml"}
	if len(seen) != len(want) {
		t.Fatalf("visited %d distinct files, want %d: %v", len(seen), len(want), seen)
	}
	for _, rel := range want {
		if seen[rel] != 1 {
			t.Errorf("file %s visited %d times, want 1", rel, seen[rel])
		}
	}
}

func TestWalkDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "c", "d.txt"), "d")

	first := collect(t, root, nil)
	second := collect(t, root, nil)

	if len(first) != len(second) {
		t.Fatalf("walks disagree on count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].RelativePath != second[i].RelativePath {
			t.Errorf("position %d: %s vs %s", i, first[i].RelativePath, second[i].RelativePath)
		}
	}
	if !sort.SliceIsSorted(first, func(i, j int) bool {
		return first[i].RelativePath < first[j].RelativePath
	}) {
		t.Errorf("walk order not sorted: %v", first)
	}
}

func TestWalkSkipsConfiguredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "A.java"), "class A {}")
	writeFile(t, filepath.Join(root, "target", "A.class"), "bytecode")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref")

	records := collect(t, root, DefaultSkipDirs())

	for _, rec := range records {
		if rec.RelativePath != "src/A.java" {
			t.Errorf("unexpected file visited: %s", rec.RelativePath)
		}
	}
	if len(records) != 1 {
		t.Fatalf("visited %d files, want 1", len(records))
	}
}

func TestWalkMissingRoot(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope"), slogutil.NewDiscardLogger(), nil)
	err := w.Walk(context.Background(), func(FileRecord) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWalkRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	writeFile(t, file, "x")

	w := New(file, slogutil.NewDiscardLogger(), nil)
	err := w.Walk(context.Background(), func(FileRecord) error { return nil })
	if err == nil {
		t.Fatal("expected error when root is a regular file")
	}
}

func TestWalkSymlinkCycleTerminates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "A.java"), "class A {}")
	// Link back to the root from inside the tree.
	if err := os.Symlink(root, filepath.Join(root, "src", "loop")); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	records := collect(t, root, nil)

	count := 0
	for _, rec := range records {
		if filepath.Base(rec.RelativePath) == "A.java" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("A.java visited %d times through symlink cycle, want 1", count)
	}
}

func TestWalkFileSymlinkAliasVisitedOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	target := filepath.Join(root, "src", "A.java")
	writeFile(t, target, "class A {}")
	if err := os.Symlink(target, filepath.Join(root, "src", "Alias.java")); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	records := collect(t, root, nil)

	if len(records) != 1 {
		t.Fatalf("real file visited %d times via symlink alias, want 1: %v", len(records), records)
	}
	if records[0].RelativePath != "src/A.java" {
		t.Errorf("kept record = %q, want the first-seen path src/A.java", records[0].RelativePath)
	}
}

func TestWalkRecordFields(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "Order.JAVA"), "class Order {}")

	records := collect(t, root, nil)
	if len(records) != 1 {
		t.Fatalf("visited %d files, want 1", len(records))
	}
	rec := records[0]
	if rec.RelativePath != "src/Order.JAVA" {
		t.Errorf("RelativePath = %q", rec.RelativePath)
	}
	if rec.Extension != ".java" {
		t.Errorf("Extension = %q, want lower-cased .java", rec.Extension)
	}
	if rec.Size != int64(len("class Order {}")) {
		t.Errorf("Size = %d", rec.Size)
	}
	if !filepath.IsAbs(rec.AbsolutePath) {
		t.Errorf("AbsolutePath not absolute: %q", rec.AbsolutePath)
	}
}
