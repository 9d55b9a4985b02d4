package module

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte("// empty\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestResolveExplicitExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "helper.axo"))

	got, err := Resolve("helper.axo", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Clean(filepath.Join(dir, "helper.axo"))
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveProbesBareNameThenIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib.axo"))

	got, err := Resolve("lib", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Clean(filepath.Join(dir, "lib.axo")) {
		t.Fatalf("got %q", got)
	}
}

func TestResolveFallsBackToIndexAxo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pkg", "index.axo"))

	got, err := Resolve("pkg", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Clean(filepath.Join(dir, "pkg", "index.axo"))
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveMissingModuleFails(t *testing.T) {
	dir := t.TempDir()
	if _, err := Resolve("nowhere", dir); err == nil {
		t.Fatalf("expected an error for a module that doesn't exist")
	}
}

func TestIsJSONDetectsExtension(t *testing.T) {
	if !IsJSON("/a/b/data.json") {
		t.Fatalf("expected data.json to be detected as JSON")
	}
	if IsJSON("/a/b/main.axo") {
		t.Fatalf("did not expect main.axo to be detected as JSON")
	}
}

func TestCacheBeginMarksInProgressAndDetectsReentry(t *testing.T) {
	c := NewCache()
	entry, existed := c.Begin("/a.axo")
	if existed {
		t.Fatalf("expected first Begin to report not-existed")
	}
	if !entry.Loading {
		t.Fatalf("expected entry to be marked in-progress")
	}

	reentry, existed := c.Begin("/a.axo")
	if !existed || !reentry.Loading {
		t.Fatalf("expected cyclic re-entry to observe the in-progress entry")
	}
}

func TestCacheFinishClearsLoadingAndRecordsResult(t *testing.T) {
	c := NewCache()
	c.Begin("/a.axo")
	c.Finish("/a.axo", "exports", nil)

	entry, existed := c.Begin("/a.axo")
	if !existed {
		t.Fatalf("expected the completed entry to already exist")
	}
	if entry.Loading {
		t.Fatalf("expected Loading to be cleared after Finish")
	}
	if entry.Result != "exports" {
		t.Fatalf("got result %v", entry.Result)
	}
}
