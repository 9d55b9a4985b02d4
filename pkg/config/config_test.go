package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsZeroManifestWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	m, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "" || m.Entry != "" || len(m.ModulePath) != 0 {
		t.Fatalf("expected zero manifest, got %+v", m)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	contents := "name: demo\nentry: main.axo\nmodule_path:\n  - lib\n  - vendor\n"
	if err := os.WriteFile(filepath.Join(dir, "axo.yaml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	m, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "demo" || m.Entry != "main.axo" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if len(m.ModulePath) != 2 || m.ModulePath[0] != "lib" || m.ModulePath[1] != "vendor" {
		t.Fatalf("unexpected module path: %v", m.ModulePath)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "axo.yaml"), []byte("name: [unterminated"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected an error for malformed YAML")
	}
}
