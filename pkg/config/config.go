// Package config loads AXO's optional project manifest, axo.yaml, adapted
// from the teacher's pkg/driver package.yml manifest reader but trimmed to
// what a script interpreter actually needs: an entry point and a search
// path for module resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the parsed contents of an axo.yaml project file. Every field
// is optional; a project with no axo.yaml runs with the zero Manifest.
type Manifest struct {
	Name       string   `yaml:"name"`
	Entry      string   `yaml:"entry"`
	ModulePath []string `yaml:"module_path"`
}

// Load reads and parses the axo.yaml found in dir, if any. A missing file
// is not an error: it returns a zero Manifest.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "axo.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}
