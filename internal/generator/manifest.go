package generator

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the structured package manifest written next to the
// rendered scripts, one package per line under a packages key
type Manifest struct {
	Packages []string `yaml:"packages"`
}

// RenderManifest renders the packages.yml manifest for a resolved
// package list
func RenderManifest(packages []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Manifest{Packages: packages}); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close manifest encoder: %w", err)
	}

	return buf.Bytes(), nil
}
