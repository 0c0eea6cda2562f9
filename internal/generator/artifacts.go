package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/distboot/distboot/internal/models"
	"github.com/distboot/distboot/internal/utils"
)

// Artifact file names within a dist directory
const (
	ManifestFile       = "packages.yml"
	BootstrapFile      = "bootstrap.sh"
	DockerfileName     = "Dockerfile"
	VagrantSnippetFile = "Vagrantfile.snippet"
)

// WriteArtifacts renders and writes the four per-dist artifacts into
// dir and returns their names in write order. Rendering is all-or-
// nothing per artifact: the first failed substitution aborts
func WriteArtifacts(dir string, dist models.Distro, packages []string) ([]string, error) {
	manifest, err := RenderManifest(packages)
	if err != nil {
		return nil, err
	}

	bootstrap, err := RenderBootstrap(dist.PackageManager, packages)
	if err != nil {
		return nil, err
	}

	dockerfile, err := RenderDockerfile(dist)
	if err != nil {
		return nil, err
	}

	snippet, err := RenderVagrantSnippet(dist)
	if err != nil {
		return nil, err
	}

	files := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{ManifestFile, manifest, 0644},
		{BootstrapFile, bootstrap, 0755}, // executed directly by vagrant provisioning
		{DockerfileName, dockerfile, 0644},
		{VagrantSnippetFile, snippet, 0644},
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if err := utils.WriteFile(filepath.Join(dir, f.name), f.data, f.perm); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		names = append(names, f.name)
	}
	return names, nil
}
