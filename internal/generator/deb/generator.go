package deb

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/distboot/distboot/internal/generator"
	"github.com/distboot/distboot/internal/models"
	"github.com/distboot/distboot/internal/signer"
	"github.com/distboot/distboot/internal/utils"
)

// Generator implements the generator.Generator interface for
// Debian-family dists
type Generator struct {
	signer signer.Signer
}

// NewGenerator creates a new Debian-family generator
func NewGenerator(s signer.Signer) generator.Generator {
	return &Generator{
		signer: s,
	}
}

// Generate renders the artifact set for one deb dist
func (g *Generator) Generate(ctx context.Context, config *models.GenerateConfig, dist models.Distro, packages []string) error {
	if err := g.ValidateDist(dist); err != nil {
		return err
	}

	logrus.Infof("Generating artifacts for %s (%d packages)...", dist.Name, len(packages))

	home := filepath.Join(config.OutputDir, dist.Name)
	if err := utils.EnsureDir(home); err != nil {
		return err
	}

	written, err := generator.WriteArtifacts(home, dist, packages)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", dist.Name, err)
	}

	if err := generator.WriteChecksumManifest(home, written, g.signer); err != nil {
		return err
	}

	logrus.Infof("Artifacts for %s written to %s", dist.Name, home)
	return nil
}

// ValidateDist checks that the dist belongs to the deb family and
// installs with apt
func (g *Generator) ValidateDist(dist models.Distro) error {
	if dist.Family != models.FamilyDeb {
		return fmt.Errorf("dist %s is not in the deb family", dist.Name)
	}
	if dist.PackageManager != models.ManagerApt {
		return fmt.Errorf("dist %s: deb dists must install with apt, got %q", dist.Name, dist.PackageManager)
	}
	return nil
}

// GetSupportedFamily returns the packaging family this generator
// supports
func (g *Generator) GetSupportedFamily() models.FamilyName {
	return models.FamilyDeb
}
