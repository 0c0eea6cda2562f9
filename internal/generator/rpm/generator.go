package rpm

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
// RPM-family dists. centos dists install with yum, fedora with dnf;
// the dist profile decides which
type Generator struct {
	signer signer.Signer
}

// NewGenerator creates a new RPM-family generator
func NewGenerator(s signer.Signer) generator.Generator {
	return &Generator{
		signer: s,
	}
}

// Generate renders the artifact set for one rpm dist
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

// ValidateDist checks that the dist belongs to the rpm family and
// installs with yum or dnf
func (g *Generator) ValidateDist(dist models.Distro) error {
	if dist.Family != models.FamilyRpm {
		return fmt.Errorf("dist %s is not in the rpm family", dist.Name)
	}
	switch dist.PackageManager {
	case models.ManagerYum, models.ManagerDnf:
		return nil
	default:
		return fmt.Errorf("dist %s: rpm dists must install with yum or dnf, got %q", dist.Name, dist.PackageManager)
	}
}

// GetSupportedFamily returns the packaging family this generator
// supports
func (g *Generator) GetSupportedFamily() models.FamilyName {
	return models.FamilyRpm
}
