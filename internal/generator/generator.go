package generator

import (
	"context"

	"github.com/distboot/distboot/internal/models"
)

// Generator interface for per-family artifact generators
type Generator interface {
	// Generate renders the artifact set for one dist into
	// <OutputDir>/<dist name>
	Generate(ctx context.Context, config *models.GenerateConfig, dist models.Distro, packages []string) error

	// ValidateDist checks that a dist profile can be handled by this
	// generator
	ValidateDist(dist models.Distro) error

	// GetSupportedFamily returns the packaging family this generator
	// supports
	GetSupportedFamily() models.FamilyName
}
