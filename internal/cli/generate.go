package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/distboot/distboot/internal/distro"
	"github.com/distboot/distboot/internal/generator"
	"github.com/distboot/distboot/internal/generator/deb"
	"github.com/distboot/distboot/internal/generator/rpm"
	"github.com/distboot/distboot/internal/models"
	"github.com/distboot/distboot/internal/signer"
	"github.com/distboot/distboot/internal/utils"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var config models.GenerateConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate per-dist provisioning artifacts",
		Long: `Expands the embedded package and distribution tables into one
directory per dist holding the package manifest, bootstrap script,
Dockerfile and Vagrantfile snippet, and writes one aggregated
Vagrantfile covering every generated dist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate configuration
			if err := validateGenerateConfig(&config); err != nil {
				return err
			}

			logrus.Info("Starting artifact generation...")
			logrus.Debugf("Configuration: %+v", config)

			// Run generation
			return runGeneration(cmd.Context(), &config)
		},
	}

	// Output flags
	cmd.Flags().StringVarP(&config.OutputDir, "output-dir", "o", "./dists", "Output directory")
	cmd.Flags().StringVar(&config.Dist, "dist", "", "Generate a single dist instead of all of them")

	// GPG signing flags
	cmd.Flags().StringVarP(&config.GPGKeyPath, "gpg-key", "k", "", "Path to GPG private key")
	cmd.Flags().StringVarP(&config.GPGPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")

	// Archive flags
	cmd.Flags().BoolVar(&config.Archive, "archive", false, "Write a compressed tarball of the output directory")
	cmd.Flags().StringVar(&config.ArchiveFormat, "archive-format", utils.FormatXz, "Archive format (xz, gzip)")

	return cmd
}

func validateGenerateConfig(config *models.GenerateConfig) error {
	if config.OutputDir == "" {
		return &models.GenError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("output-dir is required"),
		}
	}

	if config.GPGPassphrase != "" && config.GPGKeyPath == "" {
		return &models.GenError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("gpg-passphrase given without gpg-key"),
		}
	}

	if _, err := utils.ArchiveExt(config.ArchiveFormat); err != nil {
		return &models.GenError{
			Type: models.ErrInvalidConfig,
			Err:  err,
		}
	}

	return nil
}

func runGeneration(ctx context.Context, config *models.GenerateConfig) error {
	// Step 1: Load the static tables
	table, err := distro.Load()
	if err != nil {
		return err
	}

	// Step 2: Select dists
	dists := table.Dists()
	if config.Dist != "" {
		dist, ok := table.Dist(config.Dist)
		if !ok {
			return &models.GenError{
				Type:    models.ErrInvalidConfig,
				Subject: config.Dist,
				Err:     fmt.Errorf("unknown dist (known: %v)", table.Names()),
			}
		}
		dists = []models.Distro{dist}
	}

	logrus.Infof("Generating %d dists", len(dists))

	// Step 3: Initialize signer
	var gpgSigner signer.Signer
	if config.GPGKeyPath != "" {
		s, err := signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
		if err != nil {
			return &models.GenError{
				Type: models.ErrSigning,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		gpgSigner = s
		logrus.Info("GPG signer initialized")
	}

	// Step 4: Generate artifacts per dist
	generators := map[models.FamilyName]generator.Generator{
		models.FamilyDeb: deb.NewGenerator(gpgSigner),
		models.FamilyRpm: rpm.NewGenerator(gpgSigner),
	}

	snippets := make([][]byte, 0, len(dists))
	for _, dist := range dists {
		gen, ok := generators[dist.Family]
		if !ok {
			return &models.GenError{
				Type:    models.ErrInvalidConfig,
				Subject: dist.Name,
				Err:     fmt.Errorf("no generator for family %q", dist.Family),
			}
		}

		packages, collisions := distro.Resolve(table.Family(dist.Family), dist)
		warnCollisions(dist.Name, collisions)

		if err := gen.Generate(ctx, config, dist, packages); err != nil {
			return &models.GenError{
				Type:    models.ErrRender,
				Subject: dist.Name,
				Err:     err,
			}
		}

		// dists are already sorted by name, so snippet order is the
		// aggregation order
		snippet, err := generator.RenderVagrantSnippet(dist)
		if err != nil {
			return &models.GenError{Type: models.ErrRender, Subject: dist.Name, Err: err}
		}
		snippets = append(snippets, snippet)
	}

	// Step 5: Aggregate the global Vagrantfile
	vagrantfile, err := generator.RenderVagrantfile(snippets)
	if err != nil {
		return &models.GenError{Type: models.ErrRender, Subject: "Vagrantfile", Err: err}
	}
	if err := utils.WriteFile(filepath.Join(config.OutputDir, "Vagrantfile"), vagrantfile, 0644); err != nil {
		return &models.GenError{Type: models.ErrFileOp, Subject: "Vagrantfile", Err: err}
	}

	// Step 6: Export the verification key next to the signed sums
	if gpgSigner != nil {
		pub, err := gpgSigner.GetPublicKey()
		if err != nil {
			return &models.GenError{Type: models.ErrSigning, Err: err}
		}
		if err := utils.WriteFile(filepath.Join(config.OutputDir, "signing-key.asc"), pub, 0644); err != nil {
			return &models.GenError{Type: models.ErrFileOp, Subject: "signing-key.asc", Err: err}
		}
	}

	// Step 7: Archive the rendered tree
	if config.Archive {
		ext, _ := utils.ArchiveExt(config.ArchiveFormat)
		archivePath := filepath.Clean(config.OutputDir) + ext
		logrus.Infof("Archiving output to %s", archivePath)
		if err := utils.ArchiveDir(config.OutputDir, archivePath, config.ArchiveFormat); err != nil {
			return &models.GenError{Type: models.ErrFileOp, Subject: archivePath, Err: err}
		}
	}

	logrus.Info("Artifact generation completed successfully!")
	logrus.Infof("Output directory: %s", config.OutputDir)

	return nil
}

func warnCollisions(dist string, collisions map[string][]string) {
	names := make([]string, 0, len(collisions))
	for name := range collisions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logrus.Warnf("dist %s: canonical packages %v all resolve to %q", dist, collisions[name], name)
	}
}
