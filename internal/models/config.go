package models

// GenerateConfig contains configuration for artifact generation
type GenerateConfig struct {
	// Output
	OutputDir string
	Dist      string // restrict generation to one dist, empty for all

	// Signing
	GPGKeyPath    string
	GPGPassphrase string

	// Archive of the rendered tree
	Archive       bool
	ArchiveFormat string // "xz" or "gzip"
}

// TestPlanConfig contains configuration for test-plan enumeration
type TestPlanConfig struct {
	// BinDir is the build output directory, used to locate the
	// generated config header and test binaries
	BinDir string

	// SrcDir is the source tree root for script-based suites
	SrcDir string

	// ConfigH overrides the config header path; normally taken from
	// the CONFIG_H environment variable
	ConfigH string
}
