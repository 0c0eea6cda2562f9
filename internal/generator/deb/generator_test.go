package deb

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/distboot/distboot/internal/generator"
	"github.com/distboot/distboot/internal/models"
)

func TestGenerateUnsigned(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "distboot-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Create generator without signer (unsigned)
	gen := NewGenerator(nil)

	config := &models.GenerateConfig{OutputDir: tmpDir}
	dist := models.Distro{
		Name:           "debian9",
		Family:         models.FamilyDeb,
		DockerImage:    "debian:9",
		VagrantBox:     "debian/stretch64",
		PackageManager: models.ManagerApt,
	}

	err = gen.Generate(context.Background(), config, dist, []string{"attr", "gcc"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	home := filepath.Join(tmpDir, "debian9")
	for _, name := range []string{
		generator.ManifestFile,
		generator.BootstrapFile,
		generator.DockerfileName,
		generator.VagrantSnippetFile,
		generator.ChecksumFile,
	} {
		if _, err := os.Stat(filepath.Join(home, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	// Verify SHA256SUMS covers all four artifacts and nothing else
	sums, err := os.ReadFile(filepath.Join(home, generator.ChecksumFile))
	if err != nil {
		t.Fatalf("Failed to read checksums: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(sums), "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("expected 4 checksum lines, got %d:\n%s", len(lines), sums)
	}

	// Verify no signature without a signer
	if _, err := os.Stat(filepath.Join(home, generator.ChecksumFile+".asc")); !os.IsNotExist(err) {
		t.Errorf("SHA256SUMS.asc should not exist for unsigned output")
	}

	// Bootstrap script must be executable and install the packages
	info, err := os.Stat(filepath.Join(home, generator.BootstrapFile))
	if err != nil {
		t.Fatalf("Failed to stat bootstrap: %v", err)
	}
	if info.Mode().Perm()&0111 == 0 {
		t.Errorf("bootstrap.sh must be executable, got %v", info.Mode())
	}
	bootstrap, _ := os.ReadFile(filepath.Join(home, generator.BootstrapFile))
	if !strings.Contains(string(bootstrap), "apt-get -y install") {
		t.Errorf("deb bootstrap must install with apt:\n%s", bootstrap)
	}
}

func TestValidateDist(t *testing.T) {
	gen := NewGenerator(nil)

	rpmDist := models.Distro{Name: "centos7", Family: models.FamilyRpm, PackageManager: models.ManagerYum}
	if err := gen.ValidateDist(rpmDist); err == nil {
		t.Error("expected error for rpm dist on deb generator")
	}

	yumDeb := models.Distro{Name: "debian9", Family: models.FamilyDeb, PackageManager: models.ManagerYum}
	if err := gen.ValidateDist(yumDeb); err == nil {
		t.Error("expected error for deb dist installing with yum")
	}
}
