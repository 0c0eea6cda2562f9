package generator

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/distboot/distboot/internal/signer"
	"github.com/distboot/distboot/internal/utils"
)

// ChecksumFile is the name of the per-dist checksum manifest
const ChecksumFile = "SHA256SUMS"

// WriteChecksumManifest writes a SHA256SUMS file over the named
// artifacts in dir, in the given order, and a detached armored
// signature next to it when a signer is configured
func WriteChecksumManifest(dir string, files []string, s signer.Signer) error {
	var buf bytes.Buffer
	for _, name := range files {
		sum, err := utils.CalculateChecksums(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to checksum %s: %w", name, err)
		}
		fmt.Fprintf(&buf, "%s  %s\n", sum.SHA256, name)
	}

	sumsPath := filepath.Join(dir, ChecksumFile)
	if err := utils.WriteFile(sumsPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ChecksumFile, err)
	}

	if s == nil {
		return nil
	}

	sig, err := s.SignDetached(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to sign %s: %w", ChecksumFile, err)
	}
	if err := utils.WriteFile(sumsPath+".asc", sig, 0644); err != nil {
		return fmt.Errorf("failed to write %s.asc: %w", ChecksumFile, err)
	}
	return nil
}
