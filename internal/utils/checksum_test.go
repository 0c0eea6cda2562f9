package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCalculateChecksums(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "distboot-checksum-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "data")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	sum, err := CalculateChecksums(path)
	if err != nil {
		t.Fatalf("CalculateChecksums failed: %v", err)
	}

	if sum.SHA256 != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("unexpected SHA256: %s", sum.SHA256)
	}
	if sum.Size != 3 {
		t.Errorf("unexpected size: %d", sum.Size)
	}

	if _, err := CalculateChecksums(filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
