package utils

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

func TestArchiveExt(t *testing.T) {
	if ext, err := ArchiveExt(FormatGzip); err != nil || ext != ".tar.gz" {
		t.Errorf("gzip ext: got %q, %v", ext, err)
	}
	if ext, err := ArchiveExt(FormatXz); err != nil || ext != ".tar.xz" {
		t.Errorf("xz ext: got %q, %v", ext, err)
	}
	if _, err := ArchiveExt("zip"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestArchiveDirRoundTrip(t *testing.T) {
	for _, format := range []string{FormatGzip, FormatXz} {
		t.Run(format, func(t *testing.T) {
			tmpDir, err := os.MkdirTemp("", "distboot-archive-")
			if err != nil {
				t.Fatalf("Failed to create temp dir: %v", err)
			}
			defer os.RemoveAll(tmpDir)

			srcDir := filepath.Join(tmpDir, "dists")
			if err := WriteFile(filepath.Join(srcDir, "debian9", "bootstrap.sh"), []byte("#!/bin/bash\n"), 0755); err != nil {
				t.Fatalf("Failed to write test file: %v", err)
			}

			ext, _ := ArchiveExt(format)
			archivePath := filepath.Join(tmpDir, "out"+ext)
			if err := ArchiveDir(srcDir, archivePath, format); err != nil {
				t.Fatalf("ArchiveDir failed: %v", err)
			}

			f, err := os.Open(archivePath)
			if err != nil {
				t.Fatalf("Failed to open archive: %v", err)
			}
			defer f.Close()

			var decompressed io.Reader
			switch format {
			case FormatGzip:
				r, err := gzip.NewReader(f)
				if err != nil {
					t.Fatalf("Failed to open gzip stream: %v", err)
				}
				defer r.Close()
				decompressed = r
			case FormatXz:
				r, err := xz.NewReader(f)
				if err != nil {
					t.Fatalf("Failed to open xz stream: %v", err)
				}
				decompressed = r
			}

			found := make(map[string]string)
			tr := tar.NewReader(decompressed)
			for {
				hdr, err := tr.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("Failed to read tar: %v", err)
				}
				if hdr.Typeflag == tar.TypeReg {
					data, err := io.ReadAll(tr)
					if err != nil {
						t.Fatalf("Failed to read entry %s: %v", hdr.Name, err)
					}
					found[hdr.Name] = string(data)
				}
			}

			content, ok := found["dists/debian9/bootstrap.sh"]
			if !ok {
				t.Fatalf("bootstrap.sh missing from archive, entries: %v", found)
			}
			if content != "#!/bin/bash\n" {
				t.Errorf("bootstrap.sh content mismatch: %q", content)
			}
		})
	}
}
