package utils

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// Archive formats
const (
	FormatGzip = "gzip"
	FormatXz   = "xz"
)

// ArchiveExt returns the tarball extension for a format
func ArchiveExt(format string) (string, error) {
	switch format {
	case FormatGzip:
		return ".tar.gz", nil
	case FormatXz:
		return ".tar.xz", nil
	default:
		return "", fmt.Errorf("unknown archive format %q", format)
	}
}

// ArchiveDir writes a compressed tarball of dir to outPath. Entries
// are stored relative to dir's parent so the archive unpacks into one
// top-level directory
func ArchiveDir(dir, outPath, format string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	var compressor io.WriteCloser
	switch format {
	case FormatGzip:
		compressor = gzip.NewWriter(out)
	case FormatXz:
		w, err := xz.NewWriter(out)
		if err != nil {
			return fmt.Errorf("failed to create xz writer: %w", err)
		}
		compressor = w
	default:
		return fmt.Errorf("unknown archive format %q", format)
	}

	tw := tar.NewWriter(compressor)

	base := filepath.Dir(filepath.Clean(dir))
	walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() && !info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			hdr.Name += "/"
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})
	if walkErr != nil {
		tw.Close()
		compressor.Close()
		return walkErr
	}

	if err := tw.Close(); err != nil {
		return err
	}
	if err := compressor.Close(); err != nil {
		return err
	}
	return out.Sync()
}
