// Package testplan enumerates the test suites the external test
// orchestrator should consider running. The orchestrator owns the
// skip and known-failure lists; the plan lists everything, gated only
// on what the build actually enabled.
package testplan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/distboot/distboot/internal/models"
)

const defineMarker = "#define"

// Features is the set of build capabilities, derived from the define
// lines of the generated config header. A symbol that never appears
// in the header is simply absent, not an error.
type Features struct {
	defines map[string]string
}

// LoadFeatures locates and parses the config header. The path comes
// from the CONFIG_H environment variable if set, else from the
// conventional location under the build output directory. A header
// that cannot be opened is fatal; there is no fallback.
func LoadFeatures(config *models.TestPlanConfig) (*Features, error) {
	path := config.ConfigH
	if path == "" {
		path = os.Getenv("CONFIG_H")
	}
	if path == "" {
		path = filepath.Join(config.BinDir, "default", "include", "config.h")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &models.GenError{Type: models.ErrTestPlan, Subject: path, Err: err}
	}
	defer f.Close()

	feats, err := ParseFeatures(f)
	if err != nil {
		return nil, &models.GenError{Type: models.ErrTestPlan, Subject: path, Err: err}
	}
	return feats, nil
}

// ParseFeatures reads define records line by line. Only lines of the
// form "#define NAME value..." count; a bare "#define NAME" carries no
// value and is ignored. The value is the remaining tokens joined by
// spaces.
func ParseFeatures(r io.Reader) (*Features, error) {
	defines := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, defineMarker) {
			continue
		}
		parts := strings.Split(line, " ")
		if len(parts) <= 2 {
			continue
		}
		defines[parts[1]] = strings.Join(parts[2:], " ")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Features{defines: defines}, nil
}

// Defined reports whether the build defined the symbol
func (f *Features) Defined(name string) bool {
	_, ok := f.defines[name]
	return ok
}

// Lookup returns a symbol's value and whether it was defined
func (f *Features) Lookup(name string) (string, bool) {
	value, ok := f.defines[name]
	return value, ok
}

// Value returns a symbol's value, failing when the symbol is absent.
// Use it for symbols the plan cannot proceed without.
func (f *Features) Value(name string) (string, error) {
	value, ok := f.defines[name]
	if !ok {
		return "", fmt.Errorf("required define %s missing from config header", name)
	}
	return value, nil
}

// HasManpages reports whether manpage generation support was built
func (f *Features) HasManpages() bool {
	return f.Defined("XSLTPROC_MANPAGES")
}

// WithPAM reports whether the PAM authentication module was built
func (f *Features) WithPAM() bool {
	return f.Defined("WITH_PAM")
}
