package testplan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distboot/distboot/internal/models"
)

const sampleHeader = `/* generated by the configure step, do not edit */
#define XSLTPROC_MANPAGES 1
#define WITH_PAM 1
#define LIBPAM_WRAPPER_SO_PATH "/usr/lib/libpam_wrapper.so"
#define PAM_SET_ITEMS_SO_PATH "/usr/lib/pam_set_items.so"
#define PACKAGE_VERSION "4.9.0" pre release
#define HAVE_SYS_XATTR_H
/* #undef HAVE_FOO */
not a define line
`

func TestParseFeatures(t *testing.T) {
	feats, err := ParseFeatures(strings.NewReader(sampleHeader))
	require.NoError(t, err)

	assert.True(t, feats.Defined("XSLTPROC_MANPAGES"))
	assert.True(t, feats.HasManpages())
	assert.True(t, feats.WithPAM())

	// values keep their remaining tokens joined by spaces
	version, ok := feats.Lookup("PACKAGE_VERSION")
	require.True(t, ok)
	assert.Equal(t, `"4.9.0" pre release`, version)

	// a bare define carries no value and is ignored
	assert.False(t, feats.Defined("HAVE_SYS_XATTR_H"))
	assert.False(t, feats.Defined("HAVE_FOO"))

	path, err := feats.Value("LIBPAM_WRAPPER_SO_PATH")
	require.NoError(t, err)
	assert.Equal(t, `"/usr/lib/libpam_wrapper.so"`, path)

	_, err = feats.Value("MISSING_SYMBOL")
	assert.Error(t, err)
}

func TestLoadFeaturesFromConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.h")
	require.NoError(t, os.WriteFile(path, []byte("#define WITH_PAM 1\n"), 0644))

	feats, err := LoadFeatures(&models.TestPlanConfig{ConfigH: path})
	require.NoError(t, err)
	assert.True(t, feats.WithPAM())
}

func TestLoadFeaturesFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom-config.h")
	require.NoError(t, os.WriteFile(path, []byte("#define XSLTPROC_MANPAGES 1\n"), 0644))
	t.Setenv("CONFIG_H", path)

	feats, err := LoadFeatures(&models.TestPlanConfig{BinDir: dir})
	require.NoError(t, err)
	assert.True(t, feats.HasManpages())
}

func TestLoadFeaturesDefaultPath(t *testing.T) {
	t.Setenv("CONFIG_H", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "default", "include", "config.h")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#define WITH_PAM 1\n"), 0644))

	feats, err := LoadFeatures(&models.TestPlanConfig{BinDir: dir})
	require.NoError(t, err)
	assert.True(t, feats.WithPAM())
}

func TestLoadFeaturesMissingHeaderIsFatal(t *testing.T) {
	t.Setenv("CONFIG_H", "")

	_, err := LoadFeatures(&models.TestPlanConfig{BinDir: t.TempDir()})
	require.Error(t, err)

	var genErr *models.GenError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, models.ErrTestPlan, genErr.Type)
}
