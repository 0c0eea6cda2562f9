package distro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distboot/distboot/internal/models"
)

func TestLoadTables(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	expected := []string{
		"centos6", "centos7",
		"debian7", "debian8", "debian9",
		"fedora28", "fedora29",
		"ubuntu1404", "ubuntu1604", "ubuntu1804",
	}
	assert.Equal(t, expected, table.Names())
}

func TestLoadDistProfiles(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	debian7, ok := table.Dist("debian7")
	require.True(t, ok)
	assert.Equal(t, models.FamilyDeb, debian7.Family)
	assert.Equal(t, "debian:7", debian7.DockerImage)
	assert.Equal(t, "debian/wheezy64", debian7.VagrantBox)
	assert.Equal(t, models.ManagerApt, debian7.PackageManager)

	centos7, ok := table.Dist("centos7")
	require.True(t, ok)
	assert.Equal(t, models.ManagerYum, centos7.PackageManager)

	fedora28, ok := table.Dist("fedora28")
	require.True(t, ok)
	assert.Equal(t, models.ManagerDnf, fedora28.PackageManager)

	_, ok = table.Dist("gentoo")
	assert.False(t, ok)
}

func TestFamilyPackageLists(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	deb := table.Family(models.FamilyDeb)
	rpm := table.Family(models.FamilyRpm)

	// common names appear in both families
	assert.Contains(t, deb.Packages, "ccache")
	assert.Contains(t, rpm.Packages, "ccache")

	// paired names land on their own side only
	assert.Contains(t, deb.Packages, "zlib1g-dev")
	assert.NotContains(t, deb.Packages, "zlib-devel")
	assert.Contains(t, rpm.Packages, "zlib-devel")

	// empty sides are dropped from the canonical list
	assert.NotContains(t, deb.Packages, "")
	assert.NotContains(t, rpm.Packages, "")
	assert.NotContains(t, rpm.Packages, "dnsutils")
	assert.NotContains(t, deb.Packages, "rpcgen")
}

func TestValidateDist(t *testing.T) {
	cases := []struct {
		name string
		dist models.Distro
		ok   bool
	}{
		{
			name: "valid deb",
			dist: models.Distro{Family: models.FamilyDeb, PackageManager: models.ManagerApt,
				DockerImage: "debian:9", VagrantBox: "debian/stretch64"},
			ok: true,
		},
		{
			name: "apt on rpm family",
			dist: models.Distro{Family: models.FamilyRpm, PackageManager: models.ManagerApt,
				DockerImage: "centos:7", VagrantBox: "centos/7"},
		},
		{
			name: "yum on deb family",
			dist: models.Distro{Family: models.FamilyDeb, PackageManager: models.ManagerYum,
				DockerImage: "debian:9", VagrantBox: "debian/stretch64"},
		},
		{
			name: "unknown family",
			dist: models.Distro{Family: "apk", PackageManager: models.ManagerApt,
				DockerImage: "alpine:3", VagrantBox: "alpine/3"},
		},
		{
			name: "missing docker image",
			dist: models.Distro{Family: models.FamilyDeb, PackageManager: models.ManagerApt,
				VagrantBox: "debian/stretch64"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDist(tc.dist)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
