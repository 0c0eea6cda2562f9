package models

// FamilyName identifies a packaging family
type FamilyName string

const (
	FamilyDeb FamilyName = "deb"
	FamilyRpm FamilyName = "rpm"
)

// PackageManager identifies the tool a bootstrap script installs with
type PackageManager string

const (
	ManagerApt PackageManager = "apt"
	ManagerYum PackageManager = "yum"
	ManagerDnf PackageManager = "dnf"
)

// PackageEntry pairs the deb and rpm names of one logical package.
// An empty side means the package does not exist or is not needed in
// that family.
type PackageEntry struct {
	Deb string `yaml:"deb"`
	Rpm string `yaml:"rpm"`
}

// Name returns the entry's package name in the given family
func (e PackageEntry) Name(family FamilyName) string {
	if family == FamilyRpm {
		return e.Rpm
	}
	return e.Deb
}

// Family holds the canonical package list shared by all dists of one
// packaging family
type Family struct {
	Name     FamilyName
	Packages []string
}

// Distro describes one target distribution image and its deviations
// from the family package list
type Distro struct {
	Name           string         `yaml:"-"`
	Family         FamilyName     `yaml:"family"`
	DockerImage    string         `yaml:"docker_image"`
	VagrantBox     string         `yaml:"vagrant_box"`
	PackageManager PackageManager `yaml:"package_manager"`

	// Replace maps canonical package names to dist-specific ones.
	// An empty replacement drops the package for this dist.
	Replace map[string]string `yaml:"replace"`
}
