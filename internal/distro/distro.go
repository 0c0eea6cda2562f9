// Package distro holds the static package and distribution tables and
// resolves per-dist package lists from them.
//
// The tables live in embedded YAML files and are decoded once at load
// time into immutable structures. Nothing here reads external input:
// the tables are maintained alongside the code and validated when they
// are loaded, not at render time.
package distro

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/distboot/distboot/internal/models"
)

//go:embed data/*.yaml
var data embed.FS

// packageTable mirrors data/packages.yaml
type packageTable struct {
	Common []string              `yaml:"common"`
	Pairs  []models.PackageEntry `yaml:"pairs"`
}

// Table is the loaded set of families and dists
type Table struct {
	families map[models.FamilyName]models.Family
	dists    map[string]models.Distro
}

// Load decodes the embedded tables. Decoding is strict: an unknown
// field or a profile that fails validation is an error, so a bad table
// aborts before any artifact is rendered.
func Load() (*Table, error) {
	var pkgs packageTable
	if err := decodeStrict("data/packages.yaml", &pkgs); err != nil {
		return nil, &models.GenError{Type: models.ErrTableLoad, Subject: "packages.yaml", Err: err}
	}

	rawDists := make(map[string]models.Distro)
	if err := decodeStrict("data/dists.yaml", &rawDists); err != nil {
		return nil, &models.GenError{Type: models.ErrTableLoad, Subject: "dists.yaml", Err: err}
	}

	t := &Table{
		families: map[models.FamilyName]models.Family{
			models.FamilyDeb: {Name: models.FamilyDeb, Packages: familyPackages(pkgs, models.FamilyDeb)},
			models.FamilyRpm: {Name: models.FamilyRpm, Packages: familyPackages(pkgs, models.FamilyRpm)},
		},
		dists: make(map[string]models.Distro, len(rawDists)),
	}

	for name, dist := range rawDists {
		dist.Name = name
		if err := validateDist(dist); err != nil {
			return nil, &models.GenError{Type: models.ErrTableLoad, Subject: name, Err: err}
		}
		t.dists[name] = dist
	}

	return t, nil
}

func decodeStrict(path string, v interface{}) error {
	f, err := data.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	return dec.Decode(v)
}

// familyPackages builds one family's canonical package list: the
// common names plus that family's side of each pair, empty sides
// dropped. Order follows the table; the final sort happens after
// overrides are applied in Resolve.
func familyPackages(pkgs packageTable, family models.FamilyName) []string {
	out := make([]string, 0, len(pkgs.Common)+len(pkgs.Pairs))
	out = append(out, pkgs.Common...)
	for _, pair := range pkgs.Pairs {
		if name := pair.Name(family); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func validateDist(dist models.Distro) error {
	switch dist.Family {
	case models.FamilyDeb, models.FamilyRpm:
	default:
		return fmt.Errorf("unknown family %q", dist.Family)
	}

	switch dist.PackageManager {
	case models.ManagerApt:
		if dist.Family != models.FamilyDeb {
			return fmt.Errorf("apt requires the deb family, got %q", dist.Family)
		}
	case models.ManagerYum, models.ManagerDnf:
		if dist.Family != models.FamilyRpm {
			return fmt.Errorf("%s requires the rpm family, got %q", dist.PackageManager, dist.Family)
		}
	default:
		return fmt.Errorf("unknown package manager %q", dist.PackageManager)
	}

	if dist.DockerImage == "" {
		return fmt.Errorf("missing docker_image")
	}
	if dist.VagrantBox == "" {
		return fmt.Errorf("missing vagrant_box")
	}
	return nil
}

// Family returns the canonical package list for a packaging family
func (t *Table) Family(name models.FamilyName) models.Family {
	return t.families[name]
}

// Dist returns one dist profile by name
func (t *Table) Dist(name string) (models.Distro, bool) {
	dist, ok := t.dists[name]
	return dist, ok
}

// Names returns all dist names sorted lexicographically
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.dists))
	for name := range t.dists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dists returns all dist profiles sorted by name
func (t *Table) Dists() []models.Distro {
	names := t.Names()
	dists := make([]models.Distro, 0, len(names))
	for _, name := range names {
		dists = append(dists, t.dists[name])
	}
	return dists
}
