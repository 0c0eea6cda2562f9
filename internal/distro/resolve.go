package distro

import (
	"sort"

	"github.com/distboot/distboot/internal/models"
)

// Resolve applies a dist's override mapping to its family's canonical
// package list and returns the final package set: overrides are keyed
// by the canonical name, a missing override keeps the canonical name,
// an empty replacement drops the package. The result is sorted and
// duplicate-free.
//
// Collisions maps any final name reached from more than one distinct
// canonical name; callers should surface these, since a collision in
// the tables is usually a mistake rather than an intentional merge.
func Resolve(family models.Family, dist models.Distro) (pkgs []string, collisions map[string][]string) {
	sources := make(map[string][]string, len(family.Packages))

	for _, canonical := range family.Packages {
		name := canonical
		if replacement, ok := dist.Replace[canonical]; ok {
			name = replacement
		}
		if name == "" {
			continue
		}
		sources[name] = append(sources[name], canonical)
	}

	collisions = make(map[string][]string)
	pkgs = make([]string, 0, len(sources))
	for name, from := range sources {
		pkgs = append(pkgs, name)
		if distinct := uniqueStrings(from); len(distinct) > 1 {
			collisions[name] = distinct
		}
	}
	sort.Strings(pkgs)
	return pkgs, collisions
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
