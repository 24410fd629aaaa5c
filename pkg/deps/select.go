package deps

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/deptree/pkg/errors"
)

// SelectVersion picks the version of md that best satisfies rng.
//
// A range naming one of the package's dist-tags selects the tagged version.
// Otherwise rng is parsed as a semver constraint and the highest matching
// published version wins. A prerelease only matches when the constraint
// names a prerelease of the same major.minor.patch ("^1.2.3-beta" admits
// 1.2.3-rc.1 but not 1.2.4-rc.1). Published versions that do not parse are skipped. Versions of equal
// precedence (differing only in build metadata) resolve to the
// lexicographically greatest string.
//
// ok is false when nothing matches or rng is empty. A non-empty rng that is
// neither a dist-tag nor a valid constraint fails with INVALID_RANGE.
func SelectVersion(md *Metadata, rng string) (version string, ok bool, err error) {
	rng = strings.TrimSpace(rng)
	if rng == "" {
		return "", false, nil
	}

	if tagged, isTag := md.DistTags[rng]; isTag {
		_, published := md.Versions[tagged]
		return tagged, published, nil
	}

	c, err := semver.NewConstraint(rng)
	if err != nil {
		return "", false, errors.Wrap(errors.ErrCodeInvalidRange, err, "invalid range %q for %s", rng, md.Name)
	}

	tuples := prereleaseTuples(rng)
	var best *semver.Version
	for _, raw := range sortedVersionKeys(md.Versions) {
		v, err := semver.NewVersion(raw)
		if err != nil || !c.Check(v) {
			continue
		}
		if v.Prerelease() != "" && !tuples[[3]uint64{v.Major(), v.Minor(), v.Patch()}] {
			continue
		}
		if best == nil || !v.LessThan(best) {
			best, version = v, raw
		}
	}
	return version, best != nil, nil
}

var prereleaseRef = regexp.MustCompile(`v?(\d+)\.(\d+)\.(\d+)-[0-9A-Za-z.-]+`)

// prereleaseTuples returns the major.minor.patch of every prerelease
// version named in rng.
func prereleaseTuples(rng string) map[[3]uint64]bool {
	out := make(map[[3]uint64]bool)
	for _, m := range prereleaseRef.FindAllStringSubmatch(rng, -1) {
		var t [3]uint64
		for i := range t {
			t[i], _ = strconv.ParseUint(m[i+1], 10, 64)
		}
		out[t] = true
	}
	return out
}

// sortedVersionKeys orders keys so that, among equal-precedence versions,
// the lexicographically greatest is visited last and kept.
func sortedVersionKeys(m map[string]VersionRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SortedNames returns the keys of a dependency map in ascending order.
func SortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
