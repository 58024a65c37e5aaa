package metadata

import (
	"fmt"
	"strconv"
	"strings"

	semver "github.com/blang/semver/v4"
)

// DeriveVersion fills empty major, minor, patch and pre-release components
// from the full version. Components that already hold a value are kept.
// The record is returned unchanged alongside an error when the version is
// absent or not semver.
func DeriveVersion(rec Record) (Record, error) {
	if rec.Version == "" {
		return rec, fmt.Errorf("version is absent")
	}

	parsed, err := parseVersion(rec.Version)
	if err != nil {
		return rec, err
	}

	out := rec
	fillEmpty(&out.VersionMajor, strconv.FormatUint(parsed.Major, 10))
	fillEmpty(&out.VersionMinor, strconv.FormatUint(parsed.Minor, 10))
	fillEmpty(&out.VersionPatch, strconv.FormatUint(parsed.Patch, 10))
	fillEmpty(&out.VersionPre, preRelease(parsed))
	return out, nil
}

func parseVersion(input string) (semver.Version, error) {
	trimmed := strings.TrimSpace(input)
	if version, err := semver.Parse(trimmed); err == nil {
		return version, nil
	}

	if len(trimmed) > 1 && (trimmed[0] == 'v' || trimmed[0] == 'V') {
		if version, err := semver.Parse(trimmed[1:]); err == nil {
			return version, nil
		}
	}

	return semver.Version{}, fmt.Errorf("invalid semver %q", input)
}

func preRelease(v semver.Version) string {
	if len(v.Pre) == 0 {
		return ""
	}
	parts := make([]string, 0, len(v.Pre))
	for _, p := range v.Pre {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ".")
}

func fillEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
