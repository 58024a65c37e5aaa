package pkginfo_test

import (
	"testing"

	pkginfo "github.com/launchbynttdata/go-pkginfo"
	"github.com/launchbynttdata/go-pkginfo/internal/buildinfo"
)

type partialInfo struct {
	name    string
	version string
}

func optional(v string) (string, bool) { return v, v != "" }

func (p partialInfo) Authors() (string, bool)      { return "", false }
func (p partialInfo) Description() (string, bool)  { return "", false }
func (p partialInfo) Homepage() (string, bool)     { return "", false }
func (p partialInfo) License() (string, bool)      { return "", false }
func (p partialInfo) LicenseFile() (string, bool)  { return "", false }
func (p partialInfo) Name() (string, bool)         { return optional(p.name) }
func (p partialInfo) Repository() (string, bool)   { return "", false }
func (p partialInfo) Version() (string, bool)      { return optional(p.version) }
func (p partialInfo) VersionMajor() (string, bool) { return "", false }
func (p partialInfo) VersionMinor() (string, bool) { return "", false }
func (p partialInfo) VersionPatch() (string, bool) { return "", false }
func (p partialInfo) VersionPre() (string, bool)   { return "", false }

func TestSummary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		info partialInfo
		want string
	}{
		{partialInfo{name: "tool", version: "1.0.0"}, "tool 1.0.0"},
		{partialInfo{name: "tool"}, "tool dev"},
		{partialInfo{version: "2.0.0"}, "unknown 2.0.0"},
		{partialInfo{}, "unknown dev"},
	}
	for _, tc := range cases {
		if got := pkginfo.Summary(tc.info); got != tc.want {
			t.Errorf("summary: want %q got %q", tc.want, got)
		}
	}
}

func TestGeneratedInfoReturnsPopulatedField(t *testing.T) {
	t.Parallel()

	var info pkginfo.PackageInfo = buildinfo.Info{}
	name, ok := info.Name()
	if !ok || name != "go-pkginfo" {
		t.Fatalf("name: want present go-pkginfo got %q (%v)", name, ok)
	}
}

func TestGeneratedInfoIsAbsentForUnpopulatedField(t *testing.T) {
	t.Parallel()

	if homepage, ok := (buildinfo.Info{}).Homepage(); ok {
		t.Fatalf("homepage: want absent got %q", homepage)
	}
}
