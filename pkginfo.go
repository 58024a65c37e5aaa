// Package pkginfo defines accessors for package metadata that is baked into a
// binary at generation time.
//
// Implementations are normally produced by the pkginfo-gen command from a
// go:generate directive:
//
//	//go:generate go run github.com/launchbynttdata/go-pkginfo/cmd/pkginfo-gen --type Info
//	type Info struct{}
//
// Each accessor reports the value and whether it was present when the code
// was generated. Values are string literals in the generated file; nothing is
// read from the environment at run time.
package pkginfo

const (
	unknownName    = "unknown"
	unknownVersion = "dev"
)

// PackageInfo exposes the metadata of a package.
type PackageInfo interface {
	// Authors is the colon separated list of package authors.
	Authors() (string, bool)
	// Description is the package description.
	Description() (string, bool)
	// Homepage is the package home page.
	Homepage() (string, bool)
	// License is the package license identifier.
	License() (string, bool)
	// LicenseFile is the path of the package license file.
	LicenseFile() (string, bool)
	// Name is the package name.
	Name() (string, bool)
	// Repository is the package source repository.
	Repository() (string, bool)
	// Version is the full package version.
	Version() (string, bool)
	// VersionMajor is the major version component.
	VersionMajor() (string, bool)
	// VersionMinor is the minor version component.
	VersionMinor() (string, bool)
	// VersionPatch is the patch version component.
	VersionPatch() (string, bool)
	// VersionPre is the pre-release version component.
	VersionPre() (string, bool)
}

// Summary returns "<name> <version>", substituting placeholders for absent values.
func Summary(info PackageInfo) string {
	name, ok := info.Name()
	if !ok {
		name = unknownName
	}
	version, ok := info.Version()
	if !ok {
		version = unknownVersion
	}
	return name + " " + version
}
