// Package buildinfo carries the package metadata of pkginfo-gen itself.
package buildinfo

//go:generate go run ../../cmd/pkginfo-gen --type Info --env-file ../../pkginfo.env --derive-version --log-level quiet

// Info reports the metadata of this module. Release builds override the
// values by exporting PKGINFO_* variables before go generate.
type Info struct{}
