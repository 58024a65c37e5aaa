package metadata

import (
	"fmt"
	"os"
)

// DefaultPrefix is prepended to every field suffix to form the variable name.
const DefaultPrefix = "PKGINFO"

// Field identifies one of the package metadata values.
type Field int

const (
	FieldAuthors Field = iota
	FieldDescription
	FieldHomepage
	FieldLicense
	FieldLicenseFile
	FieldName
	FieldRepository
	FieldVersion
	FieldVersionMajor
	FieldVersionMinor
	FieldVersionPatch
	FieldVersionPre
	fieldCount
)

type fieldInfo struct {
	method string
	suffix string
	doc    string
}

var fieldTable = [fieldCount]fieldInfo{
	FieldAuthors:      {method: "Authors", suffix: "AUTHORS", doc: "the colon separated list of package authors"},
	FieldDescription:  {method: "Description", suffix: "DESCRIPTION", doc: "the package description"},
	FieldHomepage:     {method: "Homepage", suffix: "HOMEPAGE", doc: "the package home page"},
	FieldLicense:      {method: "License", suffix: "LICENSE", doc: "the package license identifier"},
	FieldLicenseFile:  {method: "LicenseFile", suffix: "LICENSE_FILE", doc: "the path of the package license file"},
	FieldName:         {method: "Name", suffix: "NAME", doc: "the package name"},
	FieldRepository:   {method: "Repository", suffix: "REPOSITORY", doc: "the package source repository"},
	FieldVersion:      {method: "Version", suffix: "VERSION", doc: "the full package version"},
	FieldVersionMajor: {method: "VersionMajor", suffix: "VERSION_MAJOR", doc: "the major version component"},
	FieldVersionMinor: {method: "VersionMinor", suffix: "VERSION_MINOR", doc: "the minor version component"},
	FieldVersionPatch: {method: "VersionPatch", suffix: "VERSION_PATCH", doc: "the patch version component"},
	FieldVersionPre:   {method: "VersionPre", suffix: "VERSION_PRE", doc: "the pre-release version component"},
}

// Fields returns every field in accessor order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

func (f Field) info() fieldInfo {
	if f < 0 || f >= fieldCount {
		panic(fmt.Sprintf("metadata: unknown field %d", int(f)))
	}
	return fieldTable[f]
}

// Method is the accessor name on the generated type.
func (f Field) Method() string {
	return f.info().method
}

// Doc describes the value in prose, suitable for a doc comment.
func (f Field) Doc() string {
	return f.info().doc
}

// EnvKey returns the variable name carrying the field for the given prefix.
// An empty prefix yields the bare suffix.
func (f Field) EnvKey(prefix string) string {
	if prefix == "" {
		return f.info().suffix
	}
	return prefix + "_" + f.info().suffix
}

func (f Field) String() string {
	return f.Method()
}

// Record holds one value per field. An empty value means the field is absent.
type Record struct {
	Authors      string
	Description  string
	Homepage     string
	License      string
	LicenseFile  string
	Name         string
	Repository   string
	Version      string
	VersionMajor string
	VersionMinor string
	VersionPatch string
	VersionPre   string
}

func (r *Record) slot(f Field) *string {
	switch f {
	case FieldAuthors:
		return &r.Authors
	case FieldDescription:
		return &r.Description
	case FieldHomepage:
		return &r.Homepage
	case FieldLicense:
		return &r.License
	case FieldLicenseFile:
		return &r.LicenseFile
	case FieldName:
		return &r.Name
	case FieldRepository:
		return &r.Repository
	case FieldVersion:
		return &r.Version
	case FieldVersionMajor:
		return &r.VersionMajor
	case FieldVersionMinor:
		return &r.VersionMinor
	case FieldVersionPatch:
		return &r.VersionPatch
	case FieldVersionPre:
		return &r.VersionPre
	default:
		panic(fmt.Sprintf("metadata: unknown field %d", int(f)))
	}
}

// Get reports the field value and whether it is present.
func (r Record) Get(f Field) (string, bool) {
	v := *r.slot(f)
	return v, v != ""
}

// Set stores a value verbatim.
func (r *Record) Set(f Field, value string) {
	*r.slot(f) = value
}

// LookupFunc returns the text of a variable, or "" when it is not set.
type LookupFunc func(key string) string

// EnvLookup reads the process environment. Unset variables read as "".
func EnvLookup(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return ""
	}
	return value
}

// Load builds a Record by looking up every field once.
func Load(prefix string, lookup LookupFunc) Record {
	if lookup == nil {
		lookup = EnvLookup
	}
	var rec Record
	for _, f := range Fields() {
		rec.Set(f, lookup(f.EnvKey(prefix)))
	}
	return rec
}
