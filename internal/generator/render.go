package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"text/template"

	"github.com/launchbynttdata/go-pkginfo/internal/metadata"
)

const (
	// DefaultCommand names the generator in the generated file header.
	DefaultCommand = "pkginfo-gen"
	// DefaultImportPath is the import path of the PackageInfo interface.
	DefaultImportPath = "github.com/launchbynttdata/go-pkginfo"
)

// Options controls the shape of the generated file.
type Options struct {
	Command    string
	ImportPath string
	// Assert emits a compile-time check that the type implements
	// pkginfo.PackageInfo. Generic types never get one.
	Assert bool
}

type accessor struct {
	Method  string
	Doc     string
	Present bool
	Literal string
}

type fileData struct {
	Command    string
	Package    string
	Receiver   string
	Signature  string
	Generic    bool
	Assert     bool
	ImportPath string
	Accessors  []accessor
}

var fileTemplate = template.Must(template.New("pkginfo").Parse(`// Code generated by {{.Command}}; DO NOT EDIT.

package {{.Package}}
{{if .Assert}}
import pkginfo "{{.ImportPath}}"

var _ pkginfo.PackageInfo = (*{{.Receiver}})(nil)
{{end}}
{{- if .Generic}}
// Accessors for {{.Signature}}.
{{end}}
{{- range .Accessors}}
// {{.Method}} returns {{.Doc}}.
func ({{$.Receiver}}) {{.Method}}() (string, bool) {
{{- if .Present}}
	return {{.Literal}}, true
{{- else}}
	return "", false
{{- end}}
}
{{end}}`))

// Render produces the gofmt-formatted source of the accessor implementation.
func Render(decl TypeDecl, rec metadata.Record, opts Options) ([]byte, error) {
	if opts.Command == "" {
		opts.Command = DefaultCommand
	}
	if opts.ImportPath == "" {
		opts.ImportPath = DefaultImportPath
	}

	data := fileData{
		Command:    opts.Command,
		Package:    decl.Package,
		Receiver:   decl.Receiver(),
		Signature:  decl.Signature(),
		Generic:    decl.Generic(),
		Assert:     opts.Assert && !decl.Generic(),
		ImportPath: opts.ImportPath,
	}
	for _, f := range metadata.Fields() {
		value, ok := rec.Get(f)
		a := accessor{Method: f.Method(), Doc: f.Doc(), Present: ok}
		if ok {
			a.Literal = strconv.Quote(value)
		}
		data.Accessors = append(data.Accessors, a)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return out, nil
}
