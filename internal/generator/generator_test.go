package generator

import (
	"bytes"
	"errors"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/launchbynttdata/go-pkginfo/internal/metadata"
)

type result struct {
	value   string
	present bool
}

type generated struct {
	file      *ast.File
	receivers map[string]string
	results   map[string]result
}

// inspect parses generated code and evaluates every accessor's return statement.
func inspect(t *testing.T, src []byte) generated {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "gen.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}

	g := generated{file: file, receivers: map[string]string{}, results: map[string]result{}}
	for _, d := range file.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if fn.Recv == nil || len(fn.Recv.List) != 1 {
			t.Fatalf("%s: expected a single receiver", fn.Name.Name)
		}
		g.receivers[fn.Name.Name] = exprString(t, fset, fn.Recv.List[0].Type)

		if len(fn.Body.List) != 1 {
			t.Fatalf("%s: expected a single statement", fn.Name.Name)
		}
		ret, ok := fn.Body.List[0].(*ast.ReturnStmt)
		if !ok || len(ret.Results) != 2 {
			t.Fatalf("%s: expected return of two values", fn.Name.Name)
		}
		lit, ok := ret.Results[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			t.Fatalf("%s: first result is not a string literal", fn.Name.Name)
		}
		value, err := strconv.Unquote(lit.Value)
		if err != nil {
			t.Fatalf("%s: unquote: %v", fn.Name.Name, err)
		}
		ident, ok := ret.Results[1].(*ast.Ident)
		if !ok || (ident.Name != "true" && ident.Name != "false") {
			t.Fatalf("%s: second result is not a bool literal", fn.Name.Name)
		}
		g.results[fn.Name.Name] = result{value: value, present: ident.Name == "true"}
	}
	return g
}

func exprString(t *testing.T, fset *token.FileSet, expr ast.Expr) string {
	t.Helper()
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		t.Fatalf("print expr: %v", err)
	}
	return buf.String()
}

func lookupFrom(env map[string]string) metadata.LookupFunc {
	return func(key string) string { return env[key] }
}

func plainDecl() TypeDecl {
	return TypeDecl{Package: "app", Name: "Info"}
}

func TestGenerateAllAbsent(t *testing.T) {
	t.Parallel()

	gen := New(nil, lookupFrom(nil))
	out, err := gen.Generate(Request{Decl: plainDecl(), EnvPrefix: metadata.DefaultPrefix})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	g := inspect(t, out)
	if len(g.results) != len(metadata.Fields()) {
		t.Fatalf("accessors: want %d got %d", len(metadata.Fields()), len(g.results))
	}
	for _, f := range metadata.Fields() {
		r, ok := g.results[f.Method()]
		if !ok {
			t.Fatalf("%s not generated", f.Method())
		}
		if r.present || r.value != "" {
			t.Fatalf("%s: want absent got %+v", f.Method(), r)
		}
	}
}

func TestGenerateAllPresentExact(t *testing.T) {
	t.Parallel()

	env := map[string]string{}
	for _, f := range metadata.Fields() {
		env[f.EnvKey(metadata.DefaultPrefix)] = " " + f.Method() + " \"quoted\"\t\\ ünïcode\n"
	}

	out, err := New(nil, lookupFrom(env)).Generate(Request{Decl: plainDecl(), EnvPrefix: metadata.DefaultPrefix})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	g := inspect(t, out)
	for _, f := range metadata.Fields() {
		want := env[f.EnvKey(metadata.DefaultPrefix)]
		r := g.results[f.Method()]
		if !r.present || r.value != want {
			t.Fatalf("%s: want present %q got %+v", f.Method(), want, r)
		}
	}
}

func TestGenerateNameSetHomepageUnset(t *testing.T) {
	t.Parallel()

	env := map[string]string{"PKGINFO_NAME": "package_info"}
	out, err := New(nil, lookupFrom(env)).Generate(Request{Decl: plainDecl(), EnvPrefix: metadata.DefaultPrefix})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	g := inspect(t, out)
	if r := g.results["Name"]; !r.present || r.value != "package_info" {
		t.Fatalf("name: want present package_info got %+v", r)
	}
	if r := g.results["Homepage"]; r.present {
		t.Fatalf("homepage: want absent got %+v", r)
	}
}

func TestGenerateVersionComponents(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"PKGINFO_VERSION":       "1.2.3",
		"PKGINFO_VERSION_MAJOR": "1",
		"PKGINFO_VERSION_MINOR": "2",
		"PKGINFO_VERSION_PATCH": "3",
	}
	out, err := New(nil, lookupFrom(env)).Generate(Request{Decl: plainDecl(), EnvPrefix: metadata.DefaultPrefix})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	g := inspect(t, out)
	want := map[string]string{"Version": "1.2.3", "VersionMajor": "1", "VersionMinor": "2", "VersionPatch": "3"}
	for method, value := range want {
		if r := g.results[method]; !r.present || r.value != value {
			t.Fatalf("%s: want present %q got %+v", method, value, r)
		}
	}
	if r := g.results["VersionPre"]; r.present {
		t.Fatalf("version pre: want absent got %+v", r)
	}
}

func TestGenerateDeriveVersion(t *testing.T) {
	t.Parallel()

	env := map[string]string{"PKGINFO_VERSION": "v0.4.1-alpha.2", "PKGINFO_VERSION_MINOR": "four"}
	out, err := New(nil, lookupFrom(env)).Generate(Request{
		Decl:          plainDecl(),
		EnvPrefix:     metadata.DefaultPrefix,
		DeriveVersion: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	g := inspect(t, out)
	want := map[string]string{"VersionMajor": "0", "VersionMinor": "four", "VersionPatch": "1", "VersionPre": "alpha.2"}
	for method, value := range want {
		if r := g.results[method]; !r.present || r.value != value {
			t.Fatalf("%s: want present %q got %+v", method, value, r)
		}
	}
}

func TestGenerateDeriveVersionWarnsOnInvalid(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	env := map[string]string{"PKGINFO_VERSION": "nightly"}
	out, err := New(zap.New(core), lookupFrom(env)).Generate(Request{
		Decl:          plainDecl(),
		EnvPrefix:     metadata.DefaultPrefix,
		DeriveVersion: true,
	})
	if err != nil {
		t.Fatalf("generate should not fail on unparseable version: %v", err)
	}

	g := inspect(t, out)
	if r := g.results["Version"]; !r.present || r.value != "nightly" {
		t.Fatalf("version: want present nightly got %+v", r)
	}
	if r := g.results["VersionMajor"]; r.present {
		t.Fatalf("version major: want absent got %+v", r)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 warning, got %d", logs.Len())
	}
	if msg := logs.All()[0].Message; msg != "version components not derived" {
		t.Fatalf("unexpected log message: %q", msg)
	}
}

func TestGenerateCustomPrefix(t *testing.T) {
	t.Parallel()

	env := map[string]string{"CARGO_PKG_NAME": "cargo_name", "PKGINFO_NAME": "ignored"}
	out, err := New(nil, lookupFrom(env)).Generate(Request{Decl: plainDecl(), EnvPrefix: "CARGO_PKG"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if r := inspect(t, out).results["Name"]; r.value != "cargo_name" {
		t.Fatalf("name: want cargo_name got %+v", r)
	}
}

func TestGenerateReadsProcessEnvironmentByDefault(t *testing.T) {
	t.Setenv("GENTEST_PKG_LICENSE", "Apache-2.0")
	t.Setenv("GENTEST_PKG_LICENSE_FILE", "")

	out, err := New(nil, nil).Generate(Request{Decl: plainDecl(), EnvPrefix: "GENTEST_PKG"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	g := inspect(t, out)
	if r := g.results["License"]; !r.present || r.value != "Apache-2.0" {
		t.Fatalf("license: want present Apache-2.0 got %+v", r)
	}
	if r := g.results["LicenseFile"]; r.present {
		t.Fatalf("license file: want absent got %+v", r)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	env := map[string]string{"PKGINFO_NAME": "det", "PKGINFO_AUTHORS": "a:b", "PKGINFO_VERSION": "9.9.9"}
	gen := New(nil, lookupFrom(env))
	decl, err := ParseDecl("app", "type Pair[K comparable, V any] struct{ k K; v V }")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	first, err := gen.Generate(Request{Decl: decl, EnvPrefix: metadata.DefaultPrefix})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := gen.Generate(Request{Decl: decl, EnvPrefix: metadata.DefaultPrefix})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("output differs between runs:\n%s\n---\n%s", first, again)
		}
	}
}

func TestGenerateGenericReceivers(t *testing.T) {
	t.Parallel()

	decl, err := ParseDecl("app", "type Store[K comparable, V ~int | ~string] map[K]V")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	out, err := New(nil, lookupFrom(nil)).Generate(Request{
		Decl:      decl,
		EnvPrefix: metadata.DefaultPrefix,
		Options:   Options{Assert: true},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	g := inspect(t, out)
	for _, f := range metadata.Fields() {
		if got := g.receivers[f.Method()]; got != "Store[K, V]" {
			t.Fatalf("%s receiver: want Store[K, V] got %s", f.Method(), got)
		}
	}
	if len(g.file.Imports) != 0 {
		t.Fatalf("generic types must not import the contract package")
	}
	if !strings.Contains(string(out), "Store[K comparable, V ~int | ~string]") {
		t.Fatalf("constraints missing from generated doc:\n%s", out)
	}
}

func TestGenerateAssertion(t *testing.T) {
	t.Parallel()

	out, err := New(nil, lookupFrom(nil)).Generate(Request{
		Decl:      plainDecl(),
		EnvPrefix: metadata.DefaultPrefix,
		Options:   Options{Assert: true, ImportPath: "example.com/contract"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	g := inspect(t, out)
	if len(g.file.Imports) != 1 || g.file.Imports[0].Path.Value != `"example.com/contract"` {
		t.Fatalf("expected single contract import, got %+v", g.file.Imports)
	}
	if !strings.Contains(string(out), "var _ pkginfo.PackageInfo = (*Info)(nil)") {
		t.Fatalf("assertion missing:\n%s", out)
	}
	if !strings.HasPrefix(string(out), "// Code generated by pkginfo-gen; DO NOT EDIT.\n") {
		t.Fatalf("missing generated header:\n%s", out)
	}
	if g.file.Name.Name != "app" {
		t.Fatalf("package: want app got %s", g.file.Name.Name)
	}
}

func TestParseErrorIsTyped(t *testing.T) {
	t.Parallel()

	_, err := ParseDecl("app", "type struct {")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T (%v)", err, err)
	}
}
