package generator

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
)

// ParseError reports input that is not a usable type declaration.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return "parse declaration: " + e.Err.Error()
	}
	return fmt.Sprintf("parse declaration in %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TypeParam is one entry of a type parameter list, e.g. "K, V comparable".
type TypeParam struct {
	Names      []string
	Constraint string
}

// TypeDecl describes the type the accessors are generated for.
type TypeDecl struct {
	Package    string
	Name       string
	TypeParams []TypeParam
}

// Generic reports whether the type declares type parameters.
func (d TypeDecl) Generic() bool {
	return len(d.TypeParams) > 0
}

// Receiver renders the receiver type, e.g. "Store[K, V]".
func (d TypeDecl) Receiver() string {
	if !d.Generic() {
		return d.Name
	}
	var names []string
	for _, p := range d.TypeParams {
		names = append(names, p.Names...)
	}
	return d.Name + "[" + strings.Join(names, ", ") + "]"
}

// Signature renders the declared type with constraints, e.g. "Store[K comparable, V any]".
func (d TypeDecl) Signature() string {
	if !d.Generic() {
		return d.Name
	}
	groups := make([]string, 0, len(d.TypeParams))
	for _, p := range d.TypeParams {
		groups = append(groups, strings.Join(p.Names, ", ")+" "+p.Constraint)
	}
	return d.Name + "[" + strings.Join(groups, ", ") + "]"
}

const declPlaceholderPackage = "pkginfodecl"

// ParseDecl parses a single type declaration such as
// "type Store[K comparable, V any] struct{}". pkg becomes the package clause
// of the generated file.
func ParseDecl(pkg, src string) (TypeDecl, error) {
	if !token.IsIdentifier(pkg) {
		return TypeDecl{}, &ParseError{Err: fmt.Errorf("invalid package name %q", pkg)}
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", "package "+declPlaceholderPackage+"\n"+src, parser.SkipObjectResolution)
	if err != nil {
		return TypeDecl{}, &ParseError{Err: err}
	}

	if len(file.Decls) != 1 {
		return TypeDecl{}, &ParseError{Err: fmt.Errorf("expected exactly one declaration, found %d", len(file.Decls))}
	}
	gen, ok := file.Decls[0].(*ast.GenDecl)
	if !ok || gen.Tok != token.TYPE {
		return TypeDecl{}, &ParseError{Err: errors.New("not a type declaration")}
	}
	if len(gen.Specs) != 1 {
		return TypeDecl{}, &ParseError{Err: fmt.Errorf("expected exactly one type, found %d", len(gen.Specs))}
	}

	decl, err := fromSpec(pkg, gen.Specs[0].(*ast.TypeSpec))
	if err != nil {
		return TypeDecl{}, &ParseError{Err: err}
	}
	return decl, nil
}

// FindDecl parses a Go source file and returns the declaration of the named
// type. src follows go/parser.ParseFile: nil reads filename from disk.
func FindDecl(filename string, src any, name string) (TypeDecl, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return TypeDecl{}, &ParseError{Source: filename, Err: err}
	}

	for _, d := range file.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, s := range gen.Specs {
			spec := s.(*ast.TypeSpec)
			if spec.Name.Name != name {
				continue
			}
			decl, err := fromSpec(file.Name.Name, spec)
			if err != nil {
				return TypeDecl{}, &ParseError{Source: filename, Err: err}
			}
			return decl, nil
		}
	}

	return TypeDecl{}, &ParseError{Source: filename, Err: fmt.Errorf("type %s not declared", name)}
}

func fromSpec(pkg string, spec *ast.TypeSpec) (TypeDecl, error) {
	name := spec.Name.Name
	if name == "_" {
		return TypeDecl{}, errors.New("blank type name")
	}
	if spec.Assign.IsValid() {
		return TypeDecl{}, fmt.Errorf("%s is an alias; methods need a defined type", name)
	}
	switch spec.Type.(type) {
	case *ast.InterfaceType:
		return TypeDecl{}, fmt.Errorf("%s is an interface type", name)
	case *ast.StarExpr:
		return TypeDecl{}, fmt.Errorf("%s is a pointer type", name)
	}

	decl := TypeDecl{Package: pkg, Name: name}
	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			param := TypeParam{Constraint: types.ExprString(field.Type)}
			for _, n := range field.Names {
				param.Names = append(param.Names, n.Name)
			}
			decl.TypeParams = append(decl.TypeParams, param)
		}
	}
	return decl, nil
}
