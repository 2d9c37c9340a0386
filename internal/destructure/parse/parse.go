// Package parse extracts record models from annotated struct declarations.
//
// A type requests generated capabilities with a derive directive in its doc
// comment:
//
//	//destructure:derive Destructure,Mutation
//	type Book struct { ... }
//
// The extractor is purely syntactic: field types and type parameter
// constraints are captured as source expressions and never inspected.
package parse

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
)

const directivePrefix = "//destructure:"

// Parser collects destructure records from the AST of the underlying package.
type Parser struct{ pkg *packages.Package }

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}
	return &Parser{pkg: pkg}, nil
}

// Records extracts a [Record] for every annotated type declaration in the
// package, in source order. Extraction failures do not stop the scan; all
// diagnostics are joined into the returned error.
func (p *Parser) Records() ([]*Record, error) {
	var recs []*Record
	var errs error

	for _, file := range p.pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				spec := spec.(*ast.TypeSpec)

				dir, ok := p.directiveOf(gen, spec)
				if !ok {
					continue
				}

				caps, err := p.parseDirective(dir)
				if err != nil {
					errs = errors.Join(errs, err)
					continue
				}

				rec, err := p.extractRecord(spec, caps)
				if err != nil {
					errs = errors.Join(errs, err)
					continue
				}
				recs = append(recs, rec)
			}
		}
	}

	return recs, errs
}

// directive is a single destructure comment directive.
type directive struct {
	verb string
	args string
	pos  token.Pos
}

func (d directive) Pos() token.Pos { return d.pos }

// directiveOf finds the destructure directive attached to the type spec. For a
// single-spec declaration the doc comment belongs to the declaration itself;
// in a grouped declaration each spec carries its own.
func (p *Parser) directiveOf(gen *ast.GenDecl, spec *ast.TypeSpec) (directive, bool) {
	doc := spec.Doc
	if doc == nil && len(gen.Specs) == 1 {
		doc = gen.Doc
	}
	if doc == nil {
		return directive{}, false
	}

	for _, comment := range doc.List {
		rest, ok := strings.CutPrefix(comment.Text, directivePrefix)
		if !ok {
			continue
		}

		verb, args, _ := strings.Cut(rest, " ")
		return directive{verb: verb, args: args, pos: comment.Pos()}, true
	}
	return directive{}, false
}

// parseDirective resolves the capability set requested by a derive directive.
func (p *Parser) parseDirective(dir directive) (CapSet, error) {
	if dir.verb != "derive" {
		return 0, codefmt.Errorf(p, dir, "destructure:%s: %w", dir.verb, ErrUnknownDirective)
	}

	var caps CapSet
	var errs error
	for _, name := range strings.Split(dir.args, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		c, ok := parseCapability(name)
		if !ok {
			errs = errors.Join(errs, codefmt.Errorf(p, dir, "%s: %w", name, ErrUnknownCapability))
			continue
		}
		caps = caps.Add(c)
	}
	if errs != nil {
		return 0, errs
	}

	if caps == 0 {
		return 0, codefmt.Errorf(p, dir, "derive needs at least one capability: %w", ErrUnknownCapability)
	}
	return caps, nil
}
