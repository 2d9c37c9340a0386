package codefmt

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

type (
	Pkger interface{ Pkg() *packages.Package }
	Poser interface{ Pos() token.Pos }
	Ender interface{ End() token.Pos }
)

// Formatter formats types, expressions, and positions relative to a package.
type Formatter struct {
	PkgPath   string
	Fset      *token.FileSet
	TypesInfo *types.Info
}

func New(pkg *packages.Package) Formatter {
	if pkg == nil {
		return Formatter{}
	}
	return Formatter{pkg.PkgPath, pkg.Fset, pkg.TypesInfo}
}

func newByPkger(pkger Pkger) Formatter {
	if pkger == nil {
		return New(nil)
	}
	return New(pkger.Pkg())
}

// qf is a [types.Qualifier] for types.TypeString. Types from the target
// package itself are printed unqualified.
func (f Formatter) qf(pkg *types.Package) string {
	if pkg.Path() == f.PkgPath {
		return ""
	}
	return pkg.Name()
}

// Type returns a string representation of the given type.
//
// e.g., f.Type([types.Type for bytes.Buffer]) => "bytes.Buffer"
func (f Formatter) Type(typ types.Type) string {
	return types.TypeString(typ, f.qf)
}

// Expr returns a Go source code representation of the given [ast.Expr].
func (f Formatter) Expr(expr ast.Expr) string {
	var b strings.Builder
	if err := format.Node(&b, f.Fset, expr); err != nil {
		panic(err) // should never happen because ast.Expr must be supported by the go/printer
	}
	return b.String()
}

// wd is the cached working directory.
var wd, _ = os.Getwd()

func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}

	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}

// FormatExpr is a shorthand for [Formatter.Expr].
func FormatExpr(pkger Pkger, expr ast.Expr) string {
	return newByPkger(pkger).Expr(expr)
}

// Errorf is a shorthand for [Formatter.Errorf].
func Errorf(pkger Pkger, poser Poser, format string, args ...any) error {
	return newByPkger(pkger).Errorf(poser, format, args...)
}
