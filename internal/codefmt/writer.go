package codefmt

import (
	"fmt"
	"go/ast"
	"go/types"
	"io"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"
)

// Writer is a writer for generated code. It collects the imports required by
// the expressions it prints so that the caller can frame the output with an
// import declaration.
type Writer struct {
	w       io.Writer
	pkg     *packages.Package
	fmt     Formatter
	imports map[string]Import
}

// NewWriter creates a new [Writer].
func NewWriter(w io.Writer, pkg *packages.Package) *Writer {
	return &Writer{
		w:       w,
		pkg:     pkg,
		fmt:     New(pkg),
		imports: make(map[string]Import),
	}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Printf writes a formatted string to the underlying writer.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w.w, format, args...)
}

// Expr prints the expression verbatim as it appears in the source and records
// every package the expression refers to for the import declaration.
func (w *Writer) Expr(expr ast.Expr) string {
	w.importExpr(expr)
	return w.fmt.Expr(expr)
}

// Import is an import required by the emitted code.
type Import struct {
	// Path is the import path of the package.
	Path string

	// HasAlias indicates that the import needs an alias because the emitted
	// code refers to the package by a name other than its own.
	HasAlias bool
}

// Imports returns the collected imports, keyed by the package name used in the
// emitted code. Imports are collected by [Writer.Expr].
func (w *Writer) Imports() map[string]Import {
	return w.imports
}

// importExpr records the packages referred to by qualified identifiers in the
// given expression. The emitted code prints expressions verbatim, so the
// import alias must match the qualifier used in the source.
func (w *Writer) importExpr(node ast.Node) {
	astutil.Apply(node, func(c *astutil.Cursor) bool {
		sel, ok := c.Node().(*ast.SelectorExpr)
		if !ok {
			return true
		}

		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		pkgName, ok := w.pkg.TypesInfo.ObjectOf(id).(*types.PkgName)
		if !ok {
			// The qualifier is not a package name.
			return true
		}

		imported := pkgName.Imported()
		w.imports[id.Name] = Import{
			Path:     imported.Path(),
			HasAlias: id.Name != imported.Name(),
		}
		return true
	}, nil)
}
