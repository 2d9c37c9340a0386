// Package destructureanalysis integrates the destructure generator with the
// Go analysis protocol, so derive diagnostics show up in editors and linters
// at their annotation sites.
package destructureanalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
	destructureinternal "github.com/HalsekiRaika/destructure/internal/destructure"
	"github.com/HalsekiRaika/destructure/internal/destructure/synth"
)

// Analyzer validates the usage of destructure derive directives in the
// package.
var Analyzer = &analysis.Analyzer{
	Name: "destructure",
	Doc:  "linter for destructure derive directives",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	g, err := destructureinternal.New(pkg, synth.DefaultScheme())
	if err != nil {
		return nil, err
	}

	if err := g.Build(); err != nil {
		// Unroll all errors and report them
		errs := []error{err}
		for len(errs) != 0 {
			err := errs[0]
			errs = errs[1:]

			if codeErr, ok := err.(*codefmt.CodeError); ok {
				pass.Report(analysis.Diagnostic{
					Pos:     codeErr.Pos(),
					End:     codeErr.End(),
					Message: codeErr.Unwrap().Error(),
				})
				continue
			}

			if u, ok := err.(interface{ Unwrap() []error }); ok {
				errs = append(errs, u.Unwrap()...)
			}
		}
	}

	return nil, nil
}
