package destructureinternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io"
	"maps"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/tools/go/packages"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
	"github.com/HalsekiRaika/destructure/internal/destructure/parse"
	"github.com/HalsekiRaika/destructure/internal/destructure/synth"
)

// Generator generates destructure code for the target package. Call [Build]
// and then [Generate] to get the generated code. All potential errors are
// returned by [Build]. Once [Build] succeeds, [Generate] never fails.
type Generator struct {
	p      *parse.Parser
	scheme synth.Scheme
	ns     codefmt.NS
	buf    *bytes.Buffer
	w      *codefmt.Writer
	debug  io.Writer

	recs []*parse.Record
	arts map[*parse.Record][]synth.Artifact
}

// New creates a new [Generator] for the given package. The package must have
// its Syntax, Types, and TypesInfo, and must not have any errors.
func New(pkg *packages.Package, scheme synth.Scheme) (*Generator, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Generator{
		p:      parser,
		scheme: scheme,
		ns:     codefmt.NewNS(pkg.Types.Scope()),
		buf:    &buf,
		w:      codefmt.NewWriter(&buf, pkg),
		arts:   make(map[*parse.Record][]synth.Artifact),
	}, nil
}

// SetDebug makes [Build] dump a summary of every extracted record to w.
func (g *Generator) SetDebug(w io.Writer) { g.debug = w }

// Build extracts record models and synthesizes their artifacts. All potential
// errors are returned by this method, joined. It must be called before
// [Generate]. A record with any diagnostic produces no artifacts at all.
func (g *Generator) Build() error {
	recs, errs := g.p.Records()
	errs = errors.Join(errs, g.p.Validate(recs))

	slices.SortFunc(recs, func(a, b *parse.Record) int {
		return int(a.Pos() - b.Pos())
	})
	g.recs = recs

	for _, rec := range recs {
		if g.debug != nil {
			g.dumpRecord(rec)
		}

		// A record that failed validation already carries a diagnostic and
		// produces no artifacts.
		if !rec.Validated() {
			continue
		}

		names := g.scheme.Of(rec.Name)

		arts, err := synth.Build(rec, names)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if err := g.reserve(rec, names); err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		g.arts[rec] = arts
	}

	return errs
}

// reserve claims every derived type name in the package namespace. A name
// already taken, by the package scope or by another record, is a collision.
func (g *Generator) reserve(rec *parse.Record, names synth.Names) error {
	derived := []string{names.Companion}
	if rec.Caps.Has(parse.Mutation) {
		derived = append(derived, names.Mut)
	}
	if rec.Caps.Has(parse.Ref) {
		derived = append(derived, names.Ref)
	}

	var errs error
	for _, name := range derived {
		if !g.ns.Reserve(name) {
			err := codefmt.Errorf(rec, rec, "%s derived for %s is already declared: %w",
				name, rec.Name, parse.ErrNamingCollision)
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// Generate generates destructure code for the package. It must be called
// after [Build] succeeds. If no record produced artifacts, it returns nil.
func (g *Generator) Generate() []byte {
	if len(g.arts) == 0 {
		return nil
	}
	g.writeArtifacts()
	return g.frameCode()
}

// writeArtifacts writes every record's artifacts in source order.
func (g *Generator) writeArtifacts() {
	for _, rec := range g.recs {
		arts, ok := g.arts[rec]
		if !ok {
			continue
		}

		g.w.Printf("// destructure: %s (%s)\n\n", rec.Name, rec.Caps)
		for _, art := range arts {
			art.WriteDefineCode(g.w)
			g.w.Printf("\n")
		}
	}
}

// frameCode frames the written artifacts with the generated-code header, the
// package clause, and the collected import declaration, then gofmts.
func (g *Generator) frameCode() []byte {
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by github.com/HalsekiRaika/destructure%s. DO NOT EDIT.\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n", g.p.Pkg().Name)

	if imports := g.w.Imports(); len(imports) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for _, alias := range slices.Sorted(maps.Keys(imports)) {
			imp := imports[alias]
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", alias, imp.Path)
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path)
			}
		}
		fmt.Fprintf(&buf, ")\n")
	}

	_, _ = io.Copy(&buf, g.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}

// recordSummary is the debug dump shape for one extracted record.
type recordSummary struct {
	Type   string
	Caps   string
	Fields []string
}

func (g *Generator) dumpRecord(rec *parse.Record) {
	summary := recordSummary{Type: rec.Name, Caps: rec.Caps.String()}
	for _, f := range rec.Fields {
		entry := fmt.Sprintf("%s %s", f.Name, codefmt.FormatExpr(g.p, f.Expr))
		if f.Skip {
			entry += " (skip)"
		}
		summary.Fields = append(summary.Fields, entry)
	}
	spew.Fdump(g.debug, summary)
}
