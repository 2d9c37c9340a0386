package synth

import (
	"go/token"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
	"github.com/HalsekiRaika/destructure/internal/destructure/parse"
)

// refView emits the read-only pointer view and AsDestruct. Unlike Substitute,
// the view escapes the call, so reads stay valid as long as the original does;
// writing through it is out of contract.
type refView struct {
	rec   *parse.Record
	names Names
}

func (a *refView) Pos() token.Pos { return a.rec.Pos() }

func (a *refView) WriteDefineCode(w *codefmt.Writer) {
	n := methodNamesOf(a.rec)
	decl := typeParamsDecl(w, a.rec.TypeParams)
	use := typeParamsUse(a.rec.TypeParams)

	w.Printf("// %s is a read-only view over the fields of a %s.\n", a.names.Ref, a.rec.Name)
	w.Printf("type %s%s struct {\n", a.names.Ref, decl)
	for f := range a.rec.CompanionFields() {
		if f.Skip {
			continue
		}
		w.Printf("%s *%s\n", f.Exported, w.Expr(f.Expr))
	}
	w.Printf("}\n")
	w.Printf("\n")

	w.Printf("// AsDestruct exposes %s's fields for reading without copying them.\n", n.Recv)
	w.Printf("func (%s *%s%s) AsDestruct() %s%s {\n", n.Recv, a.rec.Name, use, a.names.Ref, use)
	w.Printf("return %s%s{\n", a.names.Ref, use)
	for f := range a.rec.CompanionFields() {
		if f.Skip {
			continue
		}
		w.Printf("%s: &%s.%s,\n", f.Exported, n.Recv, f.Name)
	}
	w.Printf("}\n")
	w.Printf("}\n")
}
