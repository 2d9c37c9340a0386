package synth

import (
	"go/token"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
	"github.com/HalsekiRaika/destructure/internal/destructure/parse"
)

// companion emits the fully exposed mirror of the record: same fields, same
// order, same declared types, visibility forced to exported. It is a passive
// data holder; its only behavior, Freeze, belongs to the conversion artifact.
type companion struct {
	rec   *parse.Record
	names Names
}

func (a *companion) Pos() token.Pos { return a.rec.Pos() }

func (a *companion) WriteDefineCode(w *codefmt.Writer) {
	decl := typeParamsDecl(w, a.rec.TypeParams)

	w.Printf("// %s is the fully exposed companion of %s.\n", a.names.Companion, a.rec.Name)
	w.Printf("// It mirrors every field of %s in declaration order; see Freeze to fold\n", a.rec.Name)
	w.Printf("// it back into a %s.\n", a.rec.Name)
	w.Printf("type %s%s struct {\n", a.names.Companion, decl)
	for f := range a.rec.CompanionFields() {
		w.Printf("%s %s\n", f.Exported, w.Expr(f.Expr))
	}
	w.Printf("}\n")
}
