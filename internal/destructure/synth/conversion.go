package synth

import (
	"go/token"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
	"github.com/HalsekiRaika/destructure/internal/destructure/parse"
)

// conversion emits IntoDestruct and Freeze. Both are total: they perform no
// validation, only relocation of already-valid data, so neither has an error
// path.
type conversion struct {
	rec   *parse.Record
	names Names
}

func (a *conversion) Pos() token.Pos { return a.rec.Pos() }

func (a *conversion) WriteDefineCode(w *codefmt.Writer) {
	n := methodNamesOf(a.rec)
	use := typeParamsUse(a.rec.TypeParams)

	w.Printf("// IntoDestruct moves every field of %s into a %s.\n", n.Recv, a.names.Companion)
	w.Printf("// The receiver is consumed: the companion is a disposable projection of it.\n")
	w.Printf("func (%s %s%s) IntoDestruct() %s%s {\n", n.Recv, a.rec.Name, use, a.names.Companion, use)
	w.Printf("return %s%s{\n", a.names.Companion, use)
	for f := range a.rec.CompanionFields() {
		w.Printf("%s: %s.%s,\n", f.Exported, n.Recv, f.Name)
	}
	w.Printf("}\n")
	w.Printf("}\n")
	w.Printf("\n")

	w.Printf("// Freeze reassembles a %s from the companion's fields.\n", a.rec.Name)
	w.Printf("func (%s %s%s) Freeze() %s%s {\n", n.CompRecv, a.names.Companion, use, a.rec.Name, use)
	w.Printf("return %s%s{\n", a.rec.Name, use)
	for f := range a.rec.CompanionFields() {
		w.Printf("%s: %s.%s,\n", f.Name, n.CompRecv, f.Exported)
	}
	w.Printf("}\n")
	w.Printf("}\n")
}
