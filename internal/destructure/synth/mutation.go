package synth

import (
	"go/token"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
	"github.com/HalsekiRaika/destructure/internal/destructure/parse"
)

// mutation emits the consuming Reconstruct and TryReconstruct operations, the
// mutable pointer view, and the in-place Substitute operation.
//
// Both operations invoke the callback exactly once, synchronously, on the
// caller's goroutine; they hold no state beyond the call.
type mutation struct {
	rec   *parse.Record
	names Names
}

func (a *mutation) Pos() token.Pos { return a.rec.Pos() }

func (a *mutation) WriteDefineCode(w *codefmt.Writer) {
	n := methodNamesOf(a.rec)
	decl := typeParamsDecl(w, a.rec.TypeParams)
	use := typeParamsUse(a.rec.TypeParams)

	w.Printf("// Reconstruct decomposes %s into a %s, passes it to %s, and\n", n.Recv, a.names.Companion, n.Fn)
	w.Printf("// reassembles a new %s from the possibly mutated fields. Fields %s does\n", a.rec.Name, n.Fn)
	w.Printf("// not touch carry through unchanged.\n")
	w.Printf("func (%s %s%s) Reconstruct(%s func(*%s%s)) %s%s {\n", n.Recv, a.rec.Name, use, n.Fn, a.names.Companion, use, a.rec.Name, use)
	w.Printf("%s := %s.IntoDestruct()\n", n.Dest, n.Recv)
	w.Printf("%s(&%s)\n", n.Fn, n.Dest)
	w.Printf("return %s.Freeze()\n", n.Dest)
	w.Printf("}\n")
	w.Printf("\n")

	w.Printf("// TryReconstruct is Reconstruct for callbacks that may fail. On error the\n")
	w.Printf("// zero %s is returned along with %s's error.\n", a.rec.Name, n.Fn)
	w.Printf("func (%s %s%s) TryReconstruct(%s func(*%s%s) error) (%s%s, error) {\n", n.Recv, a.rec.Name, use, n.Fn, a.names.Companion, use, a.rec.Name, use)
	w.Printf("%s := %s.IntoDestruct()\n", n.Dest, n.Recv)
	w.Printf("if %s := %s(&%s); %s != nil {\n", n.Err, n.Fn, n.Dest, n.Err)
	w.Printf("return %s%s{}, %s\n", a.rec.Name, use, n.Err)
	w.Printf("}\n")
	w.Printf("return %s.Freeze(), nil\n", n.Dest)
	w.Printf("}\n")
	w.Printf("\n")

	w.Printf("// %s is a mutable view over the fields of a %s. Every entry points\n", a.names.Mut, a.rec.Name)
	w.Printf("// directly into the original value's storage.\n")
	w.Printf("type %s%s struct {\n", a.names.Mut, decl)
	for f := range a.rec.CompanionFields() {
		if f.Skip {
			continue
		}
		w.Printf("%s *%s\n", f.Exported, w.Expr(f.Expr))
	}
	w.Printf("}\n")
	w.Printf("\n")

	w.Printf("// Substitute passes a %s view aliasing %s's own fields to %s,\n", a.names.Mut, n.Recv, n.Fn)
	w.Printf("// mutating %s in place. Nothing is copied or reallocated, which makes it\n", n.Recv)
	w.Printf("// suitable for repeated invocation in a loop.\n")
	w.Printf("func (%s *%s%s) Substitute(%s func(%s%s)) {\n", n.Recv, a.rec.Name, use, n.Fn, a.names.Mut, use)
	w.Printf("%s(%s%s{\n", n.Fn, a.names.Mut, use)
	for f := range a.rec.CompanionFields() {
		if f.Skip {
			continue
		}
		w.Printf("%s: &%s.%s,\n", f.Exported, n.Recv, f.Name)
	}
	w.Printf("})\n")
	w.Printf("}\n")
}
