package synth

import (
	"go/ast"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
	"github.com/HalsekiRaika/destructure/internal/destructure/parse"
)

// Scheme derives artifact type names from a record type name. The derivation
// is plain concatenation: distinct type names always derive distinct artifact
// names, so no hashing is involved.
type Scheme struct {
	// Prefix of the companion type name, "Destruct" by default.
	Prefix string

	// MutSuffix of the mutable view type name, "Mut" by default.
	MutSuffix string

	// RefSuffix of the read-only view type name, "Ref" by default. The ref
	// view also carries the companion prefix.
	RefSuffix string
}

// DefaultScheme returns the documented naming convention: DestructT, TMut,
// and DestructTRef.
func DefaultScheme() Scheme {
	return Scheme{Prefix: "Destruct", MutSuffix: "Mut", RefSuffix: "Ref"}
}

// Names holds every type name derived for one record.
type Names struct {
	// Companion is the name of the fully exposed companion type.
	Companion string

	// Mut is the name of the mutable pointer view type.
	Mut string

	// Ref is the name of the read-only pointer view type.
	Ref string
}

// Of derives the artifact names for a type name.
func (s Scheme) Of(typeName string) Names {
	return Names{
		Companion: s.Prefix + typeName,
		Mut:       typeName + s.MutSuffix,
		Ref:       s.Prefix + typeName + s.RefSuffix,
	}
}

// methodNames are the identifiers declared inside the emitted methods.
// Receivers and parameters share a scope with the receiver type parameters,
// and the locals appear inside type argument lists, so every one of them is
// disambiguated against the record's type parameters. Fields are always
// accessed through a receiver and cannot collide.
type methodNames struct {
	// Recv is the receiver of the original type's methods, the lower-cased
	// first rune of the type name.
	Recv string

	// CompRecv is the receiver of the companion's methods.
	CompRecv string

	// Fn is the callback parameter of Reconstruct, TryReconstruct, and
	// Substitute.
	Fn string

	// Dest is the companion local in Reconstruct and TryReconstruct.
	Dest string

	// Err is the error local in TryReconstruct.
	Err string
}

func methodNamesOf(rec *parse.Record) methodNames {
	ns := typeParamNS(rec)

	n := methodNames{
		Fn:   ns.Name("fn"),
		Dest: ns.Name("dest"),
		Err:  ns.Name("err"),
	}

	r, _ := utf8.DecodeRuneInString(rec.Name)
	n.Recv = ns.Name(string(unicode.ToLower(r)))

	// The companion's methods are a separate scope; only the shared type
	// parameters constrain the receiver there.
	n.CompRecv = typeParamNS(rec).Name("d")
	return n
}

// typeParamNS is a namespace with the record's type parameter names reserved.
func typeParamNS(rec *parse.Record) codefmt.NS {
	ns := make(codefmt.NS)
	if rec.TypeParams != nil {
		for _, param := range rec.TypeParams.List {
			for _, name := range param.Names {
				ns.Reserve(name.Name)
			}
		}
	}
	return ns
}

// typeParamsDecl prints a type parameter list for a type or view declaration,
// constraints included, copied verbatim from the record. Returns "" for
// non-generic records.
func typeParamsDecl(w *codefmt.Writer, params *ast.FieldList) string {
	if params == nil || len(params.List) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, param := range params.List {
		if i > 0 {
			b.WriteString(", ")
		}
		for j, name := range param.Names {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name.Name)
		}
		b.WriteByte(' ')
		b.WriteString(w.Expr(param.Type))
	}
	b.WriteByte(']')
	return b.String()
}

// typeParamsUse prints a type argument list for mentioning a generic type.
// Returns "" for non-generic records.
func typeParamsUse(params *ast.FieldList) string {
	if params == nil || len(params.List) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('[')
	first := true
	for _, param := range params.List {
		for _, name := range param.Names {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(name.Name)
		}
	}
	b.WriteByte(']')
	return b.String()
}
