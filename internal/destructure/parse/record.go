package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"iter"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/tools/go/packages"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
)

// Field describes one field of an annotated struct. Immutable once extracted.
// The declared type is carried as the source expression and printed verbatim
// into every artifact that mentions it.
type Field struct {
	// Name is the field identifier as declared.
	Name string

	// Exported is the name the field takes in the companion type: Name with
	// its first rune upper-cased. For skipped fields it equals Name.
	Exported string

	// Expr is the declared type as source syntax.
	Expr ast.Expr

	// Skip marks a field tagged `destructure:"skip"`. It is carried through
	// conversion and reconstruction but stays unexported in the companion and
	// is absent from the pointer views.
	Skip bool

	// Index is the declaration order of the field, the join key between the
	// original and the companion.
	Index int

	pos token.Pos
	end token.Pos
}

func (f Field) Pos() token.Pos { return f.pos }
func (f Field) End() token.Pos { return f.end }

// Record is the model of one annotated struct type: the input of every
// synthesizer. Built once per type and discarded after emission.
type Record struct {
	// Name is the declared type name.
	Name string

	// TypeParams is the type parameter list, captured opaquely. Nil for
	// non-generic types.
	TypeParams *ast.FieldList

	// Fields in declaration order.
	Fields []Field

	// Caps is the requested capability set.
	Caps CapSet

	spec     *ast.TypeSpec
	pkg      *packages.Package
	registry *linkedhashmap.Map
}

func (r *Record) Pkg() *packages.Package { return r.pkg }
func (r *Record) Pos() token.Pos         { return r.spec.Pos() }
func (r *Record) End() token.Pos         { return r.spec.End() }

// Validated reports whether [Parser.Validate] accepted the record. Only
// validated records may be synthesized.
func (r *Record) Validated() bool { return r.registry != nil }

// CompanionFields iterates the validated field registry. The registry is
// insertion-ordered and keyed by the companion field name, so iteration
// yields the companion's fields in declaration order, each exactly once.
func (r *Record) CompanionFields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		it := r.registry.Iterator()
		for it.Next() {
			if !yield(it.Value().(Field)) {
				return
			}
		}
	}
}

// extractRecord builds a [Record] from a type spec. The spec must declare a
// struct type with named fields only; anything else is an unsupported shape.
func (p *Parser) extractRecord(spec *ast.TypeSpec, caps CapSet) (*Record, error) {
	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		typ := codefmt.New(p.pkg).Type(p.pkg.TypesInfo.TypeOf(spec.Type))
		return nil, codefmt.Errorf(p, spec, "%s is %s, not a struct type: %w", spec.Name.Name, typ, ErrUnsupportedShape)
	}

	rec := &Record{
		Name:       spec.Name.Name,
		TypeParams: spec.TypeParams,
		Caps:       caps,
		spec:       spec,
		pkg:        p.pkg,
	}

	var errs error
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			err := codefmt.Errorf(p, field, "%s has an embedded field: %w", rec.Name, ErrUnsupportedShape)
			errs = errors.Join(errs, err)
			continue
		}

		skip := hasSkipTag(field.Tag)

		// A multi-name entry such as "a, b string" expands to one descriptor
		// per name, in textual order.
		for _, name := range field.Names {
			if name.Name == "_" {
				err := codefmt.Errorf(p, name, "%s has a blank field: %w", rec.Name, ErrUnsupportedShape)
				errs = errors.Join(errs, err)
				continue
			}

			f := Field{
				Name:     name.Name,
				Exported: exportName(name.Name),
				Expr:     field.Type,
				Skip:     skip,
				Index:    len(rec.Fields),
				pos:      name.Pos(),
				end:      field.End(),
			}
			if skip {
				f.Exported = f.Name
			}

			if !skip && !token.IsExported(f.Exported) {
				err := codefmt.Errorf(p, f, "cannot derive an exported name for field %s: %w", f.Name, ErrNamingCollision)
				errs = errors.Join(errs, err)
				continue
			}

			rec.Fields = append(rec.Fields, f)
		}
	}
	if errs != nil {
		return nil, errs
	}

	return rec, nil
}

// exportName upper-cases the first rune of a field name. Names that are
// already exported stay unchanged.
func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// hasSkipTag reports whether the field tag carries `destructure:"skip"`.
func hasSkipTag(tag *ast.BasicLit) bool {
	if tag == nil {
		return false
	}
	value := strings.Trim(tag.Value, "`")
	return reflect.StructTag(value).Get("destructure") == "skip"
}
