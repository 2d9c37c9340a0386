// Package synth derives the companion type and its operations from a record
// model and writes them as Go source.
//
// Synthesis is deterministic: the companion mirrors the record's fields in
// declaration order with unchanged types, and every operation is expressed in
// terms of that shared order. The emitted code is raw; the pipeline gofmts the
// framed file.
package synth

import (
	"go/token"

	"github.com/HalsekiRaika/destructure/internal/codefmt"
	"github.com/HalsekiRaika/destructure/internal/destructure/parse"
)

// Artifact is one self-contained unit of generated code owned by a record.
type Artifact interface {
	// Pos is the position of the owning record, used to emit artifacts in
	// source order.
	Pos() token.Pos

	// WriteDefineCode writes the definition code of the artifact.
	WriteDefineCode(w *codefmt.Writer)
}

// Build synthesizes every artifact requested by the record's capability set.
//
// Mutation and Ref are defined in terms of the companion shape, so requesting
// either without Destructure fails with [parse.ErrMissingDestructure] and no
// artifacts are produced for the type.
func Build(rec *parse.Record, names Names) ([]Artifact, error) {
	if !rec.Caps.Has(parse.Destructure) {
		return nil, codefmt.Errorf(rec, rec, "%s requests %s without Destructure: %w",
			rec.Name, rec.Caps, parse.ErrMissingDestructure)
	}

	arts := []Artifact{
		&companion{rec: rec, names: names},
		&conversion{rec: rec, names: names},
	}
	if rec.Caps.Has(parse.Mutation) {
		arts = append(arts, &mutation{rec: rec, names: names})
	}
	if rec.Caps.Has(parse.Ref) {
		arts = append(arts, &refView{rec: rec, names: names})
	}
	return arts, nil
}
