// Package destructure generates companion types that automate the
// destructure pattern.
//
// A struct with many unexported fields is hard to construct and harder to
// edit: either the package grows a getter and setter per field, or callers
// lose encapsulation entirely. The destructure pattern solves this with a
// generated companion type whose fields mirror the original's, all exported,
// plus a conversion between the two:
//
//	//destructure:derive Destructure
//	type Book struct {
//		id          string
//		name        string
//		publishedAt time.Time
//		author      string
//	}
//
//	// generated:
//	type DestructBook struct {
//		Id          string
//		Name        string
//		PublishedAt time.Time
//		Author      string
//	}
//
//	func (b Book) IntoDestruct() DestructBook { ... }
//	func (d DestructBook) Freeze() Book       { ... }
//
// After annotating types, run the destructure command. It writes
// destructure_gen.go next to the annotated sources:
//
//	go run github.com/HalsekiRaika/destructure/cmd/destructure ./...
//
// # Capabilities
//
// The derive directive accepts a comma-separated capability list.
//
// Destructure emits the companion type, IntoDestruct, and Freeze.
//
// Mutation additionally emits safe field rewriting. Reconstruct consumes the
// original, exposes the companion to a callback, and folds the result into a
// fresh value; TryReconstruct propagates the callback's error; Substitute
// passes a view of pointers into the original's own fields, mutating it in
// place without reallocation:
//
//	book = book.Reconstruct(func(d *DestructBook) {
//		d.Author = "reirokusanami"
//	})
//
//	book.Substitute(func(m BookMut) {
//		*m.Author = "reirokusanami"
//	})
//
// Mutation requires Destructure on the same type: both operations are
// expressed in terms of the companion shape. Requesting it alone is a
// generation-time diagnostic.
//
// Ref emits a read-only pointer view with AsDestruct, for inspecting fields
// without copying them.
//
// A field tagged `destructure:"skip"` stays unexported in the companion and
// is absent from the views, while still being carried through IntoDestruct,
// Freeze, and Reconstruct.
//
// # Diagnostics
//
// Every error is a generation-time diagnostic reported at the annotation
// site: a derive on a non-struct type or on a struct with embedded fields
// (unsupported shape), Mutation or Ref without Destructure, and naming
// collisions such as two fields exporting to the same companion field name.
// A type with any diagnostic produces no artifacts; there is no degraded
// output.
package destructure

import (
	"context"
	"io"
	"os"

	destructureinternal "github.com/HalsekiRaika/destructure/internal/destructure"
)

// Options configures [Generate]. The zero value means: current working
// directory, ambient environment, the naming scheme and output file from
// .destructure.yaml or the defaults.
type Options struct {
	// Dir is the working directory for package loading.
	Dir string

	// Env is the environment for package loading. Nil means os.Environ.
	Env []string

	// Tags are extra build tags for package loading.
	Tags string

	// Tests includes test files.
	Tests bool

	// Output overrides the generated file name.
	Output string

	// Prefix, MutSuffix, and RefSuffix override the derived type naming.
	Prefix    string
	MutSuffix string
	RefSuffix string

	// Debug, when non-nil, receives a dump of every extracted record.
	Debug io.Writer
}

// Generate runs the generator over the packages matched by patterns and
// returns the generated files keyed by path. It writes nothing to disk.
func Generate(ctx context.Context, opts Options, patterns ...string) (map[string][]byte, error) {
	wd := opts.Dir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return nil, err
		}
	}

	env := opts.Env
	if env == nil {
		env = os.Environ()
	}

	cfg, err := destructureinternal.LoadConfig(wd)
	if err != nil {
		return nil, err
	}
	if opts.Tags != "" {
		cfg.Tags = opts.Tags
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.Prefix != "" {
		cfg.Prefix = opts.Prefix
	}
	if opts.MutSuffix != "" {
		cfg.MutSuffix = opts.MutSuffix
	}
	if opts.RefSuffix != "" {
		cfg.RefSuffix = opts.RefSuffix
	}

	return destructureinternal.Main(ctx, wd, env, cfg, opts.Tests, opts.Debug, patterns)
}
