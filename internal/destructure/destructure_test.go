package destructureinternal

import (
	"bytes"
	"go/ast"
	"go/importer"
	goparser "go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/HalsekiRaika/destructure/internal/destructure/parse"
	"github.com/HalsekiRaika/destructure/internal/destructure/synth"
)

// loadSrc type-checks a single fixture source into a minimal
// packages.Package, enough for the generator to run without go/packages.
func loadSrc(t *testing.T, filename, src string) *packages.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, filename, src, goparser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	tpkg, err := conf.Check("example.com/"+file.Name.Name, fset, []*ast.File{file}, info)
	require.NoError(t, err)

	return &packages.Package{
		Name:      tpkg.Name(),
		PkgPath:   tpkg.Path(),
		Fset:      fset,
		Syntax:    []*ast.File{file},
		Types:     tpkg,
		TypesInfo: info,
	}
}

func loadFile(t *testing.T, path string) *packages.Package {
	t.Helper()

	src, err := os.ReadFile(filepath.FromSlash(path))
	require.NoError(t, err)
	return loadSrc(t, filepath.Base(path), string(src))
}

func build(t *testing.T, pkg *packages.Package) *Generator {
	t.Helper()

	g, err := New(pkg, synth.DefaultScheme())
	require.NoError(t, err)
	require.NoError(t, g.Build())
	return g
}

// artifactCode returns the raw emitted artifacts before framing and gofmt,
// which is the part of the output under the synthesizer's control.
func artifactCode(g *Generator) []byte {
	g.writeArtifacts()
	return g.buf.Bytes()
}

func TestGoldenBook(t *testing.T) {
	g := build(t, loadFile(t, "testdata/src/book.go"))

	gold := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	gold.Assert(t, "book", artifactCode(g))
}

func TestGoldenGenerics(t *testing.T) {
	g := build(t, loadFile(t, "testdata/src/generics.go"))

	gold := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	gold.Assert(t, "generics", artifactCode(g))
}

func TestGenerateFramed(t *testing.T) {
	g := build(t, loadFile(t, "testdata/src/imported.go"))

	code := string(g.Generate())
	assert.Contains(t, code, "// Code generated by github.com/HalsekiRaika/destructure. DO NOT EDIT.")
	assert.Contains(t, code, "package imported")
	assert.Contains(t, code, `"time"`)
	assert.Contains(t, code, "type DestructEvent struct")
	assert.Contains(t, code, "func (e Event) IntoDestruct() DestructEvent")
	assert.Contains(t, code, "func (d DestructEvent) Freeze() Event")
}

func TestGenerateNothingAnnotated(t *testing.T) {
	g := build(t, loadSrc(t, "plain.go", `package plain

type Plain struct {
	id string
}
`))
	assert.Nil(t, g.Generate())
}

func TestSourceOrderPreserved(t *testing.T) {
	g := build(t, loadSrc(t, "order.go", `package order

//destructure:derive Destructure
type First struct {
	a string
}

//destructure:derive Destructure
type Second struct {
	b string
}
`))

	code := string(artifactCode(g))
	first := strings.Index(code, "type DestructFirst struct")
	second := strings.Index(code, "type DestructSecond struct")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestBuildMissingDestructure(t *testing.T) {
	pkg := loadSrc(t, "gating.go", `package gating

//destructure:derive Mutation
type Book struct {
	id string
}
`)

	g, err := New(pkg, synth.DefaultScheme())
	require.NoError(t, err)

	err = g.Build()
	assert.ErrorIs(t, err, parse.ErrMissingDestructure)
	assert.Nil(t, g.Generate())
}

func TestBuildScopeCollision(t *testing.T) {
	pkg := loadSrc(t, "collision.go", `package collision

//destructure:derive Destructure
type Book struct {
	id string
}

type DestructBook struct{}
`)

	g, err := New(pkg, synth.DefaultScheme())
	require.NoError(t, err)

	err = g.Build()
	assert.ErrorIs(t, err, parse.ErrNamingCollision)
	assert.Nil(t, g.Generate())
}

func TestBuildKeepsHealthyRecords(t *testing.T) {
	pkg := loadSrc(t, "mixed.go", `package mixed

//destructure:derive Mutation
type Broken struct {
	id string
}

//destructure:derive Destructure
type Fine struct {
	id string
}
`)

	g, err := New(pkg, synth.DefaultScheme())
	require.NoError(t, err)

	err = g.Build()
	assert.ErrorIs(t, err, parse.ErrMissingDestructure)

	// The broken record is dropped entirely; the healthy one still generates.
	code := string(artifactCode(g))
	assert.NotContains(t, code, "Broken")
	assert.Contains(t, code, "type DestructFine struct")
}

func TestCollisionProducesNoArtifacts(t *testing.T) {
	pkg := loadSrc(t, "dupe.go", `package dupe

//destructure:derive Destructure
type Account struct {
	name string
	Name string
}

//destructure:derive Destructure
type Fine struct {
	id string
}
`)

	g, err := New(pkg, synth.DefaultScheme())
	require.NoError(t, err)

	err = g.Build()
	assert.ErrorIs(t, err, parse.ErrNamingCollision)

	// The colliding record is dropped before synthesis; the healthy one
	// still generates.
	code := string(artifactCode(g))
	assert.NotContains(t, code, "DestructAccount")
	assert.Contains(t, code, "type DestructFine struct")
}

func TestCustomScheme(t *testing.T) {
	pkg := loadSrc(t, "scheme.go", `package scheme

//destructure:derive Destructure,Mutation
type Book struct {
	id string
}
`)

	scheme := synth.Scheme{Prefix: "Open", MutSuffix: "Patch", RefSuffix: "View"}
	g, err := New(pkg, scheme)
	require.NoError(t, err)
	require.NoError(t, g.Build())

	code := string(artifactCode(g))
	assert.Contains(t, code, "type OpenBook struct")
	assert.Contains(t, code, "func (b Book) IntoDestruct() OpenBook")
	assert.Contains(t, code, "type BookPatch struct")
	assert.NotContains(t, code, "DestructBook")
}

func TestReceiverAvoidsTypeParam(t *testing.T) {
	g := build(t, loadSrc(t, "tree.go", `package tree

//destructure:derive Destructure
type Tree[t any] struct {
	root t
}
`))

	// The natural receiver name is taken by the type parameter.
	code := string(artifactCode(g))
	assert.Contains(t, code, "func (t2 Tree[t]) IntoDestruct() DestructTree[t]")
	assert.Contains(t, code, "Root: t2.root,")
}

func TestFreezeReceiverAvoidsTypeParam(t *testing.T) {
	g := build(t, loadSrc(t, "list.go", `package list

//destructure:derive Destructure
type List[d any] struct {
	head d
}
`))

	code := string(artifactCode(g))
	assert.Contains(t, code, "func (d2 DestructList[d]) Freeze() List[d]")
	assert.Contains(t, code, "head: d2.Head,")
}

func TestCallbackParamAvoidsTypeParam(t *testing.T) {
	g := build(t, loadSrc(t, "box.go", `package box

//destructure:derive Destructure,Mutation
type Box[fn any] struct {
	value fn
}
`))

	code := string(artifactCode(g))
	assert.Contains(t, code, "func (b Box[fn]) Reconstruct(fn2 func(*DestructBox[fn])) Box[fn]")
	assert.Contains(t, code, "fn2(&dest)")
	assert.Contains(t, code, "func (b *Box[fn]) Substitute(fn2 func(BoxMut[fn]))")
}

func TestLocalAvoidsTypeParam(t *testing.T) {
	g := build(t, loadSrc(t, "queue.go", `package queue

//destructure:derive Destructure,Mutation
type Queue[dest any] struct {
	items []dest
}
`))

	// The companion local would otherwise shadow the type parameter inside
	// "return Queue[dest]{}, err".
	code := string(artifactCode(g))
	assert.Contains(t, code, "dest2 := q.IntoDestruct()")
	assert.Contains(t, code, "return Queue[dest]{}, err")
	assert.Contains(t, code, "return dest2.Freeze(), nil")
}

func TestSetDebug(t *testing.T) {
	pkg := loadSrc(t, "debug.go", `package debug

//destructure:derive Destructure
type Book struct {
	id string
}
`)

	g, err := New(pkg, synth.DefaultScheme())
	require.NoError(t, err)

	var buf bytes.Buffer
	g.SetDebug(&buf)
	require.NoError(t, g.Build())

	assert.Contains(t, buf.String(), "Book")
	assert.Contains(t, buf.String(), "id string")
}
