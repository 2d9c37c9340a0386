package parse_test

import (
	"go/ast"
	"go/importer"
	goparser "go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/HalsekiRaika/destructure/internal/destructure/parse"
)

// load type-checks a single fixture file into a minimal packages.Package.
func load(t *testing.T, src string) *packages.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, "fixture.go", src, goparser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	tpkg, err := conf.Check("example.com/fixture", fset, []*ast.File{file}, info)
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

func records(t *testing.T, src string) ([]*parse.Record, error) {
	t.Helper()

	p, err := parse.New(load(t, src))
	require.NoError(t, err)
	return p.Records()
}

func TestRecordOrder(t *testing.T) {
	recs, err := records(t, `package fixture

//destructure:derive Destructure
type Book struct {
	id        string
	name      string
	published string
	author    string
}
`)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "Book", rec.Name)
	assert.True(t, rec.Caps.Has(parse.Destructure))
	assert.False(t, rec.Caps.Has(parse.Mutation))

	var names []string
	for i, f := range rec.Fields {
		assert.Equal(t, i, f.Index)
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"id", "name", "published", "author"}, names)
}

func TestExportedNames(t *testing.T) {
	recs, err := records(t, `package fixture

//destructure:derive Destructure
type Account struct {
	id      string
	Balance int
}
`)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "Id", recs[0].Fields[0].Exported)
	assert.Equal(t, "Balance", recs[0].Fields[1].Exported)
}

func TestMultiNameExpansion(t *testing.T) {
	recs, err := records(t, `package fixture

//destructure:derive Destructure
type Pair struct {
	a, b string
}
`)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Len(t, recs[0].Fields, 2)

	assert.Equal(t, "a", recs[0].Fields[0].Name)
	assert.Equal(t, "b", recs[0].Fields[1].Name)
	assert.Equal(t, 0, recs[0].Fields[0].Index)
	assert.Equal(t, 1, recs[0].Fields[1].Index)
}

func TestSkipTag(t *testing.T) {
	recs, err := records(t, `package fixture

//destructure:derive Destructure
type Domain struct {
	a string
	d string `+"`destructure:\"skip\"`"+`
}
`)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	fields := recs[0].Fields
	assert.False(t, fields[0].Skip)
	assert.True(t, fields[1].Skip)
	// Skipped fields keep their unexported name in the companion.
	assert.Equal(t, "d", fields[1].Exported)
}

func TestGenerics(t *testing.T) {
	recs, err := records(t, `package fixture

//destructure:derive Destructure
type Domain[A any, B any] struct {
	a A
	b B
}
`)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].TypeParams)
	assert.Len(t, recs[0].TypeParams.List, 2)
}

func TestUnannotatedTypesIgnored(t *testing.T) {
	recs, err := records(t, `package fixture

type Plain struct {
	id string
}
`)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestUnsupportedShapeNonStruct(t *testing.T) {
	_, err := records(t, `package fixture

//destructure:derive Destructure
type Alias int
`)
	assert.ErrorIs(t, err, parse.ErrUnsupportedShape)
}

func TestUnsupportedShapeEmbedded(t *testing.T) {
	_, err := records(t, `package fixture

//destructure:derive Destructure
type Mixed struct {
	error
	id string
}
`)
	assert.ErrorIs(t, err, parse.ErrUnsupportedShape)
}

func TestUnknownCapability(t *testing.T) {
	_, err := records(t, `package fixture

//destructure:derive Freeze
type Book struct {
	id string
}
`)
	assert.ErrorIs(t, err, parse.ErrUnknownCapability)
}

func TestEmptyCapabilityList(t *testing.T) {
	_, err := records(t, `package fixture

//destructure:derive
type Book struct {
	id string
}
`)
	assert.ErrorIs(t, err, parse.ErrUnknownCapability)
}

func TestUnknownDirective(t *testing.T) {
	_, err := records(t, `package fixture

//destructure:freeze Destructure
type Book struct {
	id string
}
`)
	assert.ErrorIs(t, err, parse.ErrUnknownDirective)
}

func TestCompanionFieldRegistry(t *testing.T) {
	pkg := load(t, `package fixture

//destructure:derive Destructure
type Book struct {
	id     string
	name   string
	author string
	d      string `+"`destructure:\"skip\"`"+`
}
`)

	p, err := parse.New(pkg)
	require.NoError(t, err)

	recs, err := p.Records()
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.False(t, recs[0].Validated())
	require.NoError(t, p.Validate(recs))
	require.True(t, recs[0].Validated())

	// The registry drives emission: companion order is declaration order,
	// skipped fields included under their original name.
	var names []string
	for f := range recs[0].CompanionFields() {
		names = append(names, f.Exported)
	}
	assert.Equal(t, []string{"Id", "Name", "Author", "d"}, names)
}

func TestValidateDuplicateExportedName(t *testing.T) {
	pkg := load(t, `package fixture

//destructure:derive Destructure
type Account struct {
	name string
	Name string
}
`)

	p, err := parse.New(pkg)
	require.NoError(t, err)

	recs, err := p.Records()
	require.NoError(t, err)

	err = p.Validate(recs)
	assert.ErrorIs(t, err, parse.ErrNamingCollision)
	assert.False(t, recs[0].Validated())
}

func TestValidateDistinctNames(t *testing.T) {
	pkg := load(t, `package fixture

//destructure:derive Destructure
type Account struct {
	name    string
	balance int
}
`)

	p, err := parse.New(pkg)
	require.NoError(t, err)

	recs, err := p.Records()
	require.NoError(t, err)
	assert.NoError(t, p.Validate(recs))
}

func TestCapSetString(t *testing.T) {
	var caps parse.CapSet
	caps = caps.Add(parse.Mutation)
	caps = caps.Add(parse.Destructure)
	assert.Equal(t, "Destructure,Mutation", caps.String())
}
