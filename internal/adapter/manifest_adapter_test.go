package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "chisel.dev/pkg/chisel/internal/model"
)

func TestDecodeManifest(t *testing.T) {
	doc := `module: [ffi, geometry]
declarations:
  - kind: alias
    name: Coord
    line: 3
    docs:
      - A grid coordinate.
    type: i32
  - kind: enum
    name: Color
    repr_c: true
    variants:
      - name: Red
      - name: Rgb
        data: true
  - kind: struct
    name: Point
    repr_c: true
    fields:
      - name: x
        docs:
          - Horizontal component.
        type: i32
      - name: y
        type: f64
  - kind: function
    name: point_length
    no_mangle: true
    abi: C
    params:
      - name: p
        type: "*const Point"
    returns: f64
`

	decls, err := NewYAMLManifestAdapter().Decode("geometry.decl.yaml", []byte(doc))
	require.NoError(t, err)
	require.Len(t, decls, 4)

	t.Run("alias", func(t *testing.T) {
		alias := decls[0]
		assert.Equal(t, m.KindAlias, alias.Kind)
		assert.Equal(t, "Coord", alias.Name)
		assert.Equal(t, []string{"ffi", "geometry"}, alias.Module)
		assert.Equal(t, "// A grid coordinate.\n", alias.Docs)
		assert.Equal(t, m.Position{File: "geometry.decl.yaml", Line: 3}, alias.Pos)
		assert.Equal(t, m.NamedRef{Name: "i32"}, alias.Alias)
	})

	t.Run("enum", func(t *testing.T) {
		enum := decls[1]
		assert.Equal(t, m.KindEnum, enum.Kind)
		assert.True(t, enum.Attrs.ReprC)
		require.Len(t, enum.Variants, 2)
		assert.Equal(t, m.Variant{Name: "Red", Unit: true}, enum.Variants[0])
		assert.False(t, enum.Variants[1].Unit)
	})

	t.Run("struct", func(t *testing.T) {
		strct := decls[2]
		assert.Equal(t, m.KindStruct, strct.Kind)
		assert.False(t, strct.Positional)
		require.Len(t, strct.Fields, 2)
		assert.Equal(t, "\t// Horizontal component.\n", strct.Fields[0].Docs)
		assert.Equal(t, m.NamedRef{Name: "f64"}, strct.Fields[1].Type)
	})

	t.Run("function", func(t *testing.T) {
		fn := decls[3]
		assert.Equal(t, m.KindFunction, fn.Kind)
		assert.True(t, fn.Attrs.NoMangle)
		assert.Equal(t, "C", fn.Attrs.ABI)
		require.NotNil(t, fn.Func)
		require.Len(t, fn.Func.Params, 1)
		assert.Equal(t, m.PointerExpr{Elem: m.NamedRef{Name: "Point"}}, fn.Func.Params[0].Type)
		assert.Equal(t, m.NamedRef{Name: "f64"}, fn.Func.Return)
	})
}

func TestDecodeManifestDefaults(t *testing.T) {
	doc := `module: [ffi]
declarations:
  - kind: function
    name: tick
    no_mangle: true
    abi: C
`

	decls, err := NewYAMLManifestAdapter().Decode("api.decl.yaml", []byte(doc))
	require.NoError(t, err)
	require.Len(t, decls, 1)

	fn := decls[0]
	require.NotNil(t, fn.Func)
	assert.Empty(t, fn.Func.Params)
	assert.Nil(t, fn.Func.Return, "missing returns means the default void return")
	assert.Empty(t, fn.Docs)
}

func TestDecodeManifestGenerics(t *testing.T) {
	doc := `module: [ffi]
declarations:
  - kind: struct
    name: Wrapper
    repr_c: true
    generics: [T]
`

	decls, err := NewYAMLManifestAdapter().Decode("api.decl.yaml", []byte(doc))
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.True(t, decls[0].Attrs.Generic)
}

func TestDecodeManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"invalid yaml",
			"module: [ffi\n",
		},
		{
			"missing name",
			"module: [ffi]\ndeclarations:\n  - kind: alias\n    type: i32\n",
		},
		{
			"unknown kind",
			"module: [ffi]\ndeclarations:\n  - kind: union\n    name: U\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLManifestAdapter().Decode("api.decl.yaml", []byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestRenderDocs(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		indent string
		want   string
	}{
		{"empty", nil, "", ""},
		{"single line", []string{"A grid coordinate."}, "", "// A grid coordinate.\n"},
		{
			"multiple lines with indent",
			[]string{"First.", "Second."},
			"\t",
			"\t// First.\n\t// Second.\n",
		},
		{"trailing whitespace trimmed", []string{"Padded.  "}, "", "// Padded.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderDocs(tt.lines, tt.indent))
		})
	}
}
