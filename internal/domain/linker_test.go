package domain

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "chisel.dev/pkg/chisel/internal/model"
)

func emitAll(t *testing.T, emitter *Emitter, decls ...m.Declaration) {
	t.Helper()

	for _, decl := range decls {
		require.NoError(t, emitter.Emit(decl))
	}
}

func structOf(name string, module []string, fields ...m.Field) m.Declaration {
	return m.Declaration{
		Kind:   m.KindStruct,
		Name:   name,
		Module: module,
		Attrs:  m.Attrs{ReprC: true},
		Fields: fields,
	}
}

func TestFinalizeWrapsEveryHeader(t *testing.T) {
	session := NewSession("shapes")
	emitter := NewEmitter(session)

	emitAll(t, emitter, m.Declaration{
		Kind:   m.KindAlias,
		Name:   "Coord",
		Module: []string{"ffi", "geometry"},
		Alias:  m.NamedRef{Name: "i32"},
	})

	outputs, err := session.Finalize()
	require.NoError(t, err)

	header := m.HeaderID(filepath.Join("shapes", "geometry.h"))
	text := outputs[header]

	assert.True(t, strings.HasPrefix(text, "#ifndef bindgen_shapesgeometryh\n#define bindgen_shapesgeometryh\n"))
	assert.Contains(t, text, "#include <stdint.h>\n#include <stdbool.h>\n")
	assert.Contains(t, text, "#ifdef __cplusplus\nextern \"C\" {\n#endif\n\ntypedef int32_t Coord;\n")
	assert.True(t, strings.HasSuffix(text, "#endif\n"))
}

func TestFinalizeUmbrellaOrdersProducersFirst(t *testing.T) {
	session := NewSession("demo")
	emitter := NewEmitter(session)

	// Vertex lives in demo/mesh.h; demo/draw.h consumes it, so mesh.h must
	// be included first even though draw.h sorts earlier lexically.
	emitAll(t, emitter,
		structOf("Vertex", []string{"ffi", "mesh"},
			m.Field{Name: "x", Type: m.NamedRef{Name: "f32"}},
		),
		structOf("Scene", []string{"ffi", "draw"},
			m.Field{Name: "vertices", Type: m.PointerExpr{Elem: m.NamedRef{Name: "Vertex"}}},
		),
	)

	outputs, err := session.Finalize()
	require.NoError(t, err)

	umbrella := outputs[m.HeaderID("demo.h")]
	meshInclude := strings.Index(umbrella, "#include \""+filepath.Join("demo", "mesh.h")+"\"")
	drawInclude := strings.Index(umbrella, "#include \""+filepath.Join("demo", "draw.h")+"\"")

	require.GreaterOrEqual(t, meshInclude, 0)
	require.GreaterOrEqual(t, drawInclude, 0)
	assert.Less(t, meshInclude, drawInclude)
}

func TestFinalizeUmbrellaBreaksTiesLexically(t *testing.T) {
	session := NewSession("demo")
	emitter := NewEmitter(session)

	emitAll(t, emitter,
		structOf("B", []string{"ffi", "beta"}, m.Field{Name: "n", Type: m.NamedRef{Name: "i32"}}),
		structOf("A", []string{"ffi", "alpha"}, m.Field{Name: "n", Type: m.NamedRef{Name: "i32"}}),
	)

	outputs, err := session.Finalize()
	require.NoError(t, err)

	umbrella := outputs[m.HeaderID("demo.h")]
	want := "#include \"" + filepath.Join("demo", "alpha.h") + "\"\n" +
		"#include \"" + filepath.Join("demo", "beta.h") + "\"\n"

	assert.Equal(t, want, umbrella)
}

func TestFinalizeUnresolvedMappingsAddNoEdges(t *testing.T) {
	session := NewSession("demo")
	emitter := NewEmitter(session)

	// FILE is trusted to be defined outside the generated set.
	emitAll(t, emitter,
		structOf("Logger", []string{"ffi"},
			m.Field{Name: "sink", Type: m.PointerExpr{Elem: m.NamedRef{Module: []string{"libc"}, Name: "FILE"}, Mutable: true}},
		),
	)

	outputs, err := session.Finalize()
	require.NoError(t, err)

	umbrella := outputs[m.HeaderID("demo.h")]
	assert.Equal(t, "#include \""+filepath.Join("demo", "demo.h")+"\"\n", umbrella)
}

func TestFinalizeSelfReferenceIsNotACycle(t *testing.T) {
	session := NewSession("demo")
	emitter := NewEmitter(session)

	emitAll(t, emitter,
		structOf("Node", []string{"ffi", "list"},
			m.Field{Name: "next", Type: m.PointerExpr{Elem: m.NamedRef{Name: "Node"}, Mutable: true}},
		),
	)

	_, err := session.Finalize()

	require.NoError(t, err)
}

func TestFinalizeAfterRejectedDeclaration(t *testing.T) {
	session := NewSession("demo")
	emitter := NewEmitter(session)

	emitAll(t, emitter,
		structOf("Vertex", []string{"ffi", "mesh"},
			m.Field{Name: "x", Type: m.NamedRef{Name: "f32"}},
		),
	)

	// Scene's first field records a Vertex reference before the second
	// field is rejected; the aborted declaration must leave no trace.
	err := emitter.Emit(structOf("Scene", []string{"ffi", "draw"},
		m.Field{Name: "vertex", Type: m.PointerExpr{Elem: m.NamedRef{Name: "Vertex"}}},
		m.Field{Name: "label", Type: m.OpaqueExpr{Raw: "&str"}},
	))
	require.True(t, m.IsRejection(err, m.UnsupportedType), "got %v", err)

	outputs, finalizeErr := session.Finalize()
	require.NoError(t, finalizeErr)

	assert.NotContains(t, outputs, m.HeaderID(filepath.Join("demo", "draw.h")))
	assert.Equal(t,
		"#include \""+filepath.Join("demo", "mesh.h")+"\"\n",
		outputs[m.HeaderID("demo.h")],
	)
}

func TestFinalizeDependencyCycleIsFatal(t *testing.T) {
	session := NewSession("demo")
	emitter := NewEmitter(session)

	emitAll(t, emitter,
		structOf("Front", []string{"ffi", "a"},
			m.Field{Name: "back", Type: m.PointerExpr{Elem: m.NamedRef{Name: "Back"}, Mutable: true}},
		),
		structOf("Back", []string{"ffi", "b"},
			m.Field{Name: "front", Type: m.PointerExpr{Elem: m.NamedRef{Name: "Front"}, Mutable: true}},
		),
	)

	outputs, err := session.Finalize()

	assert.True(t, m.IsRejection(err, m.DependencyCycle), "got %v", err)
	assert.Nil(t, outputs)
}
