package domain

import (
	m "chisel.dev/pkg/chisel/internal/model"
)

// allowedABIs is the fixed allow-list of C-compatible calling conventions.
// Functions declared with anything else are silently skipped, not errors.
var allowedABIs = map[string]bool{
	"C":        true,
	"cdecl":    true,
	"stdcall":  true,
	"fastcall": true,
	"system":   true,
}

// Exposure gating is modelled as pure predicates over the attribute set so
// the emission code stays free of marker-checking conditionals. A failed
// gate means "not intended for export" and is never an error.

// exportableAlias reports whether a type alias crosses the boundary.
// Generic aliases are skipped silently rather than rejected.
func exportableAlias(attrs m.Attrs) bool {
	return !attrs.Generic
}

// exportableRepr reports whether an enum or struct crosses the boundary:
// it must carry the fixed C-compatible representation marker.
func exportableRepr(attrs m.Attrs) bool {
	return attrs.ReprC
}

// exportableFunction reports whether a function crosses the boundary: it
// must keep its symbol name and use a C-compatible calling convention.
func exportableFunction(attrs m.Attrs) bool {
	return attrs.NoMangle && allowedABIs[attrs.ABI]
}

// Exportable reports whether a declaration passes the exposure gate for
// its kind. Declarations failing the gate are skipped silently, never
// treated as errors.
func Exportable(decl m.Declaration) bool {
	switch decl.Kind {
	case m.KindAlias:
		return exportableAlias(decl.Attrs)
	case m.KindEnum, m.KindStruct:
		return exportableRepr(decl.Attrs)
	case m.KindFunction:
		return exportableFunction(decl.Attrs)
	default:
		return false
	}
}
