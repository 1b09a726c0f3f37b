// Package domain contains the core header generation logic: the type
// mapper, the per-declaration emitter and the dependency-aware linker.
package domain

import (
	"strings"

	m "chisel.dev/pkg/chisel/internal/model"
)

// primitiveTable maps unqualified primitive names to C keywords. Both the
// terse and the long spellings are accepted; unknown unqualified names pass
// through as Mapping references, trusted to be defined elsewhere.
var primitiveTable = map[string]string{
	"f32": "float", "float32": "float",
	"f64": "double", "float64": "double",
	"i8": "int8_t", "int8": "int8_t",
	"i16": "int16_t", "int16": "int16_t",
	"i32": "int32_t", "int32": "int32_t",
	"i64": "int64_t", "int64": "int64_t",
	"isize": "intptr_t", "intptr": "intptr_t",
	"u8": "uint8_t", "uint8": "uint8_t",
	"u16": "uint16_t", "uint16": "uint16_t",
	"u32": "uint32_t", "uint32": "uint32_t",
	"u64": "uint64_t", "uint64": "uint64_t",
	"usize": "uintptr_t", "uintptr": "uintptr_t",
	"bool": "bool",
}

// ffiEquivalents maps names from the two recognized foreign-primitive
// modules to their C equivalents. Both modules share the same table; names
// missing from it (size_t, FILE, ...) map straight over to C.
var ffiEquivalents = map[string]string{
	"c_float":     "float",
	"c_double":    "double",
	"c_char":      "char",
	"c_schar":     "signed char",
	"c_uchar":     "unsigned char",
	"c_short":     "short",
	"c_ushort":    "unsigned short",
	"c_int":       "int",
	"c_uint":      "unsigned int",
	"c_long":      "long",
	"c_ulong":     "unsigned long",
	"c_longlong":  "long long",
	"c_ulonglong": "unsigned long long",
}

// foreignModules is the fixed allow-list of module paths whose primitive
// names are recognized. Anything else is rejected rather than guessed.
var foreignModules = map[string]bool{
	"libc":         true,
	"std::os::raw": true,
}

// MapNamed turns a source type descriptor with an associated name into a C
// type description. Function-pointer types consume the name as their inner
// declaration; every other shape simply carries the name alongside.
func MapNamed(expr m.TypeExpr, name string, pos m.Position) (m.NamedCType, error) {
	if fn, ok := expr.(m.FuncExpr); ok {
		cty, err := funcPointerToC(fn, name, pos)
		if err != nil {
			return m.NamedCType{}, err
		}

		return m.NamedCType{Type: cty}, nil
	}

	cty, err := mapAnon(expr, pos)
	if err != nil {
		return m.NamedCType{}, err
	}

	return m.NamedCType{Name: name, Type: cty}, nil
}

// mapAnon turns a source type descriptor without any name context into a C
// type description.
func mapAnon(expr m.TypeExpr, pos m.Position) (m.CType, error) {
	switch t := expr.(type) {
	case m.FuncExpr:
		return nil, m.Reject(m.UnnamedFunctionPointer, pos,
			"a C function pointer must have a name or function declaration associated with it")
	case m.ArrayExpr:
		// Fixed-length arrays degrade to const pointers; the length is
		// intentionally discarded.
		elem, err := mapAnon(t.Elem, pos)
		if err != nil {
			return nil, err
		}

		return m.Pointer{Inner: elem, Qual: m.Const}, nil
	case m.PointerExpr:
		return pointerToC(t, pos)
	case m.NamedRef:
		return namedRefToC(t, pos)
	case m.UnitExpr:
		return m.Void{}, nil
	case m.NeverExpr:
		return nil, m.Reject(m.DivergingAcrossBoundary, pos,
			"a diverging type can not cross the C boundary")
	default:
		return nil, m.Reject(m.UnsupportedType, pos,
			"no C equivalent for the type `%s`", expr)
	}
}

// pointerToC maps one raw pointer level. The constness of the level derives
// from the declared mutability of the pointee binding.
func pointerToC(ptr m.PointerExpr, pos m.Position) (m.CType, error) {
	inner, err := mapAnon(ptr.Elem, pos)
	if err != nil {
		return nil, err
	}

	qual := m.Const
	if ptr.Mutable {
		qual = m.Mutable
	}

	return m.Pointer{Inner: inner, Qual: qual}, nil
}

// namedRefToC resolves a plain or module-qualified type name. Primitive
// lookup always takes precedence over opaque passthrough.
func namedRefToC(ref m.NamedRef, pos m.Position) (m.CType, error) {
	if len(ref.Module) == 0 {
		if kw, ok := primitiveTable[ref.Name]; ok {
			return m.Native{Keyword: kw}, nil
		}

		return m.Mapping{Name: ref.Name}, nil
	}

	module := strings.Join(ref.Module, "::")
	if !foreignModules[module] {
		return nil, m.Reject(m.UnsupportedModulePath, pos,
			"can not handle types in the module `%s` (only `libc` and `std::os::raw`)", module)
	}

	if ref.Name == "c_void" {
		return m.Void{}, nil
	}

	if kw, ok := ffiEquivalents[ref.Name]; ok {
		return m.Native{Keyword: kw}, nil
	}

	// All other names in these modules map straight over to C.
	return m.Mapping{Name: ref.Name}, nil
}

// funcPointerToC maps a function-pointer type. inner is the name, or the
// rest of a function declaration, that the pointer wraps.
func funcPointerToC(fn m.FuncExpr, inner string, pos m.Position) (m.CType, error) {
	if inner == "" {
		return nil, m.Reject(m.UnnamedFunctionPointer, pos,
			"a C function pointer must have a name or function declaration associated with it")
	}

	params := make([]m.NamedCType, 0, len(fn.Sig.Params))
	for _, p := range fn.Sig.Params {
		mapped, err := MapNamed(p.Type, p.Name, pos)
		if err != nil {
			return nil, err
		}

		params = append(params, mapped)
	}

	ret, err := returnTypeToC(fn.Sig.Return, pos)
	if err != nil {
		return nil, err
	}

	return m.FuncPointer{Inner: inner, Params: params, Return: ret}, nil
}

// returnTypeToC maps a function return type. A nil descriptor is the
// default (void) return; a diverging return is rejected outright.
func returnTypeToC(ret m.TypeExpr, pos m.Position) (m.CType, error) {
	switch ret.(type) {
	case nil:
		return m.Void{}, nil
	case m.NeverExpr:
		return nil, m.Reject(m.DivergingAcrossBoundary, pos,
			"a diverging return type can not cross the C boundary")
	default:
		return mapAnon(ret, pos)
	}
}
