package model

import (
	"fmt"
	"strings"
)

// TypeExpr is a source type descriptor as delivered by the front-end
// collaborator. It is a closed set of variants mirroring the source shapes
// the mapper understands, plus OpaqueExpr for everything it does not.
type TypeExpr interface {
	fmt.Stringer

	isTypeExpr()
}

// NamedRef is a (possibly module-qualified) reference to a type by name.
// Module is empty for unqualified names.
type NamedRef struct {
	Module []string
	Name   string
}

func (NamedRef) isTypeExpr() {}

func (r NamedRef) String() string {
	if len(r.Module) == 0 {
		return r.Name
	}

	return strings.Join(r.Module, "::") + "::" + r.Name
}

// PointerExpr is a raw pointer level. Mutable reflects the declared
// mutability of the pointee binding.
type PointerExpr struct {
	Elem    TypeExpr
	Mutable bool
}

func (PointerExpr) isTypeExpr() {}

func (p PointerExpr) String() string {
	if p.Mutable {
		return "*mut " + p.Elem.String()
	}

	return "*const " + p.Elem.String()
}

// ArrayExpr is a fixed-size array. The length is intentionally dropped
// during mapping; it is carried only for display.
type ArrayExpr struct {
	Elem TypeExpr
	Len  int
}

func (ArrayExpr) isTypeExpr() {}

func (a ArrayExpr) String() string { return fmt.Sprintf("[%s; %d]", a.Elem, a.Len) }

// FuncExpr is a function-pointer type.
type FuncExpr struct {
	Sig FuncSig
}

func (FuncExpr) isTypeExpr() {}

func (f FuncExpr) String() string {
	params := make([]string, 0, len(f.Sig.Params))
	for _, p := range f.Sig.Params {
		if p.Name == "" {
			params = append(params, p.Type.String())
			continue
		}

		params = append(params, p.Name+": "+p.Type.String())
	}

	out := "fn(" + strings.Join(params, ", ") + ")"
	if f.Sig.Return != nil {
		out += " -> " + f.Sig.Return.String()
	}

	return out
}

// UnitExpr is the unit type, mapped to C void.
type UnitExpr struct{}

func (UnitExpr) isTypeExpr()    {}
func (UnitExpr) String() string { return "()" }

// NeverExpr is a diverging type. It can never cross the C boundary.
type NeverExpr struct{}

func (NeverExpr) isTypeExpr()    {}
func (NeverExpr) String() string { return "!" }

// OpaqueExpr is any source shape the mapper has no rule for (slices,
// references, generics, tuples, ...). Raw preserves the rendered form for
// error reporting.
type OpaqueExpr struct {
	Raw string
}

func (OpaqueExpr) isTypeExpr()      {}
func (o OpaqueExpr) String() string { return o.Raw }
