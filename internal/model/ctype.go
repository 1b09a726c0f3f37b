// Package model defines the data structures for C header generation.
package model

import (
	"fmt"
	"strings"
)

// ConstQualifier governs how one pointer level is rendered.
type ConstQualifier int

const (
	// Mutable renders nothing; the pointee may be written through.
	Mutable ConstQualifier = iota
	// Const renders ` const` on its pointer level.
	Const
)

func (q ConstQualifier) String() string {
	if q == Const {
		return " const"
	}

	return ""
}

// CType is a C type description produced by the type mapper. It is a closed
// set of variants; each compound variant exclusively owns its children.
type CType interface {
	fmt.Stringer

	// appendDeps collects the names of Mapping references reachable from
	// this type, in traversal order.
	appendDeps(dst []string) []string
}

// Void is the C `void` type.
type Void struct{}

func (Void) String() string                   { return "void" }
func (Void) appendDeps(dst []string) []string { return dst }

// Native is a literal C keyword, e.g. `int32_t` or `unsigned long`.
type Native struct {
	Keyword string
}

func (n Native) String() string                 { return n.Keyword }
func (Native) appendDeps(dst []string) []string { return dst }

// Mapping is an opaque passthrough reference to a type assumed to be defined
// elsewhere. It is not known to be valid until the linker resolves it.
type Mapping struct {
	Name string
}

func (m Mapping) String() string { return m.Name }

func (m Mapping) appendDeps(dst []string) []string { return append(dst, m.Name) }

// Pointer is one pointer level around an inner type. Qualifiers compose
// outer-to-inner exactly matching the source nesting order.
type Pointer struct {
	Inner CType
	Qual  ConstQualifier
}

func (p Pointer) String() string { return p.Inner.String() + p.Qual.String() + "*" }

func (p Pointer) appendDeps(dst []string) []string { return p.Inner.appendDeps(dst) }

// FuncPointer is a C function pointer. Inner is either a plain name or the
// rest of a function declaration (`name(args)`), which lets a function whose
// return type is itself a function pointer wrap its own declaration.
type FuncPointer struct {
	Inner  string
	Params []NamedCType
	Return CType
}

func (f FuncPointer) String() string {
	params := "void"
	if len(f.Params) > 0 {
		rendered := make([]string, 0, len(f.Params))
		for _, p := range f.Params {
			rendered = append(rendered, p.String())
		}

		params = strings.Join(rendered, ", ")
	}

	return fmt.Sprintf("%s (*%s)(%s)", f.Return, f.Inner, params)
}

func (f FuncPointer) appendDeps(dst []string) []string {
	dst = f.Return.appendDeps(dst)
	for _, p := range f.Params {
		dst = p.Type.appendDeps(dst)
	}

	return dst
}

// NamedCType pairs a C type with its associated name. The name is empty in
// anonymous contexts, e.g. the pointer-degraded element of an array.
type NamedCType struct {
	Name string
	Type CType
}

// String renders `<type> <name>`. Function pointers carry their name inside
// the type itself and names may be empty, so both render the bare type.
func (n NamedCType) String() string {
	if _, ok := n.Type.(FuncPointer); ok {
		return n.Type.String()
	}

	if n.Name == "" {
		return n.Type.String()
	}

	return n.Type.String() + " " + n.Name
}

// Dependencies returns the names of all Mapping references inside t.
func Dependencies(t CType) []string {
	return t.appendDeps(nil)
}
