package model

import "strconv"

// DeclKind identifies the category of a declaration item.
type DeclKind string

const (
	// KindAlias is a type alias declaration.
	KindAlias DeclKind = "alias"
	// KindEnum is an enum declaration.
	KindEnum DeclKind = "enum"
	// KindStruct is a struct declaration.
	KindStruct DeclKind = "struct"
	// KindFunction is an exported function declaration.
	KindFunction DeclKind = "function"
)

// Position is a source location attached to rejections where available.
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	if p.File == "" {
		return ""
	}

	if p.Line <= 0 {
		return p.File
	}

	return p.File + ":" + strconv.Itoa(p.Line)
}

// Attrs carries the exportability markers attached to a declaration by the
// front-end collaborator.
type Attrs struct {
	// ReprC marks a fixed C-compatible representation (enums and structs).
	ReprC bool
	// NoMangle marks a function whose symbol must not be renamed.
	NoMangle bool
	// ABI is the declared calling convention of a function.
	ABI string
	// Generic is set when the declaration has type parameters.
	Generic bool
}

// Variant is one enum variant. Docs is pre-rendered comment text.
type Variant struct {
	Name string
	Docs string
	// Unit is false when the variant carries data, which cannot cross the
	// C boundary.
	Unit bool
}

// Field is one struct field with its mapped-independently type descriptor.
type Field struct {
	Name string
	Docs string
	Type TypeExpr
}

// Param is one function or function-pointer parameter.
type Param struct {
	Name string
	Type TypeExpr
}

// FuncSig is the signature payload of a function declaration or a
// function-pointer type. A nil Return means the default (void) return.
type FuncSig struct {
	Params []Param
	Return TypeExpr
}

// Declaration is one item of the declaration stream produced by the external
// front-end collaborator. Exactly one kind payload is populated.
type Declaration struct {
	Kind   DeclKind
	Name   string
	Module []string
	Docs   string
	Attrs  Attrs
	Pos    Position

	// Alias payload.
	Alias TypeExpr
	// Enum payload.
	Variants []Variant
	// Struct payload. Positional marks an unnamed-field aggregate.
	Fields     []Field
	Positional bool
	// Function payload.
	Func *FuncSig
}
