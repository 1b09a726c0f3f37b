package domain

import (
	"strings"

	m "chisel.dev/pkg/chisel/internal/model"
)

// Emitter translates one declaration at a time into C header text. It keeps
// no cross-declaration state beyond the session registries.
type Emitter struct {
	session *Session
}

// NewEmitter creates an Emitter writing into the given session.
func NewEmitter(session *Session) *Emitter {
	return &Emitter{session: session}
}

// Emit routes a declaration to its kind-specific visitor. Declarations that
// fail the exposure gate are skipped silently; declarations that pass the
// gate but can not be represented abort with a Rejection. A failed
// declaration never corrupts text already appended for other headers.
func (e *Emitter) Emit(decl m.Declaration) error {
	switch decl.Kind {
	case m.KindAlias:
		return e.emitAlias(decl)
	case m.KindEnum:
		return e.emitEnum(decl)
	case m.KindStruct:
		return e.emitStruct(decl)
	case m.KindFunction:
		return e.emitFunction(decl)
	default:
		return m.Internal(decl.Pos, "unknown declaration kind %q", decl.Kind)
	}
}

// emitAlias converts `type A = B` into `typedef B A;`. Generic aliases are
// skipped silently.
func (e *Emitter) emitAlias(decl m.Declaration) error {
	if decl.Alias == nil {
		return m.Internal(decl.Pos, "alias visitor called on a declaration without an alias payload")
	}

	if !exportableAlias(decl.Attrs) {
		return nil
	}

	mapped, err := MapNamed(decl.Alias, decl.Name, decl.Pos)
	if err != nil {
		return err
	}

	header, err := e.session.headerFor(decl.Module)
	if err != nil {
		return err
	}

	var buf strings.Builder
	buf.WriteString(decl.Docs)
	buf.WriteString("typedef " + mapped.String() + ";\n\n")

	e.session.addDependencies(header, mapped.Type)
	e.session.appendOutput(header, buf.String())
	e.session.registerType(decl.Name, header)

	return nil
}

// emitEnum converts a fixed-representation enum into a C enum typedef.
// Enumerator identifiers are prefixed with the enum name since C puts all
// enumerators in one flat namespace.
func (e *Emitter) emitEnum(decl m.Declaration) error {
	if !exportableRepr(decl.Attrs) {
		return nil
	}

	if decl.Attrs.Generic {
		return m.Reject(m.GenericNotRepresentable, decl.Pos,
			"can not represent the parameterized enum `%s` in C", decl.Name)
	}

	var buf strings.Builder
	buf.WriteString(decl.Docs)
	buf.WriteString("typedef enum " + decl.Name + " {\n")

	for _, variant := range decl.Variants {
		if !variant.Unit {
			return m.Reject(m.NonUnitVariant, decl.Pos,
				"enum `%s` has the non-unit variant `%s`", decl.Name, variant.Name)
		}

		buf.WriteString(variant.Docs)
		buf.WriteString("\t" + decl.Name + "_" + variant.Name + ",\n")
	}

	buf.WriteString("} " + decl.Name + ";\n\n")

	header, err := e.session.headerFor(decl.Module)
	if err != nil {
		return err
	}

	e.session.appendOutput(header, buf.String())

	return nil
}

// emitStruct converts a fixed-representation struct into a C struct
// typedef. A single-field positional aggregate becomes an opaque forward
// declaration: the field's type is deliberately not exposed.
func (e *Emitter) emitStruct(decl m.Declaration) error {
	if !exportableRepr(decl.Attrs) {
		return nil
	}

	if decl.Attrs.Generic {
		return m.Reject(m.GenericNotRepresentable, decl.Pos,
			"can not represent the parameterized struct `%s` in C", decl.Name)
	}

	header, err := e.session.headerFor(decl.Module)
	if err != nil {
		return err
	}

	var buf strings.Builder
	buf.WriteString(decl.Docs)
	buf.WriteString("typedef struct " + decl.Name)

	// Dependency facts are staged locally and committed only once the whole
	// declaration has rendered, so a rejection mid-struct leaves no trace.
	var deps []m.CType

	switch {
	case !decl.Positional:
		buf.WriteString(" {\n")

		for _, field := range decl.Fields {
			mapped, err := MapNamed(field.Type, field.Name, decl.Pos)
			if err != nil {
				return err
			}

			deps = append(deps, mapped.Type)

			buf.WriteString(field.Docs)
			buf.WriteString("\t" + mapped.String() + ";\n")
		}

		buf.WriteString("}")
	case len(decl.Fields) == 1:
		// Opaque handle: `typedef struct Name Name;` with no field text.
	default:
		return m.Reject(m.UnrepresentableAggregate, decl.Pos,
			"can not represent the positional aggregate `%s` with %d fields in C",
			decl.Name, len(decl.Fields))
	}

	buf.WriteString(" " + decl.Name + ";\n\n")

	for _, dep := range deps {
		e.session.addDependencies(header, dep)
	}

	e.session.appendOutput(header, buf.String())
	e.session.registerType(decl.Name, header)

	return nil
}

// emitFunction converts an exported function into a C function declaration.
//
// The name and parenthesized parameter list are built first and handed to
// the type mapper as the return type's associated name: a function-pointer
// return type must wrap the whole of `name(params)` inside its own
// parentheses.
func (e *Emitter) emitFunction(decl m.Declaration) error {
	if decl.Func == nil {
		return m.Internal(decl.Pos, "function visitor called on a declaration without a signature")
	}

	if !exportableFunction(decl.Attrs) {
		return nil
	}

	if decl.Attrs.Generic {
		return m.Reject(m.GenericNotRepresentable, decl.Pos,
			"can not represent the parameterized function `%s` in C", decl.Name)
	}

	header, err := e.session.headerFor(decl.Module)
	if err != nil {
		return err
	}

	params := make([]string, 0, len(decl.Func.Params))

	// Staged like struct fields: a rejected return type must not leave the
	// parameter dependencies behind.
	var deps []m.CType

	for _, p := range decl.Func.Params {
		mapped, err := MapNamed(p.Type, p.Name, decl.Pos)
		if err != nil {
			return err
		}

		deps = append(deps, mapped.Type)
		params = append(params, mapped.String())
	}

	paramList := "void"
	if len(params) > 0 {
		paramList = strings.Join(params, ", ")
	}

	nameAndParams := decl.Name + "(" + paramList + ")"

	var full string

	switch decl.Func.Return.(type) {
	case nil:
		full = "void " + nameAndParams
	case m.NeverExpr:
		return m.Reject(m.DivergingAcrossBoundary, decl.Pos,
			"the diverging return type of `%s` can not cross the C boundary", decl.Name)
	default:
		mapped, err := MapNamed(decl.Func.Return, nameAndParams, decl.Pos)
		if err != nil {
			return err
		}

		deps = append(deps, mapped.Type)
		full = mapped.String()
	}

	for _, dep := range deps {
		e.session.addDependencies(header, dep)
	}

	var buf strings.Builder
	buf.WriteString(decl.Docs)
	buf.WriteString(full + ";\n\n")

	e.session.appendOutput(header, buf.String())

	return nil
}
