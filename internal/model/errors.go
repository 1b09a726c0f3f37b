package model

import (
	"errors"
	"fmt"
)

// RejectionCode classifies an expected, user-facing translation failure.
type RejectionCode string

const (
	// GenericNotRepresentable rejects parameterized declarations.
	GenericNotRepresentable RejectionCode = "GenericNotRepresentable"
	// NonUnitVariant rejects enums with data-carrying variants.
	NonUnitVariant RejectionCode = "NonUnitVariant"
	// UnrepresentableAggregate rejects structs that are neither field
	// aggregates nor single-field positional aggregates.
	UnrepresentableAggregate RejectionCode = "UnrepresentableAggregate"
	// DivergingAcrossBoundary rejects diverging return types.
	DivergingAcrossBoundary RejectionCode = "DivergingAcrossBoundary"
	// UnsupportedType rejects source shapes with no C equivalent.
	UnsupportedType RejectionCode = "UnsupportedType"
	// UnsupportedModulePath rejects module-qualified names outside the
	// recognized foreign-primitive modules.
	UnsupportedModulePath RejectionCode = "UnsupportedModulePath"
	// UnnamedFunctionPointer rejects function-pointer types with no name
	// context to wrap.
	UnnamedFunctionPointer RejectionCode = "UnnamedFunctionPointer"
	// DependencyCycle rejects a header dependency graph with no linear
	// include order.
	DependencyCycle RejectionCode = "DependencyCycle"
)

// Rejection is an expected translation failure. It aborts the current
// declaration only and is surfaced to the caller immediately.
type Rejection struct {
	Code   RejectionCode
	Pos    Position
	Detail string
}

func (r *Rejection) Error() string {
	if r.Pos.File != "" {
		return fmt.Sprintf("%s: %s: %s", r.Pos, r.Code, r.Detail)
	}

	return fmt.Sprintf("%s: %s", r.Code, r.Detail)
}

// Reject builds a Rejection with a formatted detail message.
func Reject(code RejectionCode, pos Position, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}

// IsRejection reports whether err is a Rejection with the given code.
func IsRejection(err error, code RejectionCode) bool {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Code == code
	}

	return false
}

// InternalError signals an invariant violation: a defect in the front-end
// collaborator or in the generator itself, never a property of user input.
type InternalError struct {
	Pos    Position
	Detail string
}

func (e *InternalError) Error() string {
	if e.Pos.File != "" {
		return fmt.Sprintf("%s: internal: %s", e.Pos, e.Detail)
	}

	return "internal: " + e.Detail
}

// Internal builds an InternalError with a formatted detail message.
func Internal(pos Position, format string, args ...any) *InternalError {
	return &InternalError{Pos: pos, Detail: fmt.Sprintf(format, args...)}
}
