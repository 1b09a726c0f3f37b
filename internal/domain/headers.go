package domain

import (
	"os"
	"strings"

	m "chisel.dev/pkg/chisel/internal/model"
)

// boundaryModule is the reserved first module-path segment marking the ABI
// boundary tree of the source library.
const boundaryModule = "ffi"

// headerSuffix is appended to every generated header identifier.
const headerSuffix = ".h"

// headerOf transforms a declaration's module path into a header identifier.
// It is a pure function of (module, libName): identical inputs always yield
// the identical HeaderID, whatever the emission order.
//
// The boundary sentinel is replaced by the library name, and the library's
// own top-level module gets a nested header (e.g. shapes/shapes.h) so it
// stays distinct from the umbrella file.
func headerOf(module []string, libName string) (m.HeaderID, error) {
	if len(module) == 0 {
		return "", m.Internal(m.Position{}, "empty module path")
	}

	segments := make([]string, len(module))
	copy(segments, module)

	if segments[0] == boundaryModule {
		segments[0] = libName

		if len(segments) == 1 {
			segments = append(segments, libName)
		}
	}

	return m.HeaderID(strings.Join(segments, string(os.PathSeparator)) + headerSuffix), nil
}

// SanitizeID strips every character that is not alphanumeric or an
// underscore, leaving a valid C macro identifier. The result is always
// concatenated onto a `bindgen_` prefix so it may start with a digit.
func SanitizeID(id string) string {
	var b strings.Builder

	for _, ch := range id {
		if ch == '_' ||
			(ch >= '0' && ch <= '9') ||
			(ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') {
			b.WriteRune(ch)
		}
	}

	return b.String()
}

// wrapHeader wraps accumulated header text with the fixed primitive
// includes, an idempotent include guard and a conditional extern "C"
// linkage block. The output format is part of the tool's contract.
func wrapHeader(id m.HeaderID, body string) string {
	guard := "bindgen_" + SanitizeID(string(id))

	var b strings.Builder
	b.WriteString("#ifndef " + guard + "\n")
	b.WriteString("#define " + guard + "\n")
	b.WriteString("#include <stdint.h>\n")
	b.WriteString("#include <stdbool.h>\n\n")
	b.WriteString("#ifdef __cplusplus\nextern \"C\" {\n#endif\n\n")
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n\n#ifdef __cplusplus\n}\n#endif\n\n")
	b.WriteString("#endif\n")

	return b.String()
}
