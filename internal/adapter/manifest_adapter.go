// Package adapter contains the infrastructure collaborators of the chisel
// CLI: manifest decoding, filesystem access and header persistence.
package adapter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	m "chisel.dev/pkg/chisel/internal/model"
)

// ManifestAdapter decodes declaration manifests produced by the front-end
// into the declaration stream the domain layer consumes. It hides the wire
// format so the generation logic can be tested without fixture files.
type ManifestAdapter interface {
	// Decode parses one manifest document. name is used for positions in
	// rejections.
	Decode(name string, data []byte) ([]m.Declaration, error)
}

// YAMLManifestAdapter is the concrete ManifestAdapter backed by yaml.v3.
type YAMLManifestAdapter struct{}

// NewYAMLManifestAdapter constructs a YAMLManifestAdapter.
func NewYAMLManifestAdapter() *YAMLManifestAdapter {
	return &YAMLManifestAdapter{}
}

// manifestDoc is the wire shape of one declaration manifest.
type manifestDoc struct {
	Module       []string      `yaml:"module"`
	Declarations []declaration `yaml:"declarations"`
}

type declaration struct {
	Kind       string    `yaml:"kind"`
	Name       string    `yaml:"name"`
	Line       int       `yaml:"line"`
	Docs       []string  `yaml:"docs"`
	ReprC      bool      `yaml:"repr_c"`
	NoMangle   bool      `yaml:"no_mangle"`
	ABI        string    `yaml:"abi"`
	Generics   []string  `yaml:"generics"`
	Type       string    `yaml:"type"`
	Variants   []variant `yaml:"variants"`
	Positional bool      `yaml:"positional"`
	Fields     []field   `yaml:"fields"`
	Params     []param   `yaml:"params"`
	Returns    string    `yaml:"returns"`
}

type variant struct {
	Name string   `yaml:"name"`
	Docs []string `yaml:"docs"`
	Data bool     `yaml:"data"`
}

type field struct {
	Name string   `yaml:"name"`
	Docs []string `yaml:"docs"`
	Type string   `yaml:"type"`
}

type param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Decode parses a manifest document into declaration items. Structural
// problems (unknown kind, missing name) are decode errors: they signal a
// defective front-end, not an unexportable declaration.
func (a *YAMLManifestAdapter) Decode(name string, data []byte) ([]m.Declaration, error) {
	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", name, err)
	}

	decls := make([]m.Declaration, 0, len(doc.Declarations))

	for i, raw := range doc.Declarations {
		decl, err := buildDeclaration(doc.Module, raw, name)
		if err != nil {
			return nil, fmt.Errorf("manifest %s, declaration %d: %w", name, i, err)
		}

		decls = append(decls, decl)
	}

	return decls, nil
}

func buildDeclaration(module []string, raw declaration, file string) (m.Declaration, error) {
	if raw.Name == "" {
		return m.Declaration{}, fmt.Errorf("missing declaration name")
	}

	decl := m.Declaration{
		Name:   raw.Name,
		Module: module,
		Docs:   RenderDocs(raw.Docs, ""),
		Pos:    m.Position{File: file, Line: raw.Line},
		Attrs: m.Attrs{
			ReprC:    raw.ReprC,
			NoMangle: raw.NoMangle,
			ABI:      raw.ABI,
			Generic:  len(raw.Generics) > 0,
		},
	}

	switch raw.Kind {
	case "alias":
		decl.Kind = m.KindAlias
		decl.Alias = ParseTypeExpr(raw.Type)
	case "enum":
		decl.Kind = m.KindEnum
		for _, v := range raw.Variants {
			decl.Variants = append(decl.Variants, m.Variant{
				Name: v.Name,
				Docs: RenderDocs(v.Docs, "\t"),
				Unit: !v.Data,
			})
		}
	case "struct":
		decl.Kind = m.KindStruct
		decl.Positional = raw.Positional
		for _, f := range raw.Fields {
			decl.Fields = append(decl.Fields, m.Field{
				Name: f.Name,
				Docs: RenderDocs(f.Docs, "\t"),
				Type: ParseTypeExpr(f.Type),
			})
		}
	case "function":
		decl.Kind = m.KindFunction
		sig := &m.FuncSig{}
		for _, p := range raw.Params {
			sig.Params = append(sig.Params, m.Param{Name: p.Name, Type: ParseTypeExpr(p.Type)})
		}

		if raw.Returns != "" {
			sig.Return = ParseTypeExpr(raw.Returns)
		}

		decl.Func = sig
	default:
		return m.Declaration{}, fmt.Errorf("unknown declaration kind %q", raw.Kind)
	}

	return decl, nil
}

// RenderDocs turns documentation lines into C comment text, one `//` line
// per entry, each prefixed with indent. The result is prepended verbatim to
// the declaration it documents.
func RenderDocs(lines []string, indent string) string {
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder

	for _, line := range lines {
		b.WriteString(indent + "// " + strings.TrimRight(line, " \t") + "\n")
	}

	return b.String()
}
