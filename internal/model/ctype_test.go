package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCTypeString(t *testing.T) {
	tests := []struct {
		name string
		cty  CType
		want string
	}{
		{"void", Void{}, "void"},
		{"native keyword", Native{Keyword: "int32_t"}, "int32_t"},
		{"mapping passthrough", Mapping{Name: "Widget"}, "Widget"},
		{
			"const pointer",
			Pointer{Inner: Native{Keyword: "float"}, Qual: Const},
			"float const*",
		},
		{
			"mutable pointer",
			Pointer{Inner: Native{Keyword: "float"}, Qual: Mutable},
			"float*",
		},
		{
			"double pointer const of const",
			Pointer{Inner: Pointer{Inner: Native{Keyword: "int8_t"}, Qual: Const}, Qual: Const},
			"int8_t const* const*",
		},
		{
			"double pointer mixed mutability keeps nesting order",
			Pointer{Inner: Pointer{Inner: Native{Keyword: "int8_t"}, Qual: Mutable}, Qual: Const},
			"int8_t* const*",
		},
		{
			"function pointer without parameters",
			FuncPointer{Inner: "cb", Return: Void{}},
			"void (*cb)(void)",
		},
		{
			"function pointer with parameters",
			FuncPointer{
				Inner: "cb",
				Params: []NamedCType{
					{Name: "a", Type: Native{Keyword: "int32_t"}},
					{Type: Native{Keyword: "double"}},
				},
				Return: Native{Keyword: "int32_t"},
			},
			"int32_t (*cb)(int32_t a, double)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cty.String())
		})
	}
}

func TestNamedCTypeString(t *testing.T) {
	tests := []struct {
		name  string
		named NamedCType
		want  string
	}{
		{
			"type with name",
			NamedCType{Name: "x", Type: Native{Keyword: "int32_t"}},
			"int32_t x",
		},
		{
			"anonymous type renders bare",
			NamedCType{Type: Native{Keyword: "double"}},
			"double",
		},
		{
			"function pointer carries its own name",
			NamedCType{Type: FuncPointer{Inner: "handler", Return: Void{}}},
			"void (*handler)(void)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.named.String())
		})
	}
}

func TestDependencies(t *testing.T) {
	tests := []struct {
		name string
		cty  CType
		want []string
	}{
		{"native has none", Native{Keyword: "int32_t"}, nil},
		{"mapping is its own dependency", Mapping{Name: "Widget"}, []string{"Widget"}},
		{
			"pointer looks through to the pointee",
			Pointer{Inner: Mapping{Name: "Widget"}, Qual: Const},
			[]string{"Widget"},
		},
		{
			"function pointer collects return and parameters",
			FuncPointer{
				Inner: "cb",
				Params: []NamedCType{
					{Name: "w", Type: Mapping{Name: "Widget"}},
					{Name: "n", Type: Native{Keyword: "int32_t"}},
				},
				Return: Mapping{Name: "Gadget"},
			},
			[]string{"Gadget", "Widget"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dependencies(tt.cty))
		})
	}
}
