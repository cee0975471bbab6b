package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodnarbalazs/Cs2Ts/typegen/decl"
)

func mustParse(t *testing.T, s string) decl.TypeRef {
	t.Helper()
	ref, err := decl.ParseTypeRef(s)
	require.NoError(t, err)
	return ref
}

func TestMapPrimitives(t *testing.T) {
	tests := map[string]string{
		"int":            "number",
		"System.Int64":   "number",
		"double":         "number",
		"decimal":        "number",
		"byte":           "number",
		"bool":           "boolean",
		"Boolean":        "boolean",
		"string":         "string",
		"char":           "string",
		"Guid":           "string",
		"DateTime":       "Date",
		"object":         "unknown",
		"dynamic":        "unknown",
		"TimeSpan":       "number",
		"DateTimeOffset": "string",
	}

	m := TypeMapper{}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			// Mapping a primitive is a pure function of its kind
			for i := 0; i < 2; i++ {
				fc := newTestContext()
				got := m.Map(mustParse(t, input), fc)
				assert.Equal(t, want, got.TS)
				assert.Zero(t, fc.Imports.Len())
			}
		})
	}
}

func TestMapTypes(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		wantImports []string
	}{
		{
			name:        "nullable wraps the outer container",
			input:       "List<Order>?",
			want:        "Order[] | null",
			wantImports: []string{"Order"},
		},
		{
			name:  "array of primitives",
			input: "int[]",
			want:  "number[]",
		},
		{
			name:  "nullable elements are parenthesized",
			input: "List<int?>",
			want:  "(number | null)[]",
		},
		{
			name:  "set-like container",
			input: "HashSet<string>",
			want:  "string[]",
		},
		{
			name:  "qualified container name",
			input: "System.Collections.Generic.IReadOnlyList<Guid>",
			want:  "string[]",
		},
		{
			name:        "dictionary renders partial record",
			input:       "Dictionary<string, Order>",
			want:        "Partial<Record<string, Order>>",
			wantImports: []string{"Order"},
		},
		{
			name:  "nested containers",
			input: "IDictionary<string, List<int>>?",
			want:  "Partial<Record<string, number[]>> | null",
		},
		{
			name:  "action without parameters",
			input: "Action",
			want:  "() => void",
		},
		{
			name:  "generic action with one parameter",
			input: "Action<string>",
			want:  "(arg: string) => void",
		},
		{
			name:  "generic action with two parameters",
			input: "Action<string, int>",
			want:  "(arg1: string, arg2: number) => void",
		},
		{
			name:  "func with return only",
			input: "Func<bool>",
			want:  "() => boolean",
		},
		{
			name:  "func with one parameter",
			input: "Func<int, string>",
			want:  "(arg: number) => string",
		},
		{
			name:        "func with two parameters",
			input:       "Func<Order, int, bool>",
			want:        "(arg1: Order, arg2: number) => boolean",
			wantImports: []string{"Order"},
		},
		{
			name:  "list of functions",
			input: "List<Func<int>>",
			want:  "(() => number)[]",
		},
		{
			name:        "user generic keeps arguments",
			input:       "Page<Order>",
			want:        "Page<Order>",
			wantImports: []string{"Order", "Page"},
		},
		{
			name:  "qualified unknown type",
			input: "Vendor.Money",
			want:  "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := newTestContext()
			got := TypeMapper{}.Map(mustParse(t, tt.input), fc)
			assert.Equal(t, tt.want, got.TS)

			for _, name := range tt.wantImports {
				assert.Equal(t, UsageType, fc.Imports.Usage(name), "import %s", name)
			}
			assert.Equal(t, len(tt.wantImports), fc.Imports.Len())
		})
	}
}

func TestMapZeroArityAction(t *testing.T) {
	fc := newTestContext()
	assert.Equal(t, "() => void", TypeMapper{}.Map(decl.Generic("Action"), fc).TS)
	assert.Equal(t, "(() => void)[]", TypeMapper{}.Map(mustParse(t, "Action[]"), fc).TS)
	assert.Zero(t, fc.Imports.Len())
}

func TestMapUnsupportedArity(t *testing.T) {
	tests := []decl.TypeRef{
		decl.Generic("Action", decl.Primitive("int"), decl.Primitive("int"), decl.Primitive("int")),
		decl.Generic("Func"),
		decl.Generic("Func", decl.Primitive("int"), decl.Primitive("int"), decl.Primitive("int"), decl.Primitive("int")),
	}
	for _, ref := range tests {
		fc := newTestContext()
		got := TypeMapper{}.Map(ref, fc)
		assert.Equal(t, "unknown", got.TS, ref.String())
		assert.Len(t, fc.Diagnostics, 1)
	}
}

func TestMapFunctionVariant(t *testing.T) {
	result := decl.Named("Order")
	fn := decl.Func([]decl.TypeRef{decl.Primitive("int")}, &result)

	fc := newTestContext()
	assert.Equal(t, "(arg: number) => Order", TypeMapper{}.Map(fn, fc).TS)
	assert.Equal(t, UsageType, fc.Imports.Usage("Order"))

	assert.Equal(t, "() => void", TypeMapper{}.Map(decl.Func(nil, nil), newTestContext()).TS)
}

func TestMapPlainRecordStyle(t *testing.T) {
	m := TypeMapper{RecordStyle: RecordPlain}
	got := m.Map(mustParse(t, "Dictionary<string, int>"), newTestContext())
	assert.Equal(t, "Record<string, number>", got.TS)
	assert.Equal(t, RecordPlain, ParseRecordStyle("plain"))
	assert.Equal(t, RecordPartial, ParseRecordStyle("partial"))
	assert.Equal(t, RecordPartial, ParseRecordStyle("bogus"))
}

func TestMapHints(t *testing.T) {
	fc := newTestContext()

	got := TypeMapper{}.Map(mustParse(t, "TimeSpan?"), fc)
	assert.Equal(t, "number | null", got.TS)
	assert.Equal(t, []Hint{HintDuration}, got.Hints)

	got = TypeMapper{}.Map(mustParse(t, "Dictionary<string, DateTimeOffset>"), fc)
	assert.Equal(t, []Hint{HintDateTimeOffset}, got.Hints)

	got = TypeMapper{}.Map(mustParse(t, "Func<TimeSpan, TimeSpan>"), fc)
	assert.Equal(t, []Hint{HintDuration}, got.Hints, "hints are deduplicated")
}

func TestMapMemberCapabilities(t *testing.T) {
	m := TypeMapper{}

	fc := newTestContext()
	node := decl.Member{Name: "Header", Type: mustParse(t, "object?"), Capabilities: decl.CapRenderNode}
	assert.Equal(t, RenderNodeType, m.MapMember(node, fc).TS)
	assert.Equal(t, UsageType, fc.Imports.Usage(RenderNodeType))

	lines := fc.Imports.Finalize(fc, "Models/Test", nil)
	require.Len(t, lines, 1)
	assert.Equal(t, "import type { ReactNode } from 'react';", lines[0].String())

	fc = newTestContext()
	el := decl.Member{Name: "Host", Type: decl.Named("Element"), Capabilities: decl.CapDomElement}
	assert.Equal(t, DomElementType, m.MapMember(el, fc).TS)
	assert.Zero(t, fc.Imports.Len(), "dom element is a global")
}

func TestMapMemberWithoutType(t *testing.T) {
	fc := newTestContext()
	got := TypeMapper{}.MapMember(decl.Member{Name: "Blob"}, fc)
	assert.Equal(t, "unknown", got.TS)
	require.Len(t, fc.Diagnostics, 1)
	assert.Equal(t, "Test", fc.Diagnostics[0].Declaration)
}
