package decl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodnarbalazs/Cs2Ts/errors"
)

const sampleManifest = `
schema_version: "1.2"
declarations:
  - name: Order
    kind: class
    source: Models/Order.cs
    doc: "<summary>An order.</summary>"
    bases: [EntityBase, IAuditable]
    members:
      - name: Id
        type: Guid
      - name: Timeout
        type: TimeSpan?
      - name: Header
        type: object
        attributes: [RenderNodeAttribute]
      - name: Lines
        type:
          kind: generic
          name: List
          args: [OrderLine]
      - name: Kind
        type: OrderKind
        derived: {kind: enum, enum: OrderKind, member: Standard}
  - name: Limits
    kind: constants
    source: Models/Limits.cs
    members:
      - name: MaxLines
        type: int
        storage: const
        init: 50
      - name: Label
        type: string
        storage: const
        init: "orders"
      - name: Defaults
        type: Dictionary<string, int>
        storage: static-readonly
        init:
          kind: object
          props:
            Zeta: 1
            Alpha: {kind: negate, operand: 2}
      - name: Computed
        type: int
        storage: static-readonly
        init: {kind: call, source: "Compute()"}
`

func TestDecodeManifest(t *testing.T) {
	m, err := DecodeManifest(strings.NewReader(sampleManifest))
	require.NoError(t, err)
	require.Len(t, m.Declarations, 2)
	assert.Equal(t, "1.2", m.SchemaVersion)

	order := m.Declarations[0]
	assert.Equal(t, KindStruct, order.Kind)
	assert.Equal(t, "Models/Order.cs", order.SourcePath)
	assert.Equal(t, []TypeRef{Named("EntityBase"), Named("IAuditable")}, order.Bases)
	require.Len(t, order.Members, 5)
	assert.Equal(t, Primitive("Guid"), order.Members[0].Type)
	assert.Equal(t, Nullable(Primitive("TimeSpan")), order.Members[1].Type)
	assert.Equal(t, CapRenderNode, order.Members[2].Capabilities)
	assert.Equal(t, Generic("List", Named("OrderLine")), order.Members[3].Type)
	require.NotNil(t, order.Members[4].Derived)
	assert.Equal(t, EnumRef("OrderKind", "Standard"), *order.Members[4].Derived)

	limits := m.Declarations[1]
	assert.Equal(t, KindConstants, limits.Kind)
	require.Len(t, limits.Members, 4)
	assert.Equal(t, StorageConst, limits.Members[0].Storage)
	assert.Equal(t, NumberLit("50"), *limits.Members[0].Init)
	assert.Equal(t, Lit(LitString, `"orders"`), *limits.Members[1].Init)

	defaults := *limits.Members[2].Init
	assert.Equal(t, StorageStaticReadonly, limits.Members[2].Storage)
	require.Equal(t, ExprObject, defaults.Kind)
	require.Len(t, defaults.Props, 2)
	assert.Equal(t, "Zeta", defaults.Props[0].Name, "property order is preserved")
	assert.Equal(t, Negate(NumberLit("2")), defaults.Props[1].Value)

	assert.Equal(t, ExprUnsupported, limits.Members[3].Init.Kind)
	assert.Equal(t, "Compute()", limits.Members[3].Init.Text)
}

func TestDecodeManifestJSON(t *testing.T) {
	input := `{"declarations": [{"name": "Color", "kind": "enum", "source": "Color.cs", ` +
		`"members": [{"name": "Red"}, {"name": "Blue", "init": {"kind": "negate", "operand": 1}}]}]}`

	m, err := DecodeManifest(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, DefaultSchemaVersion, m.SchemaVersion)
	require.Len(t, m.Declarations, 1)
	assert.Equal(t, KindEnum, m.Declarations[0].Kind)
	assert.Nil(t, m.Declarations[0].Members[0].Init)
	assert.Equal(t, Negate(NumberLit("1")), *m.Declarations[0].Members[1].Init)
}

func TestDecodeManifestEmpty(t *testing.T) {
	m, err := DecodeManifest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, m.Declarations)
}

func TestDecodeManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "unsupported schema major",
			input:   `schema_version: "2.0.0"`,
			wantErr: errors.ErrUnsupportedSchema,
		},
		{
			name:    "garbage schema version",
			input:   `schema_version: "latest"`,
			wantErr: errors.ErrUnsupportedSchema,
		},
		{
			name:  "missing source",
			input: "declarations:\n  - name: A\n    kind: struct\n",
		},
		{
			name:  "bad type shorthand",
			input: "declarations:\n  - name: A\n    source: A.cs\n    members:\n      - name: X\n        type: List<int\n",
		},
		{
			name:  "unknown field",
			input: "declarations:\n  - name: A\n    source: A.cs\n    colour: red\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeManifest(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decls.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Len(t, m.Declarations, 2)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("declarations: [{name: A}]"), 0644))
	_, err = LoadManifest(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidManifest))

	_, err = LoadManifest(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
