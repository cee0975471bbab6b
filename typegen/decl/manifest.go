package decl

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/bodnarbalazs/Cs2Ts/errors"
)

// SupportedSchema is the manifest schema range this build understands
const SupportedSchema = "^1.0"

// DefaultSchemaVersion is assumed when a manifest omits schema_version
const DefaultSchemaVersion = "1.0.0"

// Manifest is the parser's output: every convertible declaration of a project.
type Manifest struct {
	SchemaVersion string
	Declarations  []Declaration
}

type manifestFile struct {
	SchemaVersion string            `yaml:"schema_version"`
	Declarations  []declarationNode `yaml:"declarations"`
}

type declarationNode struct {
	Name    string       `yaml:"name"`
	Kind    string       `yaml:"kind"`
	Source  string       `yaml:"source"`
	Doc     string       `yaml:"doc"`
	Bases   []yaml.Node  `yaml:"bases"`
	Members []memberNode `yaml:"members"`
}

type memberNode struct {
	Name       string     `yaml:"name"`
	Type       yaml.Node  `yaml:"type"`
	Attributes []string   `yaml:"attributes"`
	Storage    string     `yaml:"storage"`
	Init       *yaml.Node `yaml:"init"`
	Derived    *yaml.Node `yaml:"derived"`
	Doc        string     `yaml:"doc"`
}

// LoadManifest reads and decodes a manifest file (.yaml, .yml or .json)
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}
	m, err := DecodeManifest(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, errors.ErrUnsupportedSchema) {
			return nil, errors.Wrapf(err, "manifest %s", path)
		}
		return nil, errors.WrapInvalidManifest(err, path)
	}
	return m, nil
}

// DecodeManifest decodes a manifest. JSON input is accepted as YAML.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var file manifestFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return &Manifest{SchemaVersion: DefaultSchemaVersion}, nil
		}
		return nil, err
	}

	version := file.SchemaVersion
	if version == "" {
		version = DefaultSchemaVersion
	}
	if err := checkSchemaVersion(version); err != nil {
		return nil, err
	}

	m := &Manifest{SchemaVersion: version}
	for i, dn := range file.Declarations {
		d, err := dn.build()
		if err != nil {
			return nil, errors.Wrapf(err, "declaration #%d (%s)", i, dn.Name)
		}
		m.Declarations = append(m.Declarations, d)
	}
	return m, nil
}

func checkSchemaVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(errors.ErrUnsupportedSchema, "schema_version %q is not a version", version)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrUnsupportedSchema, "schema_version %s", v),
			"this build reads manifests matching %s", SupportedSchema)
	}
	return nil
}

func (dn declarationNode) build() (Declaration, error) {
	if dn.Name == "" {
		return Declaration{}, errors.New("missing name")
	}
	if dn.Source == "" {
		return Declaration{}, errors.New("missing source path")
	}

	d := Declaration{
		Name:       dn.Name,
		Kind:       ParseKind(dn.Kind),
		Doc:        dn.Doc,
		SourcePath: strings.ReplaceAll(dn.Source, "\\", "/"),
	}
	for i := range dn.Bases {
		base, err := decodeTypeNode(&dn.Bases[i])
		if err != nil {
			return Declaration{}, errors.Wrap(err, "base type")
		}
		d.Bases = append(d.Bases, base)
	}
	for _, mn := range dn.Members {
		m, err := mn.build()
		if err != nil {
			return Declaration{}, errors.Wrapf(err, "member %s", mn.Name)
		}
		d.Members = append(d.Members, m)
	}
	return d, nil
}

func (mn memberNode) build() (Member, error) {
	if mn.Name == "" {
		return Member{}, errors.New("missing member name")
	}
	m := Member{
		Name:         mn.Name,
		Capabilities: CapabilitiesFromAttributes(mn.Attributes),
		Storage:      ParseStorage(mn.Storage),
		Doc:          mn.Doc,
	}
	if mn.Type.Kind != 0 {
		t, err := decodeTypeNode(&mn.Type)
		if err != nil {
			return Member{}, err
		}
		m.Type = t
	}
	if mn.Init != nil {
		e, err := decodeExprNode(mn.Init)
		if err != nil {
			return Member{}, errors.Wrap(err, "init")
		}
		m.Init = &e
	}
	if mn.Derived != nil {
		e, err := decodeExprNode(mn.Derived)
		if err != nil {
			return Member{}, errors.Wrap(err, "derived")
		}
		m.Derived = &e
	}
	return m, nil
}

// typeNode is the structured (mapping) form of a type reference
type typeNode struct {
	Kind   string      `yaml:"kind"`
	Name   string      `yaml:"name"`
	Of     *yaml.Node  `yaml:"of"`
	Args   []yaml.Node `yaml:"args"`
	Params []yaml.Node `yaml:"params"`
	Result *yaml.Node  `yaml:"result"`
}

func decodeTypeNode(n *yaml.Node) (TypeRef, error) {
	if n.Kind == yaml.ScalarNode {
		return ParseTypeRef(n.Value)
	}

	var tn typeNode
	if err := n.Decode(&tn); err != nil {
		return TypeRef{}, err
	}

	switch strings.ToLower(tn.Kind) {
	case "primitive":
		return Primitive(tn.Name), nil
	case "named":
		return Named(tn.Name), nil
	case "nullable", "array":
		if tn.Of == nil {
			return TypeRef{}, errors.Newf("%s type at line %d needs 'of'", tn.Kind, n.Line)
		}
		inner, err := decodeTypeNode(tn.Of)
		if err != nil {
			return TypeRef{}, err
		}
		if strings.EqualFold(tn.Kind, "array") {
			return ArrayOf(inner), nil
		}
		return Nullable(inner), nil
	case "generic":
		args, err := decodeTypeList(tn.Args)
		if err != nil {
			return TypeRef{}, err
		}
		return Generic(tn.Name, args...), nil
	case "function":
		params, err := decodeTypeList(tn.Params)
		if err != nil {
			return TypeRef{}, err
		}
		var result *TypeRef
		if tn.Result != nil {
			r, err := decodeTypeNode(tn.Result)
			if err != nil {
				return TypeRef{}, err
			}
			result = &r
		}
		return Func(params, result), nil
	default:
		return TypeRef{}, errors.Newf("unknown type kind %q at line %d", tn.Kind, n.Line)
	}
}

func decodeTypeList(nodes []yaml.Node) ([]TypeRef, error) {
	refs := make([]TypeRef, 0, len(nodes))
	for i := range nodes {
		r, err := decodeTypeNode(&nodes[i])
		if err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, nil
}

// exprNode is the structured (mapping) form of a constant expression
type exprNode struct {
	Kind     string      `yaml:"kind"`
	Value    string      `yaml:"value"`
	Type     string      `yaml:"type"`
	Enum     string      `yaml:"enum"`
	Member   string      `yaml:"member"`
	Name     string      `yaml:"name"`
	Items    []yaml.Node `yaml:"items"`
	Props    yaml.Node   `yaml:"props"`
	Operand  *yaml.Node  `yaml:"operand"`
	Resolved *yaml.Node  `yaml:"resolved"`
	Source   string      `yaml:"source"`
}

// decodeExprNode decodes a constant expression. A scalar is a literal whose
// kind follows its YAML tag: strings are quoted, numbers, booleans and null
// are kept as written.
func decodeExprNode(n *yaml.Node) (ConstExpr, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarLiteral(n), nil
	case yaml.SequenceNode:
		elems, err := decodeExprList(n.Content)
		if err != nil {
			return ConstExpr{}, err
		}
		return Array(elems...), nil
	case yaml.MappingNode:
	default:
		return ConstExpr{}, errors.Newf("unsupported expression node at line %d", n.Line)
	}

	var en exprNode
	if err := n.Decode(&en); err != nil {
		return ConstExpr{}, err
	}

	switch strings.ToLower(en.Kind) {
	case "literal":
		return Lit(parseLiteralKind(en.Type, en.Value), en.Value), nil
	case "enum", "enum-member":
		return EnumRef(en.Enum, en.Member), nil
	case "array", "collection":
		items := make([]*yaml.Node, len(en.Items))
		for i := range en.Items {
			items[i] = &en.Items[i]
		}
		elems, err := decodeExprList(items)
		if err != nil {
			return ConstExpr{}, err
		}
		if strings.EqualFold(en.Kind, "collection") {
			return Collection(elems...), nil
		}
		return Array(elems...), nil
	case "object":
		return decodeObject(&en.Props)
	case "spread", "negate", "paren":
		if en.Operand == nil {
			return ConstExpr{}, errors.Newf("%s expression at line %d needs 'operand'", en.Kind, n.Line)
		}
		operand, err := decodeExprNode(en.Operand)
		if err != nil {
			return ConstExpr{}, err
		}
		switch strings.ToLower(en.Kind) {
		case "spread":
			return Spread(operand), nil
		case "negate":
			return Negate(operand), nil
		default:
			return Paren(operand), nil
		}
	case "identifier":
		var resolved *ConstExpr
		if en.Resolved != nil {
			r, err := decodeExprNode(en.Resolved)
			if err != nil {
				return ConstExpr{}, err
			}
			resolved = &r
		}
		return Ident(en.Name, resolved), nil
	case "unsupported", "call", "binary", "conditional":
		return Unsupported(en.Source), nil
	default:
		return ConstExpr{}, errors.Newf("unknown expression kind %q at line %d", en.Kind, n.Line)
	}
}

func decodeExprList(nodes []*yaml.Node) ([]ConstExpr, error) {
	elems := make([]ConstExpr, 0, len(nodes))
	for _, node := range nodes {
		e, err := decodeExprNode(node)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return elems, nil
}

// decodeObject keeps property order as written in the manifest
func decodeObject(n *yaml.Node) (ConstExpr, error) {
	if n.Kind == 0 {
		return Object(), nil
	}
	if n.Kind != yaml.MappingNode {
		return ConstExpr{}, errors.Newf("object props at line %d must be a mapping", n.Line)
	}
	props := make([]Property, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		value, err := decodeExprNode(n.Content[i+1])
		if err != nil {
			return ConstExpr{}, err
		}
		props = append(props, Property{Name: n.Content[i].Value, Value: value})
	}
	return Object(props...), nil
}

func scalarLiteral(n *yaml.Node) ConstExpr {
	switch n.ShortTag() {
	case "!!int", "!!float":
		return NumberLit(n.Value)
	case "!!bool":
		b, _ := strconv.ParseBool(strings.ToLower(n.Value))
		return BoolLit(b)
	case "!!null":
		return Lit(LitNull, "null")
	default:
		return StringLit(n.Value)
	}
}

func parseLiteralKind(kind, token string) LiteralKind {
	switch strings.ToLower(kind) {
	case "string":
		return LitString
	case "number":
		return LitNumber
	case "bool", "boolean":
		return LitBool
	case "null":
		return LitNull
	}
	switch {
	case token == "true" || token == "false":
		return LitBool
	case token == "null":
		return LitNull
	case strings.HasPrefix(token, "\"") || strings.HasPrefix(token, "'") || strings.HasPrefix(token, "@\""):
		return LitString
	default:
		return LitNumber
	}
}
