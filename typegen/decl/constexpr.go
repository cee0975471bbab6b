package decl

import "strconv"

// ExprKind tags the variant held by a ConstExpr
type ExprKind int

const (
	ExprInvalid ExprKind = iota
	ExprLiteral
	ExprEnumMember
	ExprArray
	ExprObject
	ExprCollection
	ExprSpread
	ExprNegate
	ExprParen
	ExprIdentifier
	ExprUnsupported
)

// LiteralKind classifies a literal token
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitBool
	LitNull
)

// ConstExpr is the restricted constant-expression grammar accepted for
// field initializers, enum values and derived properties.
//
//	Literal:    Literal, Text (verbatim token, strings keep their quotes)
//	EnumMember: Enum, Name
//	Array:      Elems (array or collection-expression literal)
//	Object:     Props (object creation with property assignments)
//	Collection: Elems (object creation with positional initializer)
//	Spread, Negate, Paren: Operand
//	Identifier: Name, Resolved (constant literal, when the resolver knew it)
//	Unsupported: Text (source text, for diagnostics)
type ConstExpr struct {
	Kind     ExprKind
	Literal  LiteralKind
	Text     string
	Enum     string
	Name     string
	Elems    []ConstExpr
	Props    []Property
	Operand  *ConstExpr
	Resolved *ConstExpr
}

// Property is one property assignment of an object initializer
type Property struct {
	Name  string
	Value ConstExpr
}

// Lit returns a literal with a verbatim token
func Lit(kind LiteralKind, token string) ConstExpr {
	return ConstExpr{Kind: ExprLiteral, Literal: kind, Text: token}
}

// StringLit returns a string literal for an unquoted value
func StringLit(value string) ConstExpr {
	return Lit(LitString, strconv.Quote(value))
}

// NumberLit returns a numeric literal
func NumberLit(token string) ConstExpr {
	return Lit(LitNumber, token)
}

// BoolLit returns a boolean literal
func BoolLit(v bool) ConstExpr {
	return Lit(LitBool, strconv.FormatBool(v))
}

// EnumRef returns a reference to an enum member
func EnumRef(enum, member string) ConstExpr {
	return ConstExpr{Kind: ExprEnumMember, Enum: enum, Name: member}
}

// Array returns an array literal
func Array(elems ...ConstExpr) ConstExpr {
	return ConstExpr{Kind: ExprArray, Elems: elems}
}

// Collection returns an object creation with a positional initializer
func Collection(elems ...ConstExpr) ConstExpr {
	return ConstExpr{Kind: ExprCollection, Elems: elems}
}

// Object returns an object creation with property assignments
func Object(props ...Property) ConstExpr {
	return ConstExpr{Kind: ExprObject, Props: props}
}

// Spread returns a spread element
func Spread(e ConstExpr) ConstExpr {
	return ConstExpr{Kind: ExprSpread, Operand: &e}
}

// Negate returns a unary negation
func Negate(e ConstExpr) ConstExpr {
	return ConstExpr{Kind: ExprNegate, Operand: &e}
}

// Paren returns a parenthesized expression
func Paren(e ConstExpr) ConstExpr {
	return ConstExpr{Kind: ExprParen, Operand: &e}
}

// Ident returns a bare identifier; resolved may be nil
func Ident(name string, resolved *ConstExpr) ConstExpr {
	return ConstExpr{Kind: ExprIdentifier, Name: name, Resolved: resolved}
}

// Unsupported returns an expression outside the translatable grammar
func Unsupported(source string) ConstExpr {
	return ConstExpr{Kind: ExprUnsupported, Text: source}
}
