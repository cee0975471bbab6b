package decl

import (
	"strings"
	"unicode"

	"github.com/bodnarbalazs/Cs2Ts/errors"
)

// ParseTypeRef parses the source shorthand of a type reference, e.g.
// "int", "List<Order>?", "Dictionary<string, int[]>", "Nullable<Guid>".
//
// Grammar:
//
//	type    = operand { "[]" | "?" }
//	operand = "(" type ")" | ident [ "<" type { "," type } ">" ]
//	ident   = letter | "_" | "@" { letter | digit | "_" | "." | ":" }
func ParseTypeRef(s string) (TypeRef, error) {
	p := &typeParser{src: s}
	ref, err := p.parseType()
	if err != nil {
		return TypeRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeRef{}, errors.Newf("unexpected %q at offset %d in type %q", p.src[p.pos:], p.pos, s)
	}
	return ref, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) parseType() (TypeRef, error) {
	ref, err := p.parseOperand()
	if err != nil {
		return TypeRef{}, err
	}
	for {
		switch {
		case p.peek() == '?':
			p.pos++
			if ref.Kind != TypeNullable {
				ref = Nullable(ref)
			}
		case strings.HasPrefix(p.src[p.pos:], "[]"):
			p.pos += 2
			ref = ArrayOf(ref)
		default:
			return ref, nil
		}
	}
}

func (p *typeParser) parseOperand() (TypeRef, error) {
	if p.peek() == '(' {
		p.pos++
		inner, err := p.parseType()
		if err != nil {
			return TypeRef{}, err
		}
		if p.peek() != ')' {
			return TypeRef{}, errors.Newf("missing ')' in type %q", p.src)
		}
		p.pos++
		return inner, nil
	}

	name := p.parseIdent()
	if name == "" {
		return TypeRef{}, errors.Newf("expected type name at offset %d in %q", p.pos, p.src)
	}
	if p.peek() != '<' {
		return Ref(name), nil
	}

	p.pos++
	var args []TypeRef
	for {
		arg, err := p.parseType()
		if err != nil {
			return TypeRef{}, err
		}
		args = append(args, arg)
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			if (name == "Nullable" || name == "System.Nullable") && len(args) == 1 {
				return Nullable(args[0]), nil
			}
			return Generic(name, args...), nil
		default:
			return TypeRef{}, errors.Newf("expected ',' or '>' at offset %d in %q", p.pos, p.src)
		}
	}
}

func (p *typeParser) parseIdent() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		first := p.pos == start
		if unicode.IsLetter(r) || r == '_' || (first && r == '@') ||
			(!first && (unicode.IsDigit(r) || r == '.' || r == ':')) {
			p.pos++
			continue
		}
		break
	}
	return strings.TrimPrefix(p.src[start:p.pos], "@")
}
