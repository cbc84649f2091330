package normalizer

import (
	"strconv"
	"strings"

	"go.trai.ch/moveiface/internal/core/domain"
)

// typeParser is a recursive descent parser for Move type syntax:
//
//	type   := "&" ["mut"] type | "vector" "<" type ">" | prim | struct | param
//	struct := addr "::" ident "::" ident ["<" type {"," type} ">"]
//
// Named type parameters resolve to their declaration position.
type typeParser struct {
	src    string
	pos    int
	params []string
}

// parseMoveType parses src. params lists the declared type parameter names by position;
// when a name is absent, the positional spelling T<index> is accepted instead.
func parseMoveType(src string, params []string) (domain.TypeSignature, error) {
	p := &typeParser{src: src, params: params}
	sig, err := p.parseType()
	if err != nil {
		return domain.TypeSignature{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return domain.TypeSignature{}, p.errorf("unexpected trailing input")
	}
	return sig, nil
}

func (p *typeParser) parseType() (domain.TypeSignature, error) {
	p.skipSpace()
	if p.consume("&") {
		p.skipSpace()
		mutable := p.consumeKeyword("mut")
		inner, err := p.parseType()
		if err != nil {
			return domain.TypeSignature{}, err
		}
		return domain.Reference(inner, mutable), nil
	}

	if strings.HasPrefix(p.src[p.pos:], "0x") || strings.HasPrefix(p.src[p.pos:], "0X") {
		return p.parseStruct()
	}

	ident := p.ident()
	if ident == "" {
		return domain.TypeSignature{}, p.errorf("expected type")
	}

	if ident == "vector" {
		if !p.expect("<") {
			return domain.TypeSignature{}, p.errorf("expected '<' after vector")
		}
		inner, err := p.parseType()
		if err != nil {
			return domain.TypeSignature{}, err
		}
		if !p.expect(">") {
			return domain.TypeSignature{}, p.errorf("expected '>' closing vector")
		}
		return domain.Vector(inner), nil
	}

	if idx, ok := p.resolveParam(ident); ok {
		return domain.TypeParam(idx), nil
	}
	if prim, ok := domain.CanonicalPrimitive(ident); ok && prim == ident {
		return domain.Primitive(prim), nil
	}
	return domain.TypeSignature{}, p.errorf("unresolved type name %q", ident)
}

func (p *typeParser) parseStruct() (domain.TypeSignature, error) {
	start := p.pos
	p.pos += 2
	for p.pos < len(p.src) && isHex(p.src[p.pos]) {
		p.pos++
	}
	addr, err := domain.NormalizeAddress(p.src[start:p.pos])
	if err != nil {
		return domain.TypeSignature{}, p.errorf("invalid address %q", p.src[start:p.pos])
	}
	if !p.expect("::") {
		return domain.TypeSignature{}, p.errorf("expected '::' after address")
	}
	module := p.ident()
	if module == "" || !p.expect("::") {
		return domain.TypeSignature{}, p.errorf("expected module name")
	}
	name := p.ident()
	if name == "" {
		return domain.TypeSignature{}, p.errorf("expected struct name")
	}

	var args []domain.TypeSignature
	p.skipSpace()
	if p.consume("<") {
		for {
			arg, err := p.parseType()
			if err != nil {
				return domain.TypeSignature{}, err
			}
			args = append(args, arg)
			p.skipSpace()
			if p.consume(",") {
				continue
			}
			if p.consume(">") {
				break
			}
			return domain.TypeSignature{}, p.errorf("expected ',' or '>' in type arguments")
		}
	}
	return domain.StructType(addr, module, name, args...), nil
}

func (p *typeParser) resolveParam(ident string) (int, bool) {
	for i, name := range p.params {
		if name != "" && name == ident {
			return i, true
		}
	}
	rest, ok := strings.CutPrefix(ident, "T")
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 || idx >= len(p.params) {
		return 0, false
	}
	if p.params[idx] != "" && p.params[idx] != ident {
		return 0, false
	}
	return idx, true
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos], p.pos == start) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) consumeKeyword(kw string) bool {
	if !strings.HasPrefix(p.src[p.pos:], kw) {
		return false
	}
	end := p.pos + len(kw)
	if end < len(p.src) && isIdentByte(p.src[end], false) {
		return false
	}
	p.pos = end
	return true
}

func (p *typeParser) expect(tok string) bool {
	p.skipSpace()
	return p.consume(tok)
}

func (p *typeParser) consume(tok string) bool {
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) errorf(msg string, args ...any) error {
	return domain.NewFault(domain.ErrMalformedInterface, "type %q at offset %d: "+msg, append([]any{p.src, p.pos}, args...)...)
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}
