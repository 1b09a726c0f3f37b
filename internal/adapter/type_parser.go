package adapter

import (
	"strconv"
	"strings"

	m "chisel.dev/pkg/chisel/internal/model"
)

// ParseTypeExpr parses one manifest type descriptor into a model.TypeExpr.
//
// Recognized forms: `()`, `!`, `*const T`, `*mut T`, `[T; N]`,
// `fn(name: T, ...) -> T` (with an optional `extern "abi"` prefix) and
// plain or module-qualified paths like `i32` or `libc::c_int`.
//
// Parsing never fails: anything outside the grammar (references, slices,
// generics, tuples, ...) becomes an OpaqueExpr carrying the raw text, so
// the type mapper can reject it with the rendered form intact.
func ParseTypeExpr(src string) m.TypeExpr {
	trimmed := strings.TrimSpace(src)
	p := &typeParser{src: trimmed}

	expr, ok := p.parse()
	p.skipSpace()

	if !ok || p.pos != len(p.src) {
		return m.OpaqueExpr{Raw: trimmed}
	}

	return expr
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) parse() (m.TypeExpr, bool) {
	p.skipSpace()

	switch {
	case p.eat("()"):
		return m.UnitExpr{}, true
	case p.eat("!"):
		return m.NeverExpr{}, true
	case p.eat("*"):
		return p.parsePointer()
	case p.eat("["):
		return p.parseArray()
	}

	save := p.pos

	if p.eatWord("extern") {
		p.skipSpace()
		if p.skipQuoted() {
			p.skipSpace()
		} else {
			p.pos = save
		}
	}

	if p.eatWord("fn") {
		return p.parseFn()
	}

	p.pos = save

	return p.parsePath()
}

func (p *typeParser) parsePointer() (m.TypeExpr, bool) {
	p.skipSpace()

	mutable := false

	switch {
	case p.eatWord("mut"):
		mutable = true
	case p.eatWord("const"):
	default:
		return nil, false
	}

	elem, ok := p.parse()
	if !ok {
		return nil, false
	}

	return m.PointerExpr{Elem: elem, Mutable: mutable}, true
}

func (p *typeParser) parseArray() (m.TypeExpr, bool) {
	elem, ok := p.parse()
	if !ok {
		return nil, false
	}

	p.skipSpace()

	if !p.eat(";") {
		return nil, false
	}

	p.skipSpace()

	length, ok := p.parseInt()
	if !ok {
		return nil, false
	}

	p.skipSpace()

	if !p.eat("]") {
		return nil, false
	}

	return m.ArrayExpr{Elem: elem, Len: length}, true
}

func (p *typeParser) parseFn() (m.TypeExpr, bool) {
	p.skipSpace()

	if !p.eat("(") {
		return nil, false
	}

	var params []m.Param

	p.skipSpace()

	if !p.eat(")") {
		for {
			p.skipSpace()

			name := ""
			save := p.pos

			if id, ok := p.parseIdent(); ok {
				p.skipSpace()
				if p.eat(":") {
					name = id
				} else {
					p.pos = save
				}
			}

			ty, ok := p.parse()
			if !ok {
				return nil, false
			}

			params = append(params, m.Param{Name: name, Type: ty})

			p.skipSpace()

			if p.eat(",") {
				continue
			}

			if p.eat(")") {
				break
			}

			return nil, false
		}
	}

	sig := m.FuncSig{Params: params}

	p.skipSpace()

	if p.eat("->") {
		ret, ok := p.parse()
		if !ok {
			return nil, false
		}

		sig.Return = ret
	}

	return m.FuncExpr{Sig: sig}, true
}

func (p *typeParser) parsePath() (m.TypeExpr, bool) {
	var segments []string

	for {
		id, ok := p.parseIdent()
		if !ok {
			return nil, false
		}

		segments = append(segments, id)

		if !p.eat("::") {
			break
		}
	}

	ref := m.NamedRef{Name: segments[len(segments)-1]}
	if len(segments) > 1 {
		ref.Module = segments[:len(segments)-1]
	}

	return ref, true
}

func (p *typeParser) parseIdent() (string, bool) {
	start := p.pos

	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		if ch == '_' ||
			(ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9' && p.pos > start) {
			p.pos++
			continue
		}

		break
	}

	if p.pos == start {
		return "", false
	}

	return p.src[start:p.pos], true
}

func (p *typeParser) parseInt() (int, bool) {
	start := p.pos

	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}

	if p.pos == start {
		return 0, false
	}

	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, false
	}

	return n, true
}

func (p *typeParser) skipQuoted() bool {
	if !p.eat(`"`) {
		return false
	}

	end := strings.IndexByte(p.src[p.pos:], '"')
	if end < 0 {
		return false
	}

	p.pos += end + 1

	return true
}

func (p *typeParser) eat(prefix string) bool {
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}

	return false
}

func (p *typeParser) eatWord(word string) bool {
	if !strings.HasPrefix(p.src[p.pos:], word) {
		return false
	}

	next := p.pos + len(word)
	if next < len(p.src) {
		ch := p.src[next]
		if ch == '_' ||
			(ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') {
			return false
		}
	}

	p.pos = next

	return true
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}
