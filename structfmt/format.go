package structfmt

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
)

// maxCount bounds the decimal repeat count of a single code.
const maxCount = DefaultMaxFieldLen

type opKind int

const (
	opInt opKind = iota
	opBool
	opPad
	opBytes
	opPrefixed
	opRepeated
	opRest
)

type op struct {
	kind   opKind
	width  int
	signed bool
	n      int
	sub    *expr
}

type expr struct {
	order binary.ByteOrder
	ops   []op
}

func (e *expr) valueCount() int {
	n := 0
	for _, o := range e.ops {
		if o.kind != opPad {
			n++
		}
	}
	return n
}

func (e *expr) fixedSize() (int, error) {
	size := 0
	for _, o := range e.ops {
		switch o.kind {
		case opInt:
			size += o.width
		case opBool, opPad:
			size++
		case opBytes:
			size += o.n
		default:
			return 0, errors.Wrap(ErrInvalidFormat, "format has variable size")
		}
	}
	return size, nil
}

var intWidths = map[byte]int{
	'b': 1, 'B': 1,
	'h': 2, 'H': 2,
	'i': 4, 'I': 4, 'l': 4, 'L': 4,
	'q': 8, 'Q': 8,
}

func isSigned(c byte) bool {
	return c >= 'a' && c <= 'z'
}

type parser struct {
	src string
	pos int
}

func compile(format string) (*expr, error) {
	p := &parser{src: format}
	order := binary.ByteOrder(binary.BigEndian)
	p.skipSpace()
	if p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '>', '!':
			p.pos++
		case '<':
			order = binary.LittleEndian
			p.pos++
		}
	}

	e, err := p.parseExpr(order, false)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return e, nil
}

func (p *parser) parseExpr(order binary.ByteOrder, nested bool) (*expr, error) {
	e := &expr{order: order}
	for {
		p.skipSpace()
		if p.pos == len(p.src) {
			break
		}
		c := p.src[p.pos]
		if c == ')' {
			if !nested {
				return nil, p.errorf("unbalanced ')'")
			}
			break
		}
		if len(e.ops) > 0 && e.ops[len(e.ops)-1].kind == opRest {
			return nil, p.errorf("'*' must be the last code")
		}

		count, hasCount := p.parseCount()
		if count > maxCount {
			return nil, p.errorf("count too large")
		}
		if p.pos == len(p.src) {
			return nil, p.errorf("count without code")
		}
		c = p.src[p.pos]
		p.pos++

		switch {
		case c == 's':
			if !hasCount {
				count = 1
			}
			e.ops = append(e.ops, op{kind: opBytes, n: count})
		case c == 'x':
			e.ops = appendRepeated(e.ops, op{kind: opPad}, count, hasCount)
		case c == '?':
			e.ops = appendRepeated(e.ops, op{kind: opBool}, count, hasCount)
		case c == '*':
			if nested {
				return nil, p.errorf("'*' is not allowed inside a group")
			}
			if hasCount {
				return nil, p.errorf("'*' does not take a count")
			}
			e.ops = append(e.ops, op{kind: opRest})
		case intWidths[c] != 0:
			width := intWidths[c]
			if p.pos < len(p.src) && p.src[p.pos] == '+' {
				p.pos++
				if hasCount {
					return nil, p.errorf("length prefix %q does not take a count", c)
				}
				if isSigned(c) {
					return nil, p.errorf("length prefix %q must be unsigned", c)
				}
				o, err := p.parsePrefixed(order, width)
				if err != nil {
					return nil, err
				}
				e.ops = append(e.ops, o)
				continue
			}
			e.ops = appendRepeated(e.ops, op{kind: opInt, width: width, signed: isSigned(c)}, count, hasCount)
		default:
			return nil, p.errorf("unknown code %q", c)
		}
	}
	return e, nil
}

func (p *parser) parsePrefixed(order binary.ByteOrder, width int) (op, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '(' {
		return op{kind: opPrefixed, width: width}, nil
	}
	p.pos++
	sub, err := p.parseExpr(order, true)
	if err != nil {
		return op{}, err
	}
	if p.pos >= len(p.src) || p.src[p.pos] != ')' {
		return op{}, p.errorf("missing ')'")
	}
	p.pos++
	if sub.valueCount() == 0 {
		return op{}, p.errorf("empty group")
	}
	return op{kind: opRepeated, width: width, sub: sub}, nil
}

func appendRepeated(ops []op, o op, count int, hasCount bool) []op {
	if !hasCount {
		count = 1
	}
	for i := 0; i < count; i++ {
		ops = append(ops, o)
	}
	return ops
}

func (p *parser) parseCount() (int, bool) {
	start := p.pos
	n := 0
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		if n <= maxCount {
			n = n*10 + int(p.src[p.pos]-'0')
		}
		p.pos++
	}
	return n, p.pos > start
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidFormat, "%q at %d: "+format, append([]interface{}{p.src, p.pos}, args...)...)
}
