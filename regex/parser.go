package regex

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/gosari/sari/errs"
)

// Parse parses pattern against the grammar of spec.md §4.10:
//
//	regex  ::= term ('|' regex)?
//	term   ::= factor+
//	factor ::= base ('*' | '+' | '{' num ',' num '}')?
//	base   ::= mgram | '[' class ']' | '.' | '(' regex ')'
//	mgram  ::= char ('\' ESC | char)*
//	class  ::= (char ('-' char)?)+
//	num    ::= digit+
//
// `|` is right-associative, concatenation is left-associative, and
// repetition binds tighter than concatenation. A literal run of
// characters collapses into a single Primitive{Mgram}; an empty
// alternative (e.g. the right side of "a|") produces Blank.
func Parse(pattern string) (Node, error) {
	p := &parser{s: []byte(pattern)}
	n, err := p.parseRegex()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, errs.NewParse(p.pos, "unbalanced parentheses or unexpected trailing input")
	}
	return n, nil
}

type parser struct {
	s   []byte
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) advance() byte {
	c := p.s[p.pos]
	p.pos++
	return c
}

// atStop reports whether the parser is positioned at a token that ends
// the current term/regex: end of input, the alternation separator, or a
// group close.
func (p *parser) atStop() bool {
	if p.eof() {
		return true
	}
	switch p.peek() {
	case '|', ')':
		return true
	}
	return false
}

func (p *parser) parseRegex() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if !p.eof() && p.peek() == '|' {
		p.advance()
		right, err := p.parseRegex()
		if err != nil {
			return nil, err
		}
		return &Union{First: left, Second: right}, nil
	}
	return left, nil
}

func (p *parser) parseTerm() (Node, error) {
	if p.atStop() {
		return &Blank{}, nil
	}

	acc, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for !p.atStop() {
		next, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		acc = &Concat{Left: acc, Right: next}
	}
	return acc, nil
}

func (p *parser) parseFactor() (Node, error) {
	base, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	if p.eof() {
		return base, nil
	}
	switch p.peek() {
	case '*':
		p.advance()
		return &Repeat{Inner: base, Kind: ZeroOrMore}, nil
	case '+':
		p.advance()
		return &Repeat{Inner: base, Kind: OneOrMore}, nil
	case '{':
		return p.parseBoundedRepeat(base)
	default:
		return base, nil
	}
}

func (p *parser) parseBoundedRepeat(base Node) (Node, error) {
	start := p.pos
	p.advance() // '{'

	min, ok := p.parseNum()
	if !ok {
		return nil, errs.NewParse(p.pos, "invalid repetition bounds: expected a minimum digit")
	}
	if p.eof() || p.peek() != ',' {
		return nil, errs.NewParse(p.pos, "invalid repetition bounds: expected ','")
	}
	p.advance()
	max, ok := p.parseNum()
	if !ok {
		return nil, errs.NewParse(p.pos, "invalid repetition bounds: expected a maximum digit")
	}
	if p.eof() || p.peek() != '}' {
		return nil, errs.NewParse(p.pos, "invalid repetition bounds: expected '}'")
	}
	p.advance()

	if max < min {
		return nil, errs.NewParse(start, "invalid repetition bounds: max < min")
	}
	return &Repeat{Inner: base, Kind: MinToMax, Min: min, Max: max}, nil
}

func (p *parser) parseNum() (int, bool) {
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.advance()
	}
	if p.pos == start {
		return 0, false
	}
	n := 0
	for _, c := range p.s[start:p.pos] {
		n = n*10 + int(c-'0')
	}
	return n, true
}

func (p *parser) parseBase() (Node, error) {
	if p.eof() {
		return nil, errs.NewParse(p.pos, "expected an expression but found end of input")
	}

	switch p.peek() {
	case '(':
		p.advance()
		inner, err := p.parseRegex()
		if err != nil {
			return nil, err
		}
		if p.eof() || p.peek() != ')' {
			return nil, errs.NewParse(p.pos, "unbalanced parentheses: expected ')'")
		}
		p.advance()
		return inner, nil

	case '.':
		p.advance()
		return &Primitive{Kind: Dot}, nil

	case '[':
		return p.parseClass()

	case ')':
		return nil, errs.NewParse(p.pos, "unbalanced parentheses: unexpected ')'")

	case '*', '+', '{':
		return nil, errs.NewParse(p.pos, "repetition operator with no preceding expression")

	default:
		return p.parseMgram()
	}
}

func (p *parser) parseClass() (Node, error) {
	start := p.pos
	p.advance() // '['

	bs := bitset.New(256)
	any := false
	for {
		if p.eof() {
			return nil, errs.NewParse(p.pos, "unbalanced character class: expected ']'")
		}
		if p.peek() == ']' {
			break
		}
		lo := p.readClassChar()
		hi := lo
		if !p.eof() && p.peek() == '-' {
			save := p.pos
			p.advance()
			if p.eof() || p.peek() == ']' {
				// Trailing '-' before ']' is a literal hyphen, not a range.
				p.pos = save
			} else {
				hi = p.readClassChar()
			}
		}
		if hi < lo {
			return nil, errs.NewParse(start, "invalid character class: range end before start")
		}
		for c := int(lo); c <= int(hi); c++ {
			bs.Set(uint(c))
		}
		any = true
	}
	p.advance() // ']'

	if !any {
		return nil, errs.NewParse(start, "empty character class")
	}
	return &Primitive{Kind: Range, Set: bs}, nil
}

// readClassChar reads one (possibly backslash-escaped) byte inside a
// character class.
func (p *parser) readClassChar() byte {
	if p.peek() == '\\' && p.pos+1 < len(p.s) {
		p.advance()
		return p.advance()
	}
	return p.advance()
}

func (p *parser) parseMgram() (Node, error) {
	var buf []byte
	for !p.eof() && !isMetachar(p.peek()) {
		if p.peek() == '\\' {
			p.advance()
			if p.eof() {
				return nil, errs.NewParse(p.pos, "dangling escape at end of pattern")
			}
			buf = append(buf, p.advance())
			continue
		}
		buf = append(buf, p.advance())
	}
	if len(buf) == 0 {
		return nil, errs.NewParse(p.pos, "expected a literal, class, '.', or group")
	}
	return &Primitive{Kind: Mgram, Bytes: buf}, nil
}

func isMetachar(c byte) bool {
	switch c {
	case '|', '(', ')', '.', '[', '*', '+', '{':
		return true
	default:
		return false
	}
}
