package typeset

import (
	"fmt"
	"unicode"
)

// tokKind classifies lexer tokens.
type tokKind int

const (
	tokIdent tokKind = iota
	tokNumber
	tokOp    // infix operators: + - = < > etc.
	tokSlash // fraction
	tokCaret // superscript
	tokUnder // subscript
	tokLParen
	tokRParen
)

type token struct {
	kind  tokKind
	text  string
	start int // byte offset into source
	end   int
}

// nodeKind classifies parse-tree nodes. The tree exists to produce one source
// span per sub-expression; kinds matter only to the layout pass.
type nodeKind int

const (
	nodeLeaf nodeKind = iota
	nodeBinary
	nodeFrac
	nodeAttach
	nodeGroup
)

type parseNode struct {
	kind     nodeKind
	start    int
	end      int
	tok      token // leaf token, or the operator for binary/frac/attach
	children []*parseNode
	sup      bool // attach only: superscript vs subscript
}

func lex(src string) ([]token, error) {
	var toks []token
	bytes := []byte(src)
	i := 0
	for i < len(bytes) {
		c := rune(bytes[i])
		switch {
		case c == ' ' || c == '\t':
			i++
		case unicode.IsLetter(c):
			j := i
			for j < len(bytes) && unicode.IsLetter(rune(bytes[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j], start: i, end: j})
			i = j
		case unicode.IsDigit(c):
			j := i
			for j < len(bytes) && (unicode.IsDigit(rune(bytes[j])) || bytes[j] == '.') {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: src[i:j], start: i, end: j})
			i = j
		case c == '/':
			toks = append(toks, token{kind: tokSlash, text: "/", start: i, end: i + 1})
			i++
		case c == '^':
			toks = append(toks, token{kind: tokCaret, text: "^", start: i, end: i + 1})
			i++
		case c == '_':
			toks = append(toks, token{kind: tokUnder, text: "_", start: i, end: i + 1})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", start: i, end: i + 1})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", start: i, end: i + 1})
			i++
		case isOperator(c):
			toks = append(toks, token{kind: tokOp, text: string(c), start: i, end: i + 1})
			i++
		default:
			return nil, fmt.Errorf("parse error: unexpected character %q at offset %d", c, i)
		}
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("parse error: empty formula")
	}
	return toks, nil
}

func isOperator(c rune) bool {
	switch c {
	case '+', '-', '*', '=', '<', '>', ',', '!', '|', '&', ':':
		return true
	}
	return false
}

// parser is a recursive-descent parser over the token stream.
type parser struct {
	toks []token
	pos  int
}

func parseFormula(src string) (*parseNode, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		t := p.toks[p.pos]
		return nil, fmt.Errorf("parse error: unexpected %q at offset %d", t.text, t.start)
	}
	return root, nil
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

// expr := frac (op frac)*
func (p *parser) expr() (*parseNode, error) {
	lhs, err := p.frac()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp {
			return lhs, nil
		}
		p.pos++
		rhs, err := p.frac()
		if err != nil {
			return nil, err
		}
		lhs = &parseNode{
			kind:     nodeBinary,
			start:    lhs.start,
			end:      rhs.end,
			tok:      t,
			children: []*parseNode{lhs, rhs},
		}
	}
}

// frac := attach ('/' attach)*
func (p *parser) frac() (*parseNode, error) {
	num, err := p.attach()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokSlash {
			return num, nil
		}
		p.pos++
		denom, err := p.attach()
		if err != nil {
			return nil, err
		}
		num = &parseNode{
			kind:     nodeFrac,
			start:    num.start,
			end:      denom.end,
			tok:      t,
			children: []*parseNode{num, denom},
		}
	}
}

// attach := primary (('^' | '_') primary)*
func (p *parser) attach() (*parseNode, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || (t.kind != tokCaret && t.kind != tokUnder) {
			return base, nil
		}
		p.pos++
		script, err := p.primary()
		if err != nil {
			return nil, err
		}
		base = &parseNode{
			kind:     nodeAttach,
			start:    base.start,
			end:      script.end,
			tok:      t,
			children: []*parseNode{base, script},
			sup:      t.kind == tokCaret,
		}
	}
}

// primary := ident | number | '(' expr ')'
func (p *parser) primary() (*parseNode, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("parse error: unexpected end of formula")
	}
	switch t.kind {
	case tokIdent, tokNumber:
		p.pos++
		return &parseNode{kind: nodeLeaf, start: t.start, end: t.end, tok: t}, nil
	case tokLParen:
		p.pos++
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokRParen {
			return nil, fmt.Errorf("parse error: unbalanced parenthesis opened at offset %d", t.start)
		}
		p.pos++
		return &parseNode{
			kind:     nodeGroup,
			start:    t.start,
			end:      closing.end,
			children: []*parseNode{inner},
		}, nil
	default:
		return nil, fmt.Errorf("parse error: unexpected %q at offset %d", t.text, t.start)
	}
}

// spans collects every sub-expression source range in the tree, depth-first,
// deduplicated by range with first occurrence kept. The root span always
// comes first.
func spans(root *parseNode) []sourceSpan {
	var out []sourceSpan
	seen := make(map[sourceSpan]struct{})
	var rec func(n *parseNode)
	rec = func(n *parseNode) {
		sp := sourceSpan{start: n.start, end: n.end}
		if _, dup := seen[sp]; !dup {
			seen[sp] = struct{}{}
			out = append(out, sp)
		}
		for _, c := range n.children {
			rec(c)
		}
	}
	rec(root)
	return out
}

type sourceSpan struct {
	start, end int
}
