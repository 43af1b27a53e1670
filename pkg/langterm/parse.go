package langterm

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a malformed s-expression with a byte offset into the
// source, so a caller (the CLI, the library loader) can report a
// location.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("langterm: parse error at offset %d: %s", e.Offset, e.Msg)
}

type token struct {
	text   string
	offset int
}

// tokenize splits src into '(' / ')' tokens and maximal runs of
// non-whitespace, non-paren characters (atoms, possibly '?'-prefixed).
func tokenize(src string) []token {
	var toks []token
	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(' || c == ')':
			toks = append(toks, token{text: string(c), offset: i})
			i++
		default:
			start := i
			for i < n && src[i] != '(' && src[i] != ')' &&
				src[i] != ' ' && src[i] != '\t' && src[i] != '\n' && src[i] != '\r' {
				i++
			}
			toks = append(toks, token{text: src[start:i], offset: start})
		}
	}
	return toks
}

// parser is a simple recursive-descent parser over the s-expression
// grammar, extended with '?'-prefixed pattern variables.
type parser struct {
	toks []token
	pos  int
	out  *Expr
}

// Parse parses a single s-expression into a fresh Expr whose root is the
// parsed expression. Pattern variables ('?name') are accepted anywhere a
// bare symbol atom is; callers that parse a non-pattern expression and
// encounter one should treat that as a caller-level error, since
// ordinary expressions never contain them.
func Parse(src string) (*Expr, error) {
	toks := tokenize(src)
	if len(toks) == 0 {
		return nil, &ParseError{Offset: 0, Msg: "empty input"}
	}
	p := &parser{toks: toks, out: NewExpr()}
	if _, err := p.parseExpr(); err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, &ParseError{Offset: p.toks[p.pos].offset, Msg: "trailing input after expression"}
	}
	return p.out, nil
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) parseExpr() (NodeID, error) {
	t, ok := p.peek()
	if !ok {
		return 0, &ParseError{Offset: len(p.toks), Msg: "unexpected end of input"}
	}
	if t.text == "(" {
		return p.parseList()
	}
	if t.text == ")" {
		return 0, &ParseError{Offset: t.offset, Msg: "unexpected ')'"}
	}
	p.pos++
	return p.parseAtom(t)
}

func (p *parser) parseAtom(t token) (NodeID, error) {
	if strings.HasPrefix(t.text, "?") {
		name := t.text[1:]
		if !isSymbol(name) {
			return 0, &ParseError{Offset: t.offset, Msg: "malformed pattern variable " + t.text}
		}
		return p.out.AddVar(name), nil
	}
	if v, err := strconv.ParseInt(t.text, 10, 32); err == nil {
		return p.out.AddNum(int32(v)), nil
	}
	if !isSymbol(t.text) {
		return 0, &ParseError{Offset: t.offset, Msg: "malformed atom " + t.text}
	}
	return p.out.AddSymbol(t.text), nil
}

func isSymbol(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if i > 0 && !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

func (p *parser) parseList() (NodeID, error) {
	open, _ := p.next() // consume '('
	headTok, ok := p.peek()
	if !ok {
		return 0, &ParseError{Offset: open.offset, Msg: "unterminated list"}
	}
	if headTok.text == "(" || headTok.text == ")" {
		return 0, &ParseError{Offset: headTok.offset, Msg: "expected head symbol"}
	}
	p.pos++

	var children []NodeID
	for {
		t, ok := p.peek()
		if !ok {
			return 0, &ParseError{Offset: open.offset, Msg: "unterminated list"}
		}
		if t.text == ")" {
			p.pos++
			break
		}
		id, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		children = append(children, id)
	}

	switch headTok.text {
	case "&":
		if len(children) != 2 {
			return 0, &ParseError{Offset: headTok.offset, Msg: "'&' requires exactly 2 operands"}
		}
		return p.out.AddAnd(children[0], children[1]), nil
	case "|":
		if len(children) != 2 {
			return 0, &ParseError{Offset: headTok.offset, Msg: "'|' requires exactly 2 operands"}
		}
		return p.out.AddOr(children[0], children[1]), nil
	case "!":
		if len(children) != 1 {
			return 0, &ParseError{Offset: headTok.offset, Msg: "'!' requires exactly 1 operand"}
		}
		return p.out.AddNot(children[0]), nil
	case "module":
		return p.out.AddModule(children), nil
	case "let":
		if len(children) != 2 {
			return 0, &ParseError{Offset: headTok.offset, Msg: "'let' requires exactly 2 operands"}
		}
		if k := p.out.Kind(children[0]); k != Symbol && k != Var {
			return 0, &ParseError{Offset: headTok.offset, Msg: "'let' name must be a bare symbol"}
		}
		return p.out.AddLet(children[0], children[1]), nil
	case "input":
		if len(children) != 2 {
			return 0, &ParseError{Offset: headTok.offset, Msg: "'input' requires exactly 2 operands"}
		}
		if k := p.out.Kind(children[0]); k != Symbol && k != Var {
			return 0, &ParseError{Offset: headTok.offset, Msg: "'input' port must be a bare symbol"}
		}
		return p.out.AddInput(children[0], children[1]), nil
	case "output":
		if len(children) != 1 {
			return 0, &ParseError{Offset: headTok.offset, Msg: "'output' requires exactly 1 operand"}
		}
		if k := p.out.Kind(children[0]); k != Symbol && k != Var {
			return 0, &ParseError{Offset: headTok.offset, Msg: "'output' port must be a bare symbol"}
		}
		return p.out.AddOutput(children[0]), nil
	default:
		if !isSymbol(headTok.text) {
			return 0, &ParseError{Offset: headTok.offset, Msg: "malformed gate name " + headTok.text}
		}
		return p.out.AddGate(headTok.text, children), nil
	}
}
