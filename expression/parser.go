package expression

import (
	"fmt"
)

// Binary operator precedence levels, lowest first.
var precedence = []map[string]bool{
	{"||": true, "or": true},
	{"&&": true, "and": true},
	{"==": true, "!=": true, "eq": true, "ne": true, "=": true},
	{"<": true, ">": true, "<=": true, ">=": true, "lt": true, "gt": true, "le": true, "ge": true},
	{"+": true, "-": true},
	{"*": true, "/": true, "%": true, "div": true, "mod": true},
}

type parser struct {
	toks []token
	pos  int
}

// parse builds the tree for the content of one delimited expression.
func parse(src string) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.conditional()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at %d", t.text, t.pos)
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		if t.kind == tokEOF {
			return t, fmt.Errorf("expected %s, got end of expression", what)
		}
		return t, fmt.Errorf("expected %s at %d, got %q", what, t.pos, t.text)
	}
	return t, nil
}

func (p *parser) conditional() (node, error) {
	cond, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokQuestion {
		return cond, nil
	}
	p.next()
	then, err := p.conditional()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, "':'"); err != nil {
		return nil, err
	}
	els, err := p.conditional()
	if err != nil {
		return nil, err
	}
	return &conditionalNode{cond: cond, then: then, els: els}, nil
}

func (p *parser) binary(level int) (node, error) {
	if level == len(precedence) {
		return p.unary()
	}
	left, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOperator || !precedence[level][t.text] {
			return left, nil
		}
		p.next()
		rightWS := p.peek().ws
		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: t.text, left: left, right: right, opWS: t.ws, rightWS: rightWS}
	}
}

func (p *parser) unary() (node, error) {
	t := p.peek()
	if t.kind == tokOperator {
		switch t.text {
		case "!", "not":
			p.next()
			x, err := p.unary()
			if err != nil {
				return nil, err
			}
			return &unaryNode{op: "not", x: x}, nil
		case "-":
			p.next()
			x, err := p.unary()
			if err != nil {
				return nil, err
			}
			return &unaryNode{op: "-", x: x}, nil
		case "empty":
			p.next()
			x, err := p.unary()
			if err != nil {
				return nil, err
			}
			return &unaryNode{op: "empty", x: x}, nil
		}
	}
	return p.postfix()
}

func (p *parser) postfix() (node, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokDot:
			p.next()
			name, err := p.expect(tokIdent, "property name")
			if err != nil {
				return nil, err
			}
			x = &memberNode{x: x, name: name.text}
		case tokLBracket:
			p.next()
			ws := p.peek().ws
			index, err := p.conditional()
			if err != nil {
				return nil, err
			}
			closing, err := p.expect(tokRBracket, "']'")
			if err != nil {
				return nil, err
			}
			x = &indexNode{x: x, index: index, ws: ws, closeWS: closing.ws}
		case tokLParen:
			call, err := p.call(x)
			if err != nil {
				return nil, err
			}
			x = call
		default:
			return x, nil
		}
	}
}

func (p *parser) call(fn node) (node, error) {
	p.next()
	c := &callNode{fn: fn}
	if t := p.peek(); t.kind == tokRParen {
		p.next()
		c.closeWS = t.ws
		return c, nil
	}
	for {
		c.argWS = append(c.argWS, p.peek().ws)
		arg, err := p.conditional()
		if err != nil {
			return nil, err
		}
		c.args = append(c.args, arg)
		t := p.next()
		switch t.kind {
		case tokComma:
			continue
		case tokRParen:
			c.closeWS = t.ws
			return c, nil
		default:
			return nil, fmt.Errorf("expected ',' or ')' in call at %d", t.pos)
		}
	}
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return &literalNode{kind: literalNumber, raw: t.text}, nil
	case tokString:
		return &literalNode{kind: literalString, raw: t.text, value: unquote(t.text)}, nil
	case tokIdent:
		switch t.text {
		case "true", "false":
			return &literalNode{kind: literalBool, raw: t.text}, nil
		case "null":
			return &literalNode{kind: literalNull, raw: t.text}, nil
		}
		return p.qualifiedName(t), nil
	case tokLParen:
		ws := p.peek().ws
		x, err := p.conditional()
		if err != nil {
			return nil, err
		}
		closing, err := p.expect(tokRParen, "')'")
		if err != nil {
			return nil, err
		}
		return &parenNode{x: x, ws: ws, closeWS: closing.ws}, nil
	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression")
	default:
		return nil, fmt.Errorf("unexpected %q at %d", t.text, t.pos)
	}
}

// qualifiedName reads a prefixed function name such as fn:upper. The colon
// must touch both names, otherwise it belongs to a conditional.
func (p *parser) qualifiedName(first token) node {
	if p.pos+2 < len(p.toks) {
		colon, name, open := p.toks[p.pos], p.toks[p.pos+1], p.toks[p.pos+2]
		if colon.kind == tokColon && colon.ws == "" && name.kind == tokIdent && name.ws == "" && open.kind == tokLParen {
			p.pos += 2
			return &identNode{name: first.text + ":" + name.text}
		}
	}
	return &identNode{name: first.text}
}
