package expression

import (
	"fmt"
	"strings"
)

// segment is a piece of a template: either literal text or the content of
// one ${...} or #{...} expression.
type segment struct {
	text string
	expr bool
}

// split breaks s into segments. A backslash before a delimiter escapes it.
func split(s string) ([]segment, error) {
	var (
		segs []segment
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+2 < len(s) && isDelimiter(s[i+1]) && s[i+2] == '{' {
			lit.WriteString(s[i+1 : i+3])
			i += 2
			continue
		}
		if isDelimiter(c) && i+1 < len(s) && s[i+1] == '{' {
			end, err := closingBrace(s, i+2)
			if err != nil {
				return nil, err
			}
			flush()
			segs = append(segs, segment{text: s[i+2 : end], expr: true})
			i = end
			continue
		}
		lit.WriteByte(c)
	}
	flush()
	return segs, nil
}

func isDelimiter(c byte) bool {
	return c == '$' || c == '#'
}

// closingBrace returns the index of the brace ending the expression that
// starts at from, skipping braces inside string literals.
func closingBrace(s string, from int) (int, error) {
	var quote byte
	for i := from; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '}':
			return i, nil
		}
	}
	return 0, fmt.Errorf("unterminated expression starting at %d", from-2)
}

func hasExpression(segs []segment) bool {
	for _, seg := range segs {
		if seg.expr {
			return true
		}
	}
	return false
}

// render converts every expression segment and joins the template into a
// single target expression, prefixed with "=".
func render(segs []segment) (string, error) {
	if len(segs) == 1 {
		n, err := parse(segs[0].text)
		if err != nil {
			return "", err
		}
		return "=" + emit(n), nil
	}

	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		if !seg.expr {
			parts = append(parts, Quote(seg.text))
			continue
		}
		n, err := parse(seg.text)
		if err != nil {
			return "", err
		}
		var e emitter
		e.concatOperand(n)
		parts = append(parts, e.sb.String())
	}
	return "=" + strings.Join(parts, " + "), nil
}

// concatOperand renders n as one side of a string concatenation.
func (e *emitter) concatOperand(n node) {
	switch n := n.(type) {
	case *binaryNode, *conditionalNode:
		e.sb.WriteByte('(')
		e.node(n)
		e.sb.WriteByte(')')
	default:
		e.operand(n, true)
	}
}
