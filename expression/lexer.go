package expression

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokOperator
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokDot
	tokComma
	tokColon
	tokQuestion
)

// token is one lexical unit. ws holds the whitespace that preceded it so the
// emitter can keep the author's spacing around operators.
type token struct {
	kind tokenKind
	text string
	ws   string
	pos  int
}

// wordOperators are the alphabetic operators of the legacy grammar.
var wordOperators = map[string]bool{
	"and": true, "or": true, "not": true, "empty": true,
	"eq": true, "ne": true, "lt": true, "gt": true, "le": true, "ge": true,
	"div": true, "mod": true, "instanceof": true,
}

// lex splits src into tokens. The final token is always tokEOF, carrying any
// trailing whitespace.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for {
		start := i
		for i < len(src) && isSpace(src[i]) {
			i++
		}
		ws := src[start:i]
		if i >= len(src) {
			toks = append(toks, token{kind: tokEOF, ws: ws, pos: i})
			return toks, nil
		}

		c := src[i]
		pos := i
		switch {
		case c == '"' || c == '\'':
			end, err := scanString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokString, text: src[i:end], ws: ws, pos: pos})
			i = end
		case c >= '0' && c <= '9':
			end := scanNumber(src, i)
			toks = append(toks, token{kind: tokNumber, text: src[i:end], ws: ws, pos: pos})
			i = end
		case isIdentStart(src, i):
			end := scanIdent(src, i)
			word := src[i:end]
			kind := tokIdent
			if wordOperators[word] {
				kind = tokOperator
			}
			toks = append(toks, token{kind: kind, text: word, ws: ws, pos: pos})
			i = end
		default:
			kind, text, err := scanPunct(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: kind, text: text, ws: ws, pos: pos})
			i += len(text)
		}
	}
}

func scanPunct(src string, i int) (tokenKind, string, error) {
	two := ""
	if i+1 < len(src) {
		two = src[i : i+2]
	}
	switch two {
	case "==", "!=", "<=", ">=", "&&", "||":
		return tokOperator, two, nil
	}
	switch c := src[i]; c {
	case '(':
		return tokLParen, "(", nil
	case ')':
		return tokRParen, ")", nil
	case '[':
		return tokLBracket, "[", nil
	case ']':
		return tokRBracket, "]", nil
	case '.':
		return tokDot, ".", nil
	case ',':
		return tokComma, ",", nil
	case ':':
		return tokColon, ":", nil
	case '?':
		return tokQuestion, "?", nil
	case '<', '>', '=', '!', '+', '-', '*', '/', '%':
		return tokOperator, string(c), nil
	default:
		return tokEOF, "", fmt.Errorf("unexpected character %q at %d", c, i)
	}
}

func scanString(src string, i int) (int, error) {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated string starting at %d", i)
}

func scanNumber(src string, i int) int {
	j := i
	for j < len(src) && isDigit(src[j]) {
		j++
	}
	if j+1 < len(src) && src[j] == '.' && isDigit(src[j+1]) {
		j++
		for j < len(src) && isDigit(src[j]) {
			j++
		}
	}
	if j < len(src) && (src[j] == 'e' || src[j] == 'E') {
		k := j + 1
		if k < len(src) && (src[k] == '+' || src[k] == '-') {
			k++
		}
		if k < len(src) && isDigit(src[k]) {
			for k < len(src) && isDigit(src[k]) {
				k++
			}
			j = k
		}
	}
	return j
}

func scanIdent(src string, i int) int {
	for j, r := range src[i:] {
		if !(r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return i + j
		}
	}
	return len(src)
}

func isIdentStart(src string, i int) bool {
	r, _ := utf8.DecodeRuneInString(src[i:])
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// unquote decodes a string literal token. Only backslash escapes of the
// quote characters and of the backslash itself are recognized; any other
// backslash is kept.
func unquote(raw string) string {
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			switch body[i+1] {
			case '\'', '"', '\\':
				i++
			}
		}
		sb.WriteByte(body[i])
	}
	return sb.String()
}
