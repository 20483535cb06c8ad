package expression

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// target operators, keyed by the legacy spelling.
var operators = map[string]string{
	"||": "or", "or": "or",
	"&&": "and", "and": "and",
	"==": "=", "eq": "=", "=": "=",
	"!=": "!=", "ne": "!=",
	"<": "<", "lt": "<",
	">": ">", "gt": ">",
	"<=": "<=", "le": "<=",
	">=": ">=", "ge": ">=",
	"+": "+", "-": "-", "*": "*",
	"/": "/", "div": "/",
	"%": "modulo", "mod": "modulo",
}

var feelName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

type emitter struct {
	sb strings.Builder
}

// emit renders n in the target expression language without the leading "=".
func emit(n node) string {
	var e emitter
	e.node(n)
	return e.sb.String()
}

func (e *emitter) node(n node) {
	switch n := n.(type) {
	case *identNode:
		e.sb.WriteString(n.name)
	case *literalNode:
		e.literal(n)
	case *memberNode:
		e.node(n.x)
		e.sb.WriteByte('.')
		e.sb.WriteString(n.name)
	case *indexNode:
		e.index(n)
	case *callNode:
		e.node(n.fn)
		e.sb.WriteByte('(')
		for i, arg := range n.args {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteString(n.argWS[i])
			e.node(arg)
		}
		e.sb.WriteString(n.closeWS)
		e.sb.WriteByte(')')
	case *unaryNode:
		e.unary(n)
	case *binaryNode:
		e.binary(n)
	case *parenNode:
		e.sb.WriteByte('(')
		e.sb.WriteString(n.ws)
		e.node(n.x)
		e.sb.WriteString(n.closeWS)
		e.sb.WriteByte(')')
	case *conditionalNode:
		e.sb.WriteString("if ")
		e.node(n.cond)
		e.sb.WriteString(" then ")
		e.node(n.then)
		e.sb.WriteString(" else ")
		e.node(n.els)
	}
}

func (e *emitter) literal(n *literalNode) {
	switch n.kind {
	case literalString:
		e.sb.WriteString(Quote(n.value))
	case literalNumber:
		if strings.ContainsAny(n.raw, "eE") {
			if d, err := decimal.NewFromString(n.raw); err == nil {
				e.sb.WriteString(d.String())
				return
			}
		}
		e.sb.WriteString(n.raw)
	default:
		e.sb.WriteString(n.raw)
	}
}

// index shifts positions by one because lists are 1-based in the target
// language. String keys become property access.
func (e *emitter) index(n *indexNode) {
	if lit, ok := n.index.(*literalNode); ok {
		switch lit.kind {
		case literalString:
			if feelName.MatchString(lit.value) {
				e.node(n.x)
				e.sb.WriteByte('.')
				e.sb.WriteString(lit.value)
				return
			}
			e.sb.WriteString("get value(")
			e.node(n.x)
			e.sb.WriteString(", ")
			e.sb.WriteString(Quote(lit.value))
			e.sb.WriteByte(')')
			return
		case literalNumber:
			if i, err := strconv.Atoi(lit.raw); err == nil && i < math.MaxInt {
				e.node(n.x)
				e.sb.WriteByte('[')
				e.sb.WriteString(n.ws)
				e.sb.WriteString(strconv.Itoa(i + 1))
				e.sb.WriteString(n.closeWS)
				e.sb.WriteByte(']')
				return
			}
		}
	}
	e.node(n.x)
	e.sb.WriteByte('[')
	e.sb.WriteString(n.ws)
	e.indexOperand(n.index)
	e.sb.WriteString("+1")
	e.sb.WriteString(n.closeWS)
	e.sb.WriteByte(']')
}

func (e *emitter) unary(n *unaryNode) {
	switch n.op {
	case "not":
		e.sb.WriteString("not")
		if _, ok := n.x.(*parenNode); ok {
			e.node(n.x)
			return
		}
		e.sb.WriteByte('(')
		e.node(n.x)
		e.sb.WriteByte(')')
	case "empty":
		e.operand(n.x, true)
		e.sb.WriteString("=null")
	default:
		e.sb.WriteString(n.op)
		e.operand(n.x, true)
	}
}

func (e *emitter) binary(n *binaryNode) {
	op := operators[n.op]
	if op == "modulo" {
		e.sb.WriteString("modulo(")
		e.node(n.left)
		e.sb.WriteString(", ")
		e.node(n.right)
		e.sb.WriteByte(')')
		return
	}

	logical := op == "and" || op == "or"
	compare := comparison(op)
	e.side(n.left, !logical, compare)
	e.sb.WriteString(spaced(n.opWS, logical))
	e.sb.WriteString(op)
	e.sb.WriteString(spaced(n.rightWS, logical))
	e.side(n.right, !logical, compare)
}

// side renders an operand of a binary operator. Comparisons share one
// precedence level in the target language, so a comparison nested in
// another is parenthesized.
func (e *emitter) side(n node, strict, compare bool) {
	if b, ok := n.(*binaryNode); ok && compare && comparison(operators[b.op]) {
		e.sb.WriteByte('(')
		e.node(n)
		e.sb.WriteByte(')')
		return
	}
	e.operand(n, strict)
}

func comparison(op string) bool {
	switch op {
	case "=", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}

// operand renders n and parenthesizes it when the rewrite would otherwise
// change how it binds. An emptiness test turns into a comparison and
// conditionals become keyword expressions. Binary operators keep their
// relative precedence in the target language.
func (e *emitter) operand(n node, strict bool) {
	wrap := false
	switch n := n.(type) {
	case *conditionalNode:
		wrap = true
	case *unaryNode:
		wrap = strict && n.op == "empty"
	}
	if !wrap {
		e.node(n)
		return
	}
	e.sb.WriteByte('(')
	e.node(n)
	e.sb.WriteByte(')')
}

// indexOperand renders a computed index so that "+1" applies to all of it.
func (e *emitter) indexOperand(n node) {
	if b, ok := n.(*binaryNode); ok {
		switch operators[b.op] {
		case "+", "-", "*", "/", "modulo":
			e.node(n)
			return
		}
		e.sb.WriteByte('(')
		e.node(n)
		e.sb.WriteByte(')')
		return
	}
	e.operand(n, true)
}

func spaced(ws string, required bool) string {
	if ws == "" && required {
		return " "
	}
	return ws
}

// Quote renders s as a FEEL string literal.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
