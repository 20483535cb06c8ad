package expression

// Result is the outcome of transforming one expression string.
type Result struct {
	// NewExpression is the target expression, or the input unchanged when it
	// holds no delimited expression or could not be parsed
	NewExpression string `json:"newExpression"`
	// HasExecution is true when the input refers to the execution object
	HasExecution bool `json:"hasExecution"`
	// HasMethodInvocation is true when the input calls a method on an object
	HasMethodInvocation bool `json:"hasMethodInvocation"`

	converted bool
}

// Converted reports whether the input held delimited expressions that were
// parsed and rewritten.
func (r Result) Converted() bool {
	return r.converted
}

// Transform rewrites a legacy expression into the target expression
// language. Text without ${...} or #{...} is returned unchanged, as is any
// expression outside the supported grammar.
func Transform(text string) Result {
	res := Result{
		NewExpression:       text,
		HasExecution:        hasExecution(text),
		HasMethodInvocation: hasMethodInvocation(text),
	}
	segs, err := split(text)
	if err != nil || !hasExpression(segs) {
		return res
	}
	out, err := render(segs)
	if err != nil {
		return res
	}
	res.NewExpression = out
	res.converted = true
	return res
}

// IsExpression reports whether text contains at least one delimited
// expression.
func IsExpression(text string) bool {
	segs, err := split(text)
	return err == nil && hasExpression(segs)
}

// IsTraversing reports whether text is exactly one delimited expression made
// of names, property access and literal indexes, such as ${order.items[0]}.
func IsTraversing(text string) bool {
	segs, err := split(text)
	if err != nil || len(segs) != 1 || !segs[0].expr {
		return false
	}
	n, err := parse(segs[0].text)
	if err != nil {
		return false
	}
	return traversing(n)
}

func traversing(n node) bool {
	switch n := n.(type) {
	case *identNode:
		return true
	case *memberNode:
		return traversing(n.x)
	case *indexNode:
		lit, ok := n.index.(*literalNode)
		return ok && (lit.kind == literalString || lit.kind == literalNumber) && traversing(n.x)
	default:
		return false
	}
}
