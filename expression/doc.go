// Package expression rewrites legacy engine expressions into FEEL.
//
// Legacy expressions are templates. Text inside ${...} or #{...} is parsed
// with a small expression grammar: names, property access, indexing, calls,
// boolean and relational operators (in symbol and word form), arithmetic,
// negation, the empty operator and the conditional operator. The parsed tree
// is emitted as a FEEL expression, prefixed with "=".
//
//	expression.Transform("${not empty order.items}").NewExpression
//	// =not(order.items=null)
//
// Literal text around expressions becomes string concatenation:
//
//	expression.Transform("hello-${name}").NewExpression
//	// ="hello-" + name
//
// Lists are 1-based in FEEL, so literal indexes are shifted by one and
// computed indexes get "+1" appended. String keys become property access.
//
// Transform never fails. Text without delimiters, and expressions outside
// the grammar, come back unchanged; Result.Converted tells the two outcomes
// apart from a successful rewrite. HasExecution and HasMethodInvocation flag
// constructs that have no FEEL counterpart. They are computed on the raw text
// so that callers can flag them whether or not the rewrite succeeded.
package expression
