package expression

import (
	"regexp"
	"strings"
)

var (
	executionAccess  = regexp.MustCompile(`\bexecution\b`)
	methodInvocation = regexp.MustCompile(`[\p{L}\p{N}_$\])]\s*\.\s*[\p{L}_$][\p{L}\p{N}_$]*\s*\(`)
)

// hasExecution reports whether text refers to the execution object of the
// legacy engine.
func hasExecution(text string) bool {
	return executionAccess.MatchString(blankStrings(text))
}

// hasMethodInvocation reports whether text calls a method on an object.
func hasMethodInvocation(text string) bool {
	return methodInvocation.MatchString(blankStrings(text))
}

// blankStrings drops the content of quoted strings so that string contents
// never trigger detection. Quotes outside of ${...} are plain text and left
// alone.
func blankStrings(text string) string {
	if !strings.ContainsAny(text, `"'`) {
		return text
	}
	var sb strings.Builder
	var quote byte
	depth := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
				sb.WriteByte(c)
			}
			continue
		case isDelimiter(c) && i+1 < len(text) && text[i+1] == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case (c == '"' || c == '\'') && depth > 0:
			quote = c
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
