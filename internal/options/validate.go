// Package options provides shared utilities for option validation across packages.
package options

import (
	"fmt"
	"strings"
)

// ExactlyOne returns an error unless exactly one source is set. names label
// the sources in the error message and are matched to set by position.
func ExactlyOne(names []string, set ...bool) error {
	count := 0
	for _, s := range set {
		if s {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return fmt.Errorf("exactly one of %s must be provided (got %d)", list(names), count)
}

// list joins names as "a, b, or c".
func list(names []string) string {
	switch len(names) {
	case 0:
		return "the inputs"
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}
