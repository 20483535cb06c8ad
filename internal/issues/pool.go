package issues

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// getStringBuilder retrieves a builder from the pool and resets it.
func getStringBuilder() *strings.Builder {
	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// putStringBuilder returns a builder to the pool.
func putStringBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	stringBuilderPool.Put(sb)
}

// FormatPath joins element ids into a slash separated path.
// Empty segments are skipped.
func FormatPath(segments ...string) string {
	switch len(segments) {
	case 0:
		return ""
	case 1:
		return segments[0]
	}

	sb := getStringBuilder()
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(seg)
	}
	result := sb.String()
	putStringBuilder(sb)
	return result
}
