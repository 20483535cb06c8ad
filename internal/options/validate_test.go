package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactlyOne(t *testing.T) {
	names := []string{"file", "url", "content"}
	assert.NoError(t, ExactlyOne(names, false, true, false))

	err := ExactlyOne(names, false, false, false)
	require.Error(t, err)
	assert.Equal(t, "exactly one of file, url, or content must be provided (got 0)", err.Error())

	err = ExactlyOne(names, true, false, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(got 2)")
}

func TestList(t *testing.T) {
	assert.Equal(t, "the inputs", list(nil))
	assert.Equal(t, "file", list([]string{"file"}))
	assert.Equal(t, "file or url", list([]string{"file", "url"}))
	assert.Equal(t, "a, b, or c", list([]string{"a", "b", "c"}))
}
