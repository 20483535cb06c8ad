package mcpserver

import (
	"fmt"
	"math"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/bpmnconv/bpmnerrors"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		items  []int
		offset int
		limit  int
		want   []int
	}{
		{"default limit returns all when under 100", items, 0, 0, []int{0, 1, 2, 3, 4}},
		{"explicit limit", items, 0, 2, []int{0, 1}},
		{"offset only", items, 2, 0, []int{2, 3, 4}},
		{"offset and limit", items, 1, 2, []int{1, 2}},
		{"offset at end", items, 4, 2, []int{4}},
		{"offset beyond end", items, 5, 2, nil},
		{"negative offset", items, -1, 2, nil},
		{"limit exceeds remaining", items, 3, 10, []int{3, 4}},
		{"nil slice", nil, 0, 2, nil},
		{"negative limit treated as default", items, 0, -1, []int{0, 1, 2, 3, 4}},
		{"overflow limit", items, 1, math.MaxInt, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestPaginate_Caps(t *testing.T) {
	items := make([]int, 1500)
	for i := range items {
		items[i] = i
	}
	assert.Len(t, paginate(items, 0, 0), cfg.ResultLimit)
	assert.Len(t, paginate(items, 0, 1500), cfg.MaxLimit, "limit should be capped at MaxLimit")
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error returns empty string", nil, ""},
		{"strips absolute path", fmt.Errorf("cannot open /home/user/models/order.bpmn: no such file"), "cannot open <path>: no such file"},
		{"preserves non-path content", fmt.Errorf("invalid XML at line 5"), "invalid XML at line 5"},
		{"strips multiple paths", fmt.Errorf("copy /tmp/a.bpmn to /tmp/b.bpmn failed"), "copy <path> to <path> failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestNewConverter(t *testing.T) {
	strict := true
	_, err := newConverter(conversionInput{Strict: &strict, MinSeverity: "review", Exclude: []string{"@camunda:topic"}, AppendElements: true})
	require.NoError(t, err)

	_, err = newConverter(conversionInput{MinSeverity: "loud"})
	assert.Error(t, err)
}

func TestNewConverter_BadConfigFile(t *testing.T) {
	saved := cfg.ConfigFile
	t.Cleanup(func() { cfg.ConfigFile = saved })
	cfg.ConfigFile = "testdata/config.ini"

	_, err := newConverter(conversionInput{})
	assert.ErrorIs(t, err, bpmnerrors.ErrConfig)
}

func TestRegisterAllTools(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "dev"}, nil)
	assert.NotPanics(t, func() { registerAllTools(server) })
}
