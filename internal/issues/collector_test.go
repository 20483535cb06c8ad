package issues

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/bpmnconv/bpmnerrors"
	"github.com/erraggy/bpmnconv/internal/severity"
)

func TestCollectorRegister(t *testing.T) {
	c := NewCollector()

	first, err := c.Register("Task_1", "Charge card", "serviceTask")
	require.NoError(t, err)
	first.Add(Message{Severity: severity.SeverityInfo, Message: "first"})

	_, err = c.Register("Task_1", "Other", "userTask")
	require.Error(t, err)
	assert.True(t, errors.Is(err, bpmnerrors.ErrDuplicateElement))

	var dup *bpmnerrors.DuplicateIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "Task_1", dup.ID)
	assert.Equal(t, "userTask", dup.ElementType)
	assert.Equal(t, "serviceTask", dup.ExistingType)

	got, ok := c.Get("Task_1")
	require.True(t, ok)
	assert.Equal(t, "Charge card", got.ElementName, "first registration must win")
	assert.Equal(t, "serviceTask", got.ElementType)
	assert.Len(t, got.Messages, 1)
	assert.Equal(t, 1, c.Len())
}

func TestCollectorOrdering(t *testing.T) {
	c := NewCollector()
	for _, id := range []string{"Process_1", "Gateway_9", "Activity_2"} {
		_, err := c.Register(id, "", "task")
		require.NoError(t, err)
	}

	results := c.Results()
	require.Len(t, results, 3)
	assert.Equal(t, "Process_1", results[0].ElementID)
	assert.Equal(t, "Gateway_9", results[1].ElementID)
	assert.Equal(t, "Activity_2", results[2].ElementID)
}

func TestCollectorResultsAreCopies(t *testing.T) {
	c := NewCollector()
	r, err := c.Register("Process_1", "", "process")
	require.NoError(t, err)
	r.Add(Message{Severity: severity.SeverityInfo, Message: "a"})

	results := c.Results()
	results[0].Messages[0].Message = "changed"

	got, _ := c.Get("Process_1")
	assert.Equal(t, "a", got.Messages[0].Message)
}
