package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTool(t *testing.T) {
	result, report, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{Model: modelInput{Content: reviewModel}})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 4, report.ElementCount)
	assert.Equal(t, 1, report.WarningCount)
	start := report.Elements[2]
	assert.Equal(t, "start", start.ID)
	require.Len(t, start.Messages, 1)
	assert.Equal(t, "warning", start.Messages[0].Severity)
	assert.Contains(t, start.Messages[0].Message, "formKey")
}

func TestCheckTool_File(t *testing.T) {
	sourceCache.reset()
	_, report, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{Model: modelInput{File: "testdata/order.bpmn"}})
	require.NoError(t, err)
	assert.Equal(t, 10, report.ElementCount)
	assert.Equal(t, 8, report.InfoCount)
	assert.Equal(t, 1, report.TaskCount)
	assert.Equal(t, 4, report.ReviewCount)
}

func TestCheckTool_MinSeverity(t *testing.T) {
	input := checkInput{Model: modelInput{Content: reviewModel}, MinSeverity: "warning"}
	_, report, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Empty(t, report.Elements[3].Messages, "info messages are hidden")
	assert.Len(t, report.Elements[2].Messages, 1)
}

func TestCheckTool_Exclude(t *testing.T) {
	input := checkInput{Model: modelInput{Content: reviewModel}, Exclude: []string{"@camunda:topic"}}
	_, report, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, 1, report.WarningCount)
	assert.Equal(t, 1, report.InfoCount, "excluded attributes get no message")

	input.Exclude = []string{"topic"}
	result, _, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestCheckTool_Error(t *testing.T) {
	result, _, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, checkInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
