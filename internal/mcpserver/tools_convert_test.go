package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewModel = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:camunda="http://camunda.org/schema/1.0/bpmn" id="defs" targetNamespace="http://bpmn.io/schema/bpmn">
  <bpmn:process id="review" isExecutable="true">
    <bpmn:startEvent id="start" camunda:formKey="embedded:app:start.html" />
    <bpmn:serviceTask id="notify" name="Notify" camunda:type="external" camunda:topic="notify" />
  </bpmn:process>
</bpmn:definitions>
`

func TestConvertTool_Inline(t *testing.T) {
	input := convertInput{Model: modelInput{Content: reviewModel}}
	result, output, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	report := output.Report
	assert.NotEmpty(t, report.ConversionID)
	assert.Equal(t, 4, report.ElementCount)
	assert.Equal(t, 4, report.Returned)
	assert.Equal(t, 2, report.InfoCount)
	assert.Equal(t, 1, report.WarningCount)
	assert.Empty(t, report.StrictFailure)

	assert.Empty(t, output.WrittenTo)
	assert.Contains(t, output.Document, `zeebe:taskDefinition type="notify"`)
	assert.NotContains(t, output.Document, "camunda:topic")

	notify := report.Elements[3]
	assert.Equal(t, "notify", notify.ID)
	assert.Equal(t, "Notify", notify.Name)
	assert.Equal(t, "serviceTask", notify.Type)
	require.Len(t, notify.Messages, 2)
	assert.Equal(t, "info", notify.Messages[0].Severity)
}

func TestConvertTool_OutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "converted.bpmn")
	input := convertInput{Model: modelInput{Content: reviewModel}, Output: outPath}
	result, output, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, outPath, output.WrittenTo)
	assert.Empty(t, output.Document, "document should not be inline when written to file")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "zeebe:taskDefinition")
}

func TestConvertTool_StrictFailureStillReports(t *testing.T) {
	strict := true
	input := convertInput{Model: modelInput{Content: reviewModel}, Strict: &strict}
	result, output, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Contains(t, output.Report.StrictFailure, "strict mode: 1 warning(s)")
	assert.Equal(t, 4, output.Report.ElementCount)
	assert.NotEmpty(t, output.Document)
}

func TestConvertTool_Pagination(t *testing.T) {
	input := convertInput{Model: modelInput{Content: reviewModel}, Offset: 2, Limit: 1}
	_, output, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 4, output.Report.ElementCount)
	assert.Equal(t, 1, output.Report.Returned)
	require.Len(t, output.Report.Elements, 1)
	assert.Equal(t, "start", output.Report.Elements[0].ID)
}

func TestConvertTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input convertInput
	}{
		{"no model", convertInput{}},
		{"invalid xml", convertInput{Model: modelInput{Content: "not xml"}}},
		{"invalid severity", convertInput{Model: modelInput{Content: reviewModel}, MinSeverity: "loud"}},
		{"unwritable output", convertInput{Model: modelInput{Content: reviewModel}, Output: "/nonexistent/dir/out.bpmn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
