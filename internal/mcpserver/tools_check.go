package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type checkInput struct {
	Model       modelInput `json:"model"                  jsonschema:"The BPMN model to check"`
	MinSeverity string     `json:"min_severity,omitempty" jsonschema:"Hide messages below this severity: info\\, task\\, review or warning"`
	Strict      *bool      `json:"strict,omitempty"       jsonschema:"Fail when any warning is reported (default from BPMNCONV_STRICT)"`
	Exclude     []string   `json:"exclude,omitempty"      jsonschema:"Names of conversion rules to skip, such as @camunda:topic"`
	Offset      int        `json:"offset,omitempty"       jsonschema:"Number of element results to skip"`
	Limit       int        `json:"limit,omitempty"        jsonschema:"Maximum number of element results to return"`
}

func (in checkInput) settings() conversionInput {
	return conversionInput{
		Model:       in.Model,
		MinSeverity: in.MinSeverity,
		Strict:      in.Strict,
		Exclude:     in.Exclude,
		Offset:      in.Offset,
		Limit:       in.Limit,
	}
}

func handleCheck(ctx context.Context, _ *mcp.CallToolRequest, input checkInput) (*mcp.CallToolResult, reportOutput, error) {
	settings := input.settings()
	doc, c, err := prepare(ctx, settings)
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}
	result, err := c.Check(doc)
	report, err := buildReport(result, err, settings)
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}
	return nil, report, nil
}
