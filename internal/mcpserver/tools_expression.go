package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/bpmnconv/expression"
)

type expressionInput struct {
	Expression string `json:"expression" jsonschema:"A JUEL expression\\, for example ${amount > 100}"`
}

type expressionOutput struct {
	Original            string `json:"original"`
	Transformed         string `json:"transformed"`
	Converted           bool   `json:"converted"`
	HasExecution        bool   `json:"has_execution"`
	HasMethodInvocation bool   `json:"has_method_invocation"`
}

func handleTransformExpression(_ context.Context, _ *mcp.CallToolRequest, input expressionInput) (*mcp.CallToolResult, expressionOutput, error) {
	if input.Expression == "" {
		return errResult(fmt.Errorf("expression is required")), expressionOutput{}, nil
	}
	res := expression.Transform(input.Expression)
	return nil, expressionOutput{
		Original:            input.Expression,
		Transformed:         res.NewExpression,
		Converted:           res.Converted(),
		HasExecution:        res.HasExecution,
		HasMethodInvocation: res.HasMethodInvocation,
	}, nil
}
