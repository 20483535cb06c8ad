package commands

import (
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestHandleExpression_Text(t *testing.T) {
	out, errOut := captureStreams(t, "")
	require.NoError(t, HandleExpression([]string{"${x gt 5}"}))
	assert.Equal(t, "=x > 5\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestHandleExpression_JoinsArguments(t *testing.T) {
	out, _ := captureStreams(t, "")
	require.NoError(t, HandleExpression([]string{"${x", "&&", "y}"}))
	assert.Equal(t, "=x and y\n", out.String())
}

func TestHandleExpression_Notes(t *testing.T) {
	out, errOut := captureStreams(t, "")
	require.NoError(t, HandleExpression([]string{"${execution.getVariable('amount') > 5}"}))
	assert.Equal(t, "=execution.getVariable(\"amount\") > 5\n", out.String())
	assert.Contains(t, errOut.String(), "execution object")
	assert.Contains(t, errOut.String(), "invokes methods")
}

func TestHandleExpression_JSON(t *testing.T) {
	out, _ := captureStreams(t, "")
	require.NoError(t, HandleExpression([]string{"--format", "json", "static"}))

	var got ExpressionOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, ExpressionOutput{Original: "static", Transformed: "static"}, got)
}

func TestHandleExpression_YAML(t *testing.T) {
	out, _ := captureStreams(t, "")
	require.NoError(t, HandleExpression([]string{"--format", "yaml", "${a}"}))

	var got ExpressionOutput
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "=a", got.Transformed)
	assert.True(t, got.Converted)
}

func TestHandleExpression_Errors(t *testing.T) {
	captureStreams(t, "")
	assert.Error(t, HandleExpression(nil))
	assert.Error(t, HandleExpression([]string{"--format", "csv", "${a}"}))
}
