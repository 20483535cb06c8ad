package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/bpmnconv/bpmnerrors"
	"github.com/erraggy/bpmnconv/converter"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/internal/fileutil"
)

type convertInput struct {
	Model          modelInput `json:"model"                     jsonschema:"The BPMN model to convert"`
	Output         string     `json:"output,omitempty"          jsonschema:"File path to write the converted model. If omitted the model is returned inline."`
	MinSeverity    string     `json:"min_severity,omitempty"    jsonschema:"Hide messages below this severity: info\\, task\\, review or warning"`
	Strict         *bool      `json:"strict,omitempty"          jsonschema:"Fail when any warning is reported (default from BPMNCONV_STRICT)"`
	AppendElements bool       `json:"append_elements,omitempty" jsonschema:"Write the messages into the model as conversion:message elements"`
	Exclude        []string   `json:"exclude,omitempty"         jsonschema:"Names of conversion rules to skip, such as @camunda:topic"`
	Offset         int        `json:"offset,omitempty"          jsonschema:"Number of element results to skip"`
	Limit          int        `json:"limit,omitempty"           jsonschema:"Maximum number of element results to return"`
}

func (in convertInput) settings() conversionInput {
	return conversionInput{
		Model:          in.Model,
		MinSeverity:    in.MinSeverity,
		Strict:         in.Strict,
		AppendElements: in.AppendElements,
		Exclude:        in.Exclude,
		Offset:         in.Offset,
		Limit:          in.Limit,
	}
}

type elementMessage struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Link     string `json:"link,omitempty"`
}

type elementResult struct {
	ID       string           `json:"id"`
	Name     string           `json:"name,omitempty"`
	Type     string           `json:"type"`
	Path     string           `json:"path,omitempty"`
	Messages []elementMessage `json:"messages,omitempty"`
}

// reportOutput is the part of the output shared by convert and check.
type reportOutput struct {
	ConversionID  string          `json:"conversion_id"`
	Success       bool            `json:"success"`
	InfoCount     int             `json:"info_count"`
	TaskCount     int             `json:"task_count"`
	ReviewCount   int             `json:"review_count"`
	WarningCount  int             `json:"warning_count"`
	ElementCount  int             `json:"element_count"`
	Returned      int             `json:"returned"`
	StrictFailure string          `json:"strict_failure,omitempty"`
	Elements      []elementResult `json:"elements,omitempty"`
}

type convertOutput struct {
	Report    reportOutput `json:"report"`
	WrittenTo string       `json:"written_to,omitempty"`
	Document  string       `json:"document,omitempty"`
}

func handleConvert(ctx context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
	settings := input.settings()
	doc, c, err := prepare(ctx, settings)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	result, err := c.Convert(doc)
	report, err := buildReport(result, err, settings)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}
	output := convertOutput{Report: report}

	data, err := result.Document.Bytes()
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}
	if input.Output != "" {
		if err := os.WriteFile(input.Output, data, fileutil.OwnerReadWrite); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), convertOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}

// prepare resolves and parses the model and builds the converter.
func prepare(ctx context.Context, in conversionInput) (*dom.Document, *converter.Converter, error) {
	src, err := in.Model.resolve(ctx)
	if err != nil {
		return nil, nil, err
	}
	doc, err := dom.Parse(src.data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", src.name, err)
	}
	c, err := newConverter(in)
	if err != nil {
		return nil, nil, err
	}
	return doc, c, nil
}

// buildReport turns a conversion outcome into tool output. A strict mode
// failure still reports the results.
func buildReport(result *converter.ConversionResult, err error, in conversionInput) (reportOutput, error) {
	var strict string
	if err != nil {
		if result == nil || !errors.Is(err, bpmnerrors.ErrConversion) {
			return reportOutput{}, err
		}
		strict = err.Error()
	}

	out := reportOutput{
		ConversionID:  result.ConversionID,
		Success:       result.Success,
		InfoCount:     result.InfoCount,
		TaskCount:     result.TaskCount,
		ReviewCount:   result.ReviewCount,
		WarningCount:  result.WarningCount,
		ElementCount:  len(result.Results),
		StrictFailure: strict,
	}
	page := paginate(result.Results, in.Offset, in.Limit)
	out.Returned = len(page)
	out.Elements = makeSlice[elementResult](len(page))
	for _, r := range page {
		er := elementResult{ID: r.ElementID, Name: r.ElementName, Type: r.ElementType, Path: r.Path}
		er.Messages = makeSlice[elementMessage](len(r.Messages))
		for _, m := range r.Messages {
			er.Messages = append(er.Messages, elementMessage{Severity: m.Severity.String(), Message: m.Message, Link: m.Link})
		}
		out.Elements = append(out.Elements, er)
	}
	return out, nil
}
