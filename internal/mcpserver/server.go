// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes bpmnconv capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/bpmnconv"
	"github.com/erraggy/bpmnconv/converter"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/erraggy/bpmnconv/properties"
)

const serverInstructions = `bpmnconv MCP server: converts Camunda 7 BPMN models to Zeebe and explains what changed.

Configuration: All defaults are configurable via BPMNCONV_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- BPMNCONV_CONFIG: converter settings file (YAML, TOML or JSON)
- BPMNCONV_STRICT (default: false): fail conversions that produce warnings
- BPMNCONV_MIN_SEVERITY (default: info): hide messages below this severity
- BPMNCONV_RESULT_LIMIT (default: 100): default number of element results returned
- BPMNCONV_CACHE_ENABLED (default: true): cache model files and downloads
- BPMNCONV_DEFAULT_JOB_TYPE, BPMNCONV_SCRIPT_JOB_TYPE, BPMNCONV_PLATFORM_VERSION and the other converter settings

Severities: info needs no action, task is work outside the model (such as a job worker), review is an automatic translation to check, warning could not be converted.

Workflow: use check first to see the report, then convert to get the converted XML. Use transform_expression to translate a single JUEL expression to FEEL.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		sourceCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "bpmnconv", Version: bpmnconv.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert a Camunda 7 BPMN model to a Zeebe model. Returns the converted XML and one result per process element with info, task, review and warning messages. Use output to write the model to a file instead of returning it inline. Use offset/limit to page through element results.",
	}, handleConvert)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check",
		Description: "Check a Camunda 7 BPMN model without converting it. Returns one result per process element describing what a conversion would change and what cannot be converted. Use min_severity=warning to see only blockers. Use offset/limit to page through element results.",
	}, handleCheck)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "transform_expression",
		Description: "Translate one JUEL expression such as ${order.total > 100} to FEEL. Reports whether the expression accesses the execution object or invokes methods, which FEEL cannot do.",
	}, handleTransformExpression)
}

// conversionInput holds the settings shared by convert and check.
type conversionInput struct {
	Model          modelInput
	MinSeverity    string
	Strict         *bool
	AppendElements bool
	Exclude        []string
	Offset         int
	Limit          int
}

// newConverter builds a converter from the server defaults and the
// per-call settings.
func newConverter(in conversionInput) (*converter.Converter, error) {
	props, err := properties.Load(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	if len(in.Exclude) > 0 || in.AppendElements {
		pc := props.Config()
		pc.Exclusions = append(pc.Exclusions, in.Exclude...)
		pc.AppendElements = pc.AppendElements || in.AppendElements
		if props, err = properties.New(pc); err != nil {
			return nil, err
		}
	}

	minimum := cfg.MinSeverity
	if in.MinSeverity != "" {
		if minimum, err = severity.Parse(in.MinSeverity); err != nil {
			return nil, err
		}
	}
	strict := cfg.Strict
	if in.Strict != nil {
		strict = *in.Strict
	}

	return converter.New(
		converter.WithProperties(props),
		converter.WithMinimumSeverity(minimum),
		converter.WithStrictMode(strict),
		converter.WithLogger(converter.NewSlogAdapter(slog.Default())),
	)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
