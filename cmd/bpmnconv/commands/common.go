// Package commands provides CLI command handlers for bpmnconv.
package commands

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/erraggy/bpmnconv/converter"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/erraggy/bpmnconv/properties"
	"github.com/erraggy/bpmnconv/report"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Streams used by the handlers. Tests replace them.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// ValidateOutputFormat validates a report format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	_, err := report.ParseFormat(format)
	return err
}

// ValidateOutputPath checks that outputPath does not overwrite one of the inputs.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output %s would overwrite input %s", outputPath, inputPath)
		}
	}
	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// FormatModelPath returns a display-friendly path for a model.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatModelPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// NewLogger builds the slog logger the commands log to. Logs always go to w,
// never to the document output.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log-level '%s'. Valid levels: debug, info, warn, error", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case LogFormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log-format '%s'. Valid formats: %s, %s", format, LogFormatText, LogFormatJSON)
	}
}

// listFlag collects the values of a repeatable flag. Comma separated values
// are split.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// ConversionFlags are the flags shared by convert and check.
type ConversionFlags struct {
	Config         string
	ScriptHeader   string
	Exclude        listFlag
	Format         string
	MinSeverity    string
	Strict         bool
	Parallel       int
	AppendElements bool
	Quiet          bool
	OrderBy        string
	LogLevel       string
	LogFormat      string
}

func addConversionFlags(fs *flag.FlagSet, flags *ConversionFlags) {
	fs.StringVar(&flags.Config, "config", "", "converter settings file (.yaml, .yml, .toml or .json) (default: ~/.config/bpmnconv/config.yaml if present)")
	fs.StringVar(&flags.ScriptHeader, "script-header", "", "task header that receives inline scripts (default: \"script\")")
	fs.Var(&flags.Exclude, "exclude", "skip the conversion rule with this name, such as @camunda:topic or startEvent@camunda:formKey (repeatable, comma separated)")
	fs.StringVar(&flags.Format, "format", string(report.FormatText), "report format: text, json, yaml or csv")
	fs.StringVar(&flags.MinSeverity, "min-severity", severity.SeverityInfo.String(), "hide messages below this severity: info, task, review or warning")
	fs.BoolVar(&flags.Strict, "strict", false, "fail documents that produce any warning")
	fs.IntVar(&flags.Parallel, "parallel", 0, "number of documents converted at once (default: number of CPUs)")
	fs.BoolVar(&flags.AppendElements, "append-elements", false, "write every message into the model as a conversion:message element")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no report, only errors")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no report, only errors")
	fs.StringVar(&flags.OrderBy, "order", "document", "report order: document or severity")
	fs.StringVar(&flags.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.StringVar(&flags.LogFormat, "log-format", LogFormatText, "log format: text or json")
}

// validate checks the flag values that do not need a converter.
func (f *ConversionFlags) validate() error {
	if err := ValidateOutputFormat(f.Format); err != nil {
		return err
	}
	if f.OrderBy != "document" && f.OrderBy != "severity" {
		return fmt.Errorf("invalid order '%s'. Valid orders: document, severity", f.OrderBy)
	}
	if f.Parallel < 0 {
		return fmt.Errorf("parallel must not be negative")
	}
	return nil
}

// reportOptions returns the report options for document.
func (f *ConversionFlags) reportOptions(document string, w io.Writer) report.Options {
	opts := report.Options{Document: document, Color: isTerminal(w)}
	if f.OrderBy == "severity" {
		opts.Order = report.SeverityOrder
	}
	return opts
}

// newConverter loads the properties, applies the flag overrides and builds
// the converter.
func (f *ConversionFlags) newConverter() (*converter.Converter, converter.Logger, error) {
	logger, err := NewLogger(stderr, f.LogLevel, f.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	props, err := properties.Load(f.Config)
	if err != nil {
		return nil, nil, err
	}
	if f.ScriptHeader != "" || len(f.Exclude) > 0 || f.AppendElements {
		cfg := props.Config()
		if f.ScriptHeader != "" {
			cfg.ScriptHeader = f.ScriptHeader
		}
		cfg.Exclusions = append(cfg.Exclusions, f.Exclude...)
		cfg.AppendElements = cfg.AppendElements || f.AppendElements
		if props, err = properties.New(cfg); err != nil {
			return nil, nil, err
		}
	}
	minimum, err := severity.Parse(f.MinSeverity)
	if err != nil {
		return nil, nil, err
	}

	adapter := converter.NewSlogAdapter(logger)
	c, err := converter.New(
		converter.WithProperties(props),
		converter.WithMinimumSeverity(minimum),
		converter.WithStrictMode(f.Strict),
		converter.WithLogger(adapter),
		converter.WithNotifier(converter.LogNotifier{Logger: adapter}),
	)
	if err != nil {
		return nil, nil, err
	}
	return c, adapter, nil
}

// isTerminal reports whether w is a terminal, so text reports get colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
