package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	json "github.com/json-iterator/go"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/bpmnconv/expression"
	"github.com/erraggy/bpmnconv/internal/cliutil"
	"github.com/erraggy/bpmnconv/report"
)

// ExpressionFlags contains flags for the expression command
type ExpressionFlags struct {
	Format string
}

// ExpressionOutput is the structured output of the expression command.
type ExpressionOutput struct {
	Original            string `json:"original" yaml:"original"`
	Transformed         string `json:"transformed" yaml:"transformed"`
	Converted           bool   `json:"converted" yaml:"converted"`
	HasExecution        bool   `json:"hasExecution" yaml:"hasExecution"`
	HasMethodInvocation bool   `json:"hasMethodInvocation" yaml:"hasMethodInvocation"`
}

// SetupExpressionFlags creates and configures a FlagSet for the expression command.
// Returns the FlagSet and an ExpressionFlags struct with bound flag variables.
func SetupExpressionFlags() (*flag.FlagSet, *ExpressionFlags) {
	fs := flag.NewFlagSet("expression", flag.ContinueOnError)
	flags := &ExpressionFlags{}

	fs.StringVar(&flags.Format, "format", string(report.FormatText), "output format: text, json or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: bpmnconv expression [flags] <expression>...\n\n")
		cliutil.Writef(fs.Output(), "Translate a JUEL expression to FEEL. Several arguments are joined with spaces.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  bpmnconv expression '${amount gt 100}'\n")
		cliutil.Writef(fs.Output(), "  bpmnconv expression --format json '${execution.getVariable(\"x\")}'\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Text without ${...} or #{...} is returned unchanged\n")
		cliutil.Writef(fs.Output(), "  - Access to the execution object and method calls have no FEEL equivalent and are reported\n")
	}

	return fs, flags
}

// HandleExpression executes the expression command
func HandleExpression(args []string) error {
	fs, flags := SetupExpressionFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("expression command requires an expression")
	}

	in := strings.Join(fs.Args(), " ")
	res := expression.Transform(in)
	out := ExpressionOutput{
		Original:            in,
		Transformed:         res.NewExpression,
		Converted:           res.Converted(),
		HasExecution:        res.HasExecution,
		HasMethodInvocation: res.HasMethodInvocation,
	}

	switch report.Format(strings.ToLower(flags.Format)) {
	case report.FormatText:
		cliutil.Writef(stdout, "%s\n", out.Transformed)
		if out.HasExecution {
			cliutil.Writef(stderr, "Note: the expression accesses the execution object, which FEEL does not provide\n")
		}
		if out.HasMethodInvocation {
			cliutil.Writef(stderr, "Note: the expression invokes methods, which FEEL does not support\n")
		}
		return nil
	case report.FormatJSON:
		data, err := json.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling to json: %w", err)
		}
		cliutil.Writef(stdout, "%s\n", data)
		return nil
	case report.FormatYAML:
		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("marshaling to yaml: %w", err)
		}
		cliutil.Writef(stdout, "%s", data)
		return nil
	default:
		return fmt.Errorf("invalid format '%s'. Valid formats: text, json, yaml", flags.Format)
	}
}
