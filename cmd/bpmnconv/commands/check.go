package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/erraggy/bpmnconv/batch"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/internal/cliutil"
	"github.com/erraggy/bpmnconv/report"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	ConversionFlags
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
// Returns the FlagSet and a CheckFlags struct with bound flag variables.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}
	addConversionFlags(fs, &flags.ConversionFlags)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: bpmnconv check [flags] <file|dir|->...\n\n")
		cliutil.Writef(fs.Output(), "Report what converting Camunda 7 BPMN models would change. Models are not modified.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  bpmnconv check order.bpmn\n")
		cliutil.Writef(fs.Output(), "  bpmnconv check --min-severity warning models/\n")
		cliutil.Writef(fs.Output(), "  bpmnconv check --format csv --order severity models/ > report.csv\n")
		cliutil.Writef(fs.Output(), "\nSeverities:\n")
		cliutil.Writef(fs.Output(), "  info     changes that need no action\n")
		cliutil.Writef(fs.Output(), "  task     work outside the model, such as writing a job worker\n")
		cliutil.Writef(fs.Output(), "  review   automatic translations to check\n")
		cliutil.Writef(fs.Output(), "  warning  behaviour that could not be converted\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    All models checked\n")
		cliutil.Writef(fs.Output(), "  1    A model failed to parse, or had warnings (in --strict mode)\n")
	}

	return fs, flags
}

// HandleCheck executes the check command. The report is written to stdout.
func HandleCheck(ctx context.Context, args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("check command requires at least one file, directory, or '-' for stdin")
	}
	if err := flags.validate(); err != nil {
		return err
	}

	c, logger, err := flags.newConverter()
	if err != nil {
		return err
	}

	inputs := fs.Args()
	if len(inputs) == 1 && inputs[0] == StdinFilePath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		doc, err := dom.Parse(data)
		if err != nil {
			return fmt.Errorf("parsing stdin: %w", err)
		}
		result, checkErr := c.Check(doc)
		if result != nil && !flags.Quiet {
			opts := flags.reportOptions(FormatModelPath(StdinFilePath), stdout)
			if err := report.Write(stdout, report.Format(flags.Format), result.Results, opts); err != nil {
				return err
			}
		}
		return checkErr
	}

	summary, err := batch.Run(ctx, c, inputs, batch.Options{
		Parallel:  flags.Parallel,
		CheckOnly: true,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	return reportSummary(stdout, summary, &flags.ConversionFlags)
}
