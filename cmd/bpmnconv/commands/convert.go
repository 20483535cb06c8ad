package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/bpmnconv/batch"
	"github.com/erraggy/bpmnconv/converter"
	"github.com/erraggy/bpmnconv/internal/cliutil"
	"github.com/erraggy/bpmnconv/internal/fileutil"
	"github.com/erraggy/bpmnconv/report"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	ConversionFlags
	Output string
}

// SetupConvertFlags creates and configures a FlagSet for the convert command.
// Returns the FlagSet and a ConvertFlags struct with bound flag variables.
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file, or directory when converting several models (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file, or directory when converting several models (default: stdout)")
	addConversionFlags(fs, &flags.ConversionFlags)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: bpmnconv convert [flags] <file|dir|->...\n\n")
		cliutil.Writef(fs.Output(), "Convert Camunda 7 BPMN models to Zeebe models.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  bpmnconv convert order.bpmn -o order-zeebe.bpmn\n")
		cliutil.Writef(fs.Output(), "  bpmnconv convert --parallel 8 -o converted/ models/\n")
		cliutil.Writef(fs.Output(), "  bpmnconv convert --strict --format json order.bpmn -o out.bpmn 2> report.json\n")
		cliutil.Writef(fs.Output(), "  cat order.bpmn | bpmnconv convert -q - > order-zeebe.bpmn\n")
		cliutil.Writef(fs.Output(), "\nOutput:\n")
		cliutil.Writef(fs.Output(), "  - A single model is written to --output or stdout\n")
		cliutil.Writef(fs.Output(), "  - Several models, or a directory, need --output <directory>; files keep their names\n")
		cliutil.Writef(fs.Output(), "  - The report is written to stderr, use --quiet to suppress it\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    All models converted\n")
		cliutil.Writef(fs.Output(), "  1    A model failed to parse or convert, or had warnings (in --strict mode)\n")
	}

	return fs, flags
}

// HandleConvert executes the convert command
func HandleConvert(ctx context.Context, args []string) error {
	fs, flags := SetupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("convert command requires at least one file, directory, or '-' for stdin")
	}
	if err := flags.validate(); err != nil {
		return err
	}
	inputs := fs.Args()
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, inputs); err != nil {
			return err
		}
	}

	c, logger, err := flags.newConverter()
	if err != nil {
		return err
	}

	if isSingle(inputs, flags.Output) {
		return convertSingle(c, inputs[0], flags)
	}
	if flags.Output == "" {
		return fmt.Errorf("converting several models requires --output <directory>")
	}
	for _, in := range inputs {
		if in == StdinFilePath {
			return fmt.Errorf("stdin can only be converted on its own")
		}
	}

	summary, err := batch.Run(ctx, c, inputs, batch.Options{
		Parallel:  flags.Parallel,
		OutputDir: flags.Output,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	return reportSummary(stderr, summary, &flags.ConversionFlags)
}

// isSingle reports whether inputs name one model whose output is a file or stdout.
func isSingle(inputs []string, output string) bool {
	if len(inputs) != 1 {
		return false
	}
	if inputs[0] != StdinFilePath {
		if info, err := os.Stat(inputs[0]); err == nil && info.IsDir() {
			return false
		}
	}
	if output == "" {
		return true
	}
	info, err := os.Stat(output)
	return err != nil || !info.IsDir()
}

func convertSingle(c *converter.Converter, input string, flags *ConvertFlags) error {
	var result *converter.ConversionResult
	var err error
	if input == StdinFilePath {
		data, readErr := io.ReadAll(stdin)
		if readErr != nil {
			return fmt.Errorf("reading stdin: %w", readErr)
		}
		result, err = c.ConvertBytes(data)
	} else {
		result, err = c.ConvertFile(input)
	}
	if result == nil {
		return fmt.Errorf("converting %s: %w", FormatModelPath(input), err)
	}

	if !flags.Quiet {
		opts := flags.reportOptions(FormatModelPath(input), stderr)
		if writeErr := report.Write(stderr, report.Format(flags.Format), result.Results, opts); writeErr != nil {
			return writeErr
		}
	}
	if err != nil {
		return fmt.Errorf("converting %s: %w", FormatModelPath(input), err)
	}

	data, err := result.Document.Bytes()
	if err != nil {
		return fmt.Errorf("serializing converted model: %w", err)
	}
	if flags.Output == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing converted model to stdout: %w", err)
		}
		return nil
	}

	cleaned := filepath.Clean(flags.Output)
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if !flags.Quiet {
		cliutil.Writef(stderr, "\nOutput written to: %s\n", cleaned)
	}
	return nil
}

// reportSummary writes the report of every document of a batch run to w and
// returns an error when a document failed.
func reportSummary(w io.Writer, summary *batch.Summary, flags *ConversionFlags) error {
	format := report.Format(flags.Format)
	for i, item := range summary.Items {
		if !flags.Quiet && item.Result != nil {
			if i > 0 && format == report.FormatText {
				cliutil.Writef(w, "\n")
			}
			if err := report.Write(w, format, item.Result.Results, flags.reportOptions(item.Input, w)); err != nil {
				return err
			}
		}
		if item.Err != nil {
			cliutil.Writef(stderr, "Error: %s: %v\n", item.Input, item.Err)
		}
	}
	if !flags.Quiet && format == report.FormatText {
		cliutil.Writef(w, "\n%d of %d model(s) succeeded\n", summary.Converted, len(summary.Items))
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d model(s) failed", summary.Failed, len(summary.Items))
	}
	return nil
}
