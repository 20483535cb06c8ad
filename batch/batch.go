// Package batch converts many BPMN documents concurrently.
//
// Each document is converted on its own. A document that fails to parse or
// convert is recorded on its Item and never stops the other documents.
//
//	c, _ := converter.New()
//	summary, err := batch.Run(ctx, c, []string{"models/"}, batch.Options{Parallel: 4, OutputDir: "out"})
//	for _, item := range summary.Items {
//		if item.Err != nil {
//			fmt.Println(item.Input, item.Err)
//		}
//	}
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/bpmnconv/converter"
	"github.com/erraggy/bpmnconv/internal/fileutil"
)

// Extension is the file extension picked up when a directory is expanded.
const Extension = ".bpmn"

// Options configures a batch run.
type Options struct {
	// Parallel bounds the number of documents converted at once.
	// Zero means runtime.NumCPU().
	Parallel int
	// OutputDir receives one converted file per input, named like the
	// input. Nothing is written when empty.
	OutputDir string
	// CheckOnly reports without converting. OutputDir is ignored.
	CheckOnly bool
	// Logger receives one Error entry per failed document.
	Logger converter.Logger
	// Progress is called after each document with the running totals.
	// It may be called from several goroutines.
	Progress func(converted, failed int64)
}

// Item is the outcome for one input document.
type Item struct {
	// Input is the path of the source document
	Input string
	// Output is the path the converted document was written to, if any
	Output string
	// Result is nil when the document could not be converted. In strict
	// mode it is set together with Err.
	Result *converter.ConversionResult
	// Err is the failure of this document, if any
	Err error
}

// Summary is the outcome of a batch run.
type Summary struct {
	// RunID identifies the run in logs
	RunID string
	// Items are in input order, directories expanded in lexical order
	Items []Item
	// Converted is the number of documents without error
	Converted int
	// Failed is the number of documents with an error
	Failed int
}

// Failures returns the items that failed.
func (s *Summary) Failures() []Item {
	var out []Item
	for _, item := range s.Items {
		if item.Err != nil {
			out = append(out, item)
		}
	}
	return out
}

// Run converts every input with conv. Directories are expanded to the
// .bpmn files directly inside them. The returned error is only set when
// the run could not start; per document failures are on the items.
func Run(ctx context.Context, conv *converter.Converter, inputs []string, opts Options) (*Summary, error) {
	if conv == nil {
		return nil, errors.New("batch: nil converter")
	}
	files, err := Expand(inputs)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir != "" && !opts.CheckOnly {
		if err := os.MkdirAll(opts.OutputDir, fileutil.DirMode); err != nil {
			return nil, fmt.Errorf("batch: creating output directory: %w", err)
		}
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = converter.NopLogger{}
	}

	runID := uuid.NewString()
	logger = logger.With("runId", runID)
	items := make([]Item, len(files))
	converted := atomic.NewInt64(0)
	failed := atomic.NewInt64(0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, file := range files {
		g.Go(func() error {
			item := convertOne(gctx, conv, file, opts)
			if item.Err != nil {
				logger.Error("document failed", "document", file, "error", item.Err)
				failed.Inc()
			} else {
				converted.Inc()
			}
			items[i] = item
			if opts.Progress != nil {
				opts.Progress(converted.Load(), failed.Load())
			}
			return nil
		})
	}
	_ = g.Wait() // failures are recorded per item

	return &Summary{
		RunID:     runID,
		Items:     items,
		Converted: int(converted.Load()),
		Failed:    int(failed.Load()),
	}, nil
}

func convertOne(ctx context.Context, conv *converter.Converter, file string, opts Options) Item {
	item := Item{Input: file}
	if err := ctx.Err(); err != nil {
		item.Err = err
		return item
	}
	if opts.CheckOnly {
		item.Result, item.Err = conv.CheckFile(file)
		return item
	}
	result, err := conv.ConvertFile(file)
	item.Result = result
	if err != nil {
		item.Err = err
		return item
	}
	if opts.OutputDir == "" {
		return item
	}
	out := filepath.Join(opts.OutputDir, filepath.Base(file))
	data, err := result.Document.Bytes()
	if err != nil {
		item.Err = fmt.Errorf("serializing %s: %w", file, err)
		return item
	}
	if err := os.WriteFile(out, data, fileutil.OwnerReadWrite); err != nil {
		item.Err = fmt.Errorf("writing %s: %w", out, err)
		return item
	}
	item.Output = out
	return item
}

// Expand replaces every directory in inputs by the .bpmn files directly
// inside it, sorted by name. Files are kept as given. A missing input is
// an error.
func Expand(inputs []string) ([]string, error) {
	var files []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("batch: %w", err)
		}
		if !info.IsDir() {
			files = append(files, in)
			continue
		}
		entries, err := os.ReadDir(in)
		if err != nil {
			return nil, fmt.Errorf("batch: reading %s: %w", in, err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), Extension) {
				found = append(found, filepath.Join(in, e.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
