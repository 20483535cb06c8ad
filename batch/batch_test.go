package batch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/bpmnconv/bpmnerrors"
	"github.com/erraggy/bpmnconv/converter"
	"github.com/erraggy/bpmnconv/dom"
)

func newConverter(t *testing.T, opts ...converter.Option) *converter.Converter {
	t.Helper()
	c, err := converter.New(opts...)
	require.NoError(t, err)
	return c
}

func TestExpand(t *testing.T) {
	files, err := Expand([]string{"testdata", "testdata/order.bpmn"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "broken.bpmn"),
		filepath.Join("testdata", "duplicate.bpmn"),
		filepath.Join("testdata", "order.bpmn"),
		"testdata/order.bpmn",
	}, files)

	_, err = Expand([]string{"testdata/nope.bpmn"})
	assert.Error(t, err)
}

func TestRunIsolatesFailures(t *testing.T) {
	summary, err := Run(context.Background(), newConverter(t), []string{"testdata"}, Options{Parallel: 2})
	require.NoError(t, err)

	require.Len(t, summary.Items, 3)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 1, summary.Converted)
	assert.Equal(t, 2, summary.Failed)

	broken, duplicate, order := summary.Items[0], summary.Items[1], summary.Items[2]
	assert.ErrorIs(t, broken.Err, bpmnerrors.ErrParse)
	assert.ErrorIs(t, duplicate.Err, bpmnerrors.ErrDuplicateElement)
	require.NoError(t, order.Err)
	require.NotNil(t, order.Result)
	assert.Len(t, order.Result.Results, 10)
	assert.Empty(t, order.Output)

	failures := summary.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, broken.Input, failures[0].Input)
}

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(string, ...any) {}
func (m *mockLogger) Info(string, ...any) {}
func (m *mockLogger) Warn(string, ...any) {}

func (m *mockLogger) Error(msg string, attrs ...any) {
	m.Called(msg, attrs[0], attrs[1])
}

func (m *mockLogger) With(attrs ...any) converter.Logger {
	m.Called(attrs[0])
	return m
}

func TestRunLogsFailures(t *testing.T) {
	logger := &mockLogger{}
	logger.On("With", "runId").Once()
	logger.On("Error", "document failed", "document", filepath.Join("testdata", "broken.bpmn")).Once()
	logger.On("Error", "document failed", "document", filepath.Join("testdata", "duplicate.bpmn")).Once()

	_, err := Run(context.Background(), newConverter(t), []string{"testdata"}, Options{Logger: logger})
	require.NoError(t, err)
	logger.AssertExpectations(t)
}

func TestRunWritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "converted")
	summary, err := Run(context.Background(), newConverter(t), []string{"testdata/order.bpmn"}, Options{OutputDir: out})
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)

	item := summary.Items[0]
	require.NoError(t, item.Err)
	assert.Equal(t, filepath.Join(out, "order.bpmn"), item.Output)

	doc, err := dom.ParseFile(item.Output)
	require.NoError(t, err)
	platform, ok := doc.Root().Attr(dom.NamespaceModeler, "executionPlatform")
	assert.True(t, ok)
	assert.Equal(t, "Camunda Cloud", platform)
}

func TestRunCheckOnly(t *testing.T) {
	out := filepath.Join(t.TempDir(), "unused")
	summary, err := Run(context.Background(), newConverter(t), []string{"testdata/order.bpmn"}, Options{CheckOnly: true, OutputDir: out})
	require.NoError(t, err)
	require.NoError(t, summary.Items[0].Err)
	assert.Equal(t, 1, summary.Items[0].Result.WarningCount)
	assert.NoDirExists(t, out)
}

func TestRunStrictKeepsResult(t *testing.T) {
	c := newConverter(t, converter.WithStrictMode(true))
	summary, err := Run(context.Background(), c, []string{"testdata/order.bpmn"}, Options{})
	require.NoError(t, err)
	item := summary.Items[0]
	assert.ErrorIs(t, item.Err, bpmnerrors.ErrConversion)
	require.NotNil(t, item.Result)
	assert.Equal(t, 1, summary.Failed)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := Run(ctx, newConverter(t), []string{"testdata/order.bpmn"}, Options{})
	require.NoError(t, err)
	assert.ErrorIs(t, summary.Items[0].Err, context.Canceled)
}

func TestRunProgress(t *testing.T) {
	var mu sync.Mutex
	var calls int
	var last int64
	opts := Options{
		Parallel: 1,
		Progress: func(converted, failed int64) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			last = converted + failed
		},
	}
	_, err := Run(context.Background(), newConverter(t), []string{"testdata"}, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, int64(3), last)
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), nil, nil, Options{})
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = Run(context.Background(), newConverter(t), []string{"testdata/order.bpmn"}, Options{OutputDir: filepath.Join(file, "sub")})
	assert.Error(t, err)
}
