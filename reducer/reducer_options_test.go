package reducer

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasreduce/oaserrors"
	"github.com/erraggy/oasreduce/parser"
)

func TestReduceWithOptions_FilePath(t *testing.T) {
	result, err := ReduceWithOptions(
		WithFilePath("../testdata/imagebuilder.json"),
		WithEndpoints("POST:/blueprints"),
		WithEndpoints("GET:/clones/{id}"),
	)
	require.NoError(t, err)
	assert.Len(t, result.Endpoints, 2)
	assert.Equal(t, 2, result.After.OperationCount)
	assert.Equal(t, 3, result.Before.OperationCount)
}

func TestReduceWithOptions_Parsed(t *testing.T) {
	doc, err := parser.New().Parse("../testdata/imagebuilder.json")
	require.NoError(t, err)

	result, err := ReduceWithOptions(
		WithParsed(*doc),
		WithEndpoints("GET:/clones/{id}"),
		WithPreserveExtensions(true),
	)
	require.NoError(t, err)
	assert.Equal(t, "x-internal", keys(result.Document.Root)[len(keys(result.Document.Root))-1])
}

func TestReduceWithOptions_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := parser.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := ReduceWithOptions(
		WithFilePath("../testdata/imagebuilder.json"),
		WithEndpoints("GET:/nowhere"),
		WithLogger(logger),
		WithUserAgent("test-agent"),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "reduced document")
	assert.Contains(t, buf.String(), "endpoint matched no operation")
	assert.Contains(t, buf.String(), "endpoint=GET:/nowhere")
}

func TestReduceWithOptions_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantMsg string
	}{
		{
			name:    "no input source",
			opts:    []Option{WithEndpoints("/a")},
			wantMsg: "must specify an input source",
		},
		{
			name: "two input sources",
			opts: []Option{
				WithFilePath("a.json"),
				WithParsed(parser.Document{Root: mustParse(t, `{"paths":{}}`)}),
				WithEndpoints("/a"),
			},
			wantMsg: "exactly one input source",
		},
		{
			name:    "no endpoints",
			opts:    []Option{WithFilePath("a.json")},
			wantMsg: "at least one endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReduceWithOptions(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))
		})
	}

	t.Run("parsed document without root", func(t *testing.T) {
		_, err := ReduceWithOptions(WithParsed(parser.Document{}), WithEndpoints("/a"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsed document has no root")
	})
}
