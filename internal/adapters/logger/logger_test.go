package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/moveiface/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_InfoWarn(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("starting run")
	lg.Warn("rpc disabled")

	assert.Equal(t, "starting run\n! rpc disabled\n", buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(zerr.Wrap(errors.New("connection refused"), "rpc request failed"), "package_id", "0x2")
	lg.Error(err)

	g := goldie.New(t)
	g.Assert(t, "logger_error_chain", buf.Bytes())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("hello")
	lg.Error(errors.New("boom"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "hello", first["msg"])
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "boom", second["error"])
}

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
	}{
		{"standard error", errors.New("simple error"), []string{"simple error"}},
		{"zerr single error", zerr.New("zerr error"), []string{"zerr error"}},
		{
			"zerr wrapped chain",
			zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			[]string{"outer layer", "middle layer", "root cause"},
		},
		{"nil error", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)
			got := make([]string, 0, len(entries))
			for _, e := range entries {
				got = append(got, e.Message)
			}
			if tt.wantMessages == nil {
				assert.Empty(t, entries)
				return
			}
			assert.Equal(t, tt.wantMessages, got)
		})
	}
}

func TestCollectErrorEntries_Metadata(t *testing.T) {
	err := zerr.With(zerr.With(zerr.New("base error"), "key1", "value1"), "key2", 42)

	entries := logger.CollectErrorEntries(err)
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]any{"key1": "value1", "key2": 42}, entries[0].Metadata)
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{"single entry", []logger.ErrorEntry{{Message: "single error"}}, "Error: single error"},
		{
			"caused by",
			[]logger.ErrorEntry{{Message: "outer"}, {Message: "inner"}, {Message: "root"}},
			"Error: outer\n\n  Caused by:\n    → inner\n    → root",
		},
		{
			"metadata sorted",
			[]logger.ErrorEntry{{Message: "error", Metadata: map[string]any{"zebra": "z", "alpha": "a"}}},
			"Error: error\n       alpha: a\n       zebra: z",
		},
		{
			"metadata on cause",
			[]logger.ErrorEntry{{Message: "main"}, {Message: "cause", Metadata: map[string]any{"k": "v"}}},
			"Error: main\n\n  Caused by:\n    → cause\n      k: v",
		},
		{
			"multiline message",
			[]logger.ErrorEntry{{Message: "line1\nline2"}},
			"Error: line1\n       line2",
		},
		{"empty", []logger.ErrorEntry{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
