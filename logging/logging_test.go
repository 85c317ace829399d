package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"", InfoLevel, false},
		{"warning", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"loud", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriterLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, WarnLevel)

	l.Info("hidden")
	l.Warn("shown", Fields{"chord": "G7"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown chord=G7")
}

func TestWithFieldsSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriterLogger(&buf, InfoLevel)
	child := root.WithFields(Fields{"component": "optimizer"})

	root.SetLevel(ErrorLevel)
	child.Info("dropped")
	child.Error(errors.New("boom"), "failed")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "[ERROR] failed: boom component=optimizer")
}

func TestWithContextPicksUpFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, DebugLevel)

	ctx := ContextWithFields(context.Background(), Fields{"run_id": "abc"})
	ctx = ContextWithFields(ctx, Fields{"step": 2})
	l.WithContext(ctx).Debug("moved")

	assert.Contains(t, buf.String(), "[DEBUG] moved run_id=abc step=2")
}

func TestOrNoOp(t *testing.T) {
	assert.IsType(t, &NoOpLogger{}, OrNoOp(nil))

	l := NewWriterLogger(&bytes.Buffer{}, InfoLevel)
	assert.Same(t, l, OrNoOp(l))
}
