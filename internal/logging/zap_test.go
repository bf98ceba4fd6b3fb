package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		level   string
		want    string
		wantErr bool
	}{
		{name: "text", format: "text", level: "info", want: "msg=hello"},
		{name: "json", format: "json", level: "info", want: `"msg":"hello"`},
		{name: "zap", format: "zap", level: "info", want: `"msg":"hello"`},
		{name: "default is text", format: "", level: "info", want: "msg=hello"},
		{name: "unknown format", format: "xml", level: "info", wantErr: true},
		{name: "bad level", format: "text", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(tt.format, tt.level, &buf)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			l.With("component", "test").Info(context.Background(), "hello", "k", "v")
			if z, ok := l.(*ZapLogger); ok {
				_ = z.Sync()
			}

			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "component")
		})
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	for _, format := range []string{FormatText, FormatZap} {
		var buf bytes.Buffer
		l, err := New(format, "warn", &buf)
		require.NoError(t, err)

		l.Debug(context.Background(), "quiet")
		l.Info(context.Background(), "quiet")
		l.Warn(context.Background(), "loud")

		assert.NotContains(t, buf.String(), "quiet", format)
		assert.Contains(t, buf.String(), "loud", format)
	}
}
