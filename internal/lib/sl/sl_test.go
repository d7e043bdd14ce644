package sl_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, "", attr.Value.String())
	})
}

func TestOp(t *testing.T) {
	attr := sl.Op("handlers.usage.check")

	assert.Equal(t, "op", attr.Key)
	assert.Equal(t, "handlers.usage.check", attr.Value.String())
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		env       string
		wantJSON  bool
		wantDebug bool
	}{
		{"local", false, true},
		{"dev", true, true},
		{"prod", true, false},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			log := sl.NewLogger(tt.env, &buf)

			log.Debug("debug line")
			log.Info("info line", sl.Op("test"))

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug line"))
			assert.Contains(t, out, "info line")
			assert.Equal(t, tt.wantJSON, strings.HasPrefix(out, "{"))
		})
	}
}
