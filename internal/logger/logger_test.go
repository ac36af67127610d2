package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   []interface{}
		want []interface{}
	}{
		{"empty", nil, nil},
		{"plain", []interface{}{"op", "analyze"}, []interface{}{"op", "analyze"}},
		{"api key", []interface{}{"api_key", "sk-123"}, []interface{}{"api_key", redacted}},
		{"mixed case", []interface{}{"X-API-Token", "abc", "n", 3}, []interface{}{"X-API-Token", redacted, "n", 3}},
		{"dangling key", []interface{}{"op", "x", "orphan"}, []interface{}{"op", "x", "orphan"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize(tt.in))
		})
	}
}

func TestLoggerRedactsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.Info("provider ready", "provider", "zhipu", "api_key", "sk-secret")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "zhipu", fields["provider"])
		assert.Equal(t, redacted, fields["api_key"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.With("run_id", "x").Error("ignored", "err", "boom")
}
