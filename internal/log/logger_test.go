package log

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Level {
	t.Helper()
	l, err := ParseLevel(s)
	require.NoError(t, err)
	return l
}

func TestFieldsReachZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core))

	l.With(String("world", "demo")).Info("contact",
		Vec3("hit_pos", rl.Vector3{X: 1, Y: 2, Z: 3}),
		Float32("time", 0.25),
		Int("pairs", 4),
		Err(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "contact", entry.Message)
	ctx := entry.ContextMap()
	assert.Equal(t, "demo", ctx["world"])
	assert.Equal(t, []interface{}{float32(1), float32(2), float32(3)}, ctx["hit_pos"])
	assert.Equal(t, int64(4), ctx["pairs"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestNopAndProvide(t *testing.T) {
	l := NewNop()
	l.Debug("dropped")
	assert.False(t, l.Enabled(LevelDebug))
	assert.NotNil(t, Provide())
}

func TestSetLevel(t *testing.T) {
	l := New(LevelInfo)
	assert.Equal(t, LevelInfo, l.GetLevel())
	assert.False(t, l.Enabled(LevelDebug))
	l.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, l.GetLevel())
	assert.True(t, l.Enabled(LevelDebug))
}
