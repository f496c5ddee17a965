package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		production bool
		want       zap.AtomicLevel
	}{
		{name: "default level", level: "", want: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{name: "debug", level: "debug", want: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{name: "production warn", level: "warn", production: true, want: zap.NewAtomicLevelAt(zap.WarnLevel)},
		{name: "bad level falls back", level: "loud", want: zap.NewAtomicLevelAt(zap.InfoLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.level, tt.production)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.True(t, l.Core().Enabled(tt.want.Level()))
			if tt.want.Level() > zap.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want.Level()-1))
			}
		})
	}
}
