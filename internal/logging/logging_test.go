package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zap.AtomicLevel{
		"":        zap.NewAtomicLevelAt(zap.InfoLevel),
		"debug":   zap.NewAtomicLevelAt(zap.DebugLevel),
		"WARN":    zap.NewAtomicLevelAt(zap.WarnLevel),
		"warning": zap.NewAtomicLevelAt(zap.WarnLevel),
		"error":   zap.NewAtomicLevelAt(zap.ErrorLevel),
	}
	for in, want := range cases {
		got, err := parseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want.Level(), got, in)
	}

	_, err := parseLevel("loud")
	assert.Error(t, err)
}

func TestNewAndOrNop(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = New("bogus")
	assert.Error(t, err)

	assert.NotNil(t, OrNop(nil))
	assert.Same(t, l, OrNop(l))
}
