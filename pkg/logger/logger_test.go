package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":       zerolog.TraceLevel,
		"debug":       zerolog.DebugLevel,
		"info":        zerolog.InfoLevel,
		"warn":        zerolog.WarnLevel,
		"error":       zerolog.ErrorLevel,
		"":            zerolog.InfoLevel,
		"desconocido": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "nivel %q", in)
	}
}

func TestNew_NivelAplicado(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn"})
	require.NotNil(t, l)
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())
}

func TestWithComponent_NoMutaElOriginal(t *testing.T) {
	base := New(Config{Env: "production", Level: "info"})
	sub := base.WithComponent("checkout")

	require.NotNil(t, sub)
	assert.NotSame(t, base, sub)
	assert.Equal(t, base.Zerolog().GetLevel(), sub.Zerolog().GetLevel())
}
