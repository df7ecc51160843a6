package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetup_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := Setup("warn", "", &buf)
	require.NoError(t, err)
	defer closer.Close()

	log.Info().Msg("quiet")
	log.Warn().Str("bank", "melee").Msg("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "bank=")
}

func TestSetup_FileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "brawl.log")
	log, closer, err := Setup("debug", path, nil)
	require.NoError(t, err)

	log.Debug().Msg("arena rebuilt")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "arena rebuilt")
	assert.NotContains(t, string(data), "\x1b[", "file output is uncolored")
}

func TestSetup_NoWriters(t *testing.T) {
	log, closer, err := Setup("debug", "", nil)
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
