package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/tonal"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/voicing"
	"github.com/parkerchace/MusicTheory-sub004/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, voicing.DefaultRanges(), cfg.Ranges)
	assert.Equal(t, tonal.Extended, cfg.Complexity())
	assert.Equal(t, tonal.GroupByFit, cfg.Strategy())
	assert.Equal(t, logging.InfoLevel, cfg.Level())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harmony.yaml")
	data := `
tonic: F
scale: dorian
spread: true
max_complexity: seventh
ranges:
  soprano:
    low: 62
    high: 79
midi:
  bpm: 120
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "F", cfg.Tonic)
	assert.Equal(t, "dorian", cfg.Scale)
	assert.True(t, cfg.Spread)
	assert.Equal(t, tonal.Seventh, cfg.Complexity())
	assert.Equal(t, voicing.Range{Low: 62, High: 79}, cfg.Ranges.Soprano)
	assert.Equal(t, 120.0, cfg.MIDI.BPM)

	// untouched keys keep their defaults
	assert.Equal(t, voicing.DefaultRanges().Bass, cfg.Ranges.Bass)
	assert.Equal(t, 4, cfg.MIDI.BeatsPerChord)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ranges: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("HARMONY_TONIC", "Eb")
	t.Setenv("HARMONY_SPREAD", "true")
	t.Setenv("HARMONY_GROUP_STRATEGY", "family")
	t.Setenv("HARMONY_BASS_RANGE", "38-58")
	t.Setenv("HARMONY_VELOCITY", "100")
	t.Setenv("HARMONY_BPM", "72.5")

	cfg := Default()
	require.NoError(t, FromEnv(cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Eb", cfg.Tonic)
	assert.True(t, cfg.Spread)
	assert.Equal(t, tonal.GroupByFamily, cfg.Strategy())
	assert.Equal(t, voicing.Range{Low: 38, High: 58}, cfg.Ranges.Bass)
	assert.Equal(t, 100, cfg.MIDI.Velocity)
	assert.Equal(t, 72.5, cfg.MIDI.BPM)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"HARMONY_SPREAD", "maybe"},
		{"HARMONY_CHANNEL", "one"},
		{"HARMONY_BPM", "fast"},
		{"HARMONY_ALTO_RANGE", "55"},
		{"HARMONY_TENOR_RANGE", "low-67"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			err := FromEnv(Default())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HARMONY_TEST_DOTENV=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("HARMONY_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("HARMONY_TEST_DOTENV"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"narrow range", func(c *Config) { c.Ranges.Alto = voicing.Range{Low: 60, High: 65} }},
		{"zero threshold", func(c *Config) { c.EfficientThreshold = 0 }},
		{"bad tonic", func(c *Config) { c.Tonic = "H" }},
		{"bad scale", func(c *Config) { c.Scale = "blues" }},
		{"bad complexity", func(c *Config) { c.MaxComplexity = "huge" }},
		{"bad strategy", func(c *Config) { c.GroupStrategy = "color" }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"zero bpm", func(c *Config) { c.MIDI.BPM = 0 }},
		{"zero beats", func(c *Config) { c.MIDI.BeatsPerChord = 0 }},
		{"velocity", func(c *Config) { c.MIDI.Velocity = 128 }},
		{"channel", func(c *Config) { c.MIDI.Channel = 16 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
