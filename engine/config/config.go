package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/tonal"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/voicing"
	"github.com/parkerchace/MusicTheory-sub004/logging"
	"gopkg.in/yaml.v3"
)

// Environment variable prefix for overrides
const EnvPrefix = "HARMONY_"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds engine-wide settings
type Config struct {
	// Voice leading
	Ranges             voicing.Ranges `json:"ranges" yaml:"ranges"`
	Spread             bool           `json:"spread" yaml:"spread"`                           // Spread spacing for initial voicings
	EfficientThreshold int            `json:"efficient_threshold" yaml:"efficient_threshold"` // Total semitones below which a move is efficient

	// Search
	Tonic         string `json:"tonic" yaml:"tonic"`                   // Default scale tonic, "C"
	Scale         string `json:"scale" yaml:"scale"`                   // Default scale type, "major"
	MaxComplexity string `json:"max_complexity" yaml:"max_complexity"` // "triad", "seventh" or "extended"
	GroupStrategy string `json:"group_strategy" yaml:"group_strategy"` // "fit", "root" or "family"

	MIDI MIDIConfig `json:"midi" yaml:"midi"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// MIDIConfig controls Standard MIDI File export
type MIDIConfig struct {
	BPM           float64 `json:"bpm" yaml:"bpm"`
	BeatsPerChord int     `json:"beats_per_chord" yaml:"beats_per_chord"`
	Velocity      int     `json:"velocity" yaml:"velocity"`
	Channel       int     `json:"channel" yaml:"channel"` // Zero-based
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Ranges:             voicing.DefaultRanges(),
		Spread:             false,
		EfficientThreshold: voicing.DefaultOptimizerParams().EfficientThreshold,
		Tonic:              "C",
		Scale:              "major",
		MaxComplexity:      tonal.Extended.String(),
		GroupStrategy:      string(tonal.GroupByFit),
		MIDI: MIDIConfig{
			BPM:           90,
			BeatsPerChord: 4,
			Velocity:      80,
			Channel:       0,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// FromEnv applies HARMONY_* overrides to cfg. Ranges are written "low-high" in MIDI
// numbers, e.g. HARMONY_SOPRANO_RANGE=60-81.
func FromEnv(cfg *Config) error {
	cfg.Tonic = getEnv("TONIC", cfg.Tonic)
	cfg.Scale = getEnv("SCALE", cfg.Scale)
	cfg.MaxComplexity = getEnv("MAX_COMPLEXITY", cfg.MaxComplexity)
	cfg.GroupStrategy = getEnv("GROUP_STRATEGY", cfg.GroupStrategy)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if v := getEnv("SPREAD", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSPREAD: %w", EnvPrefix, err)
		}
		cfg.Spread = b
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"EFFICIENT_THRESHOLD", &cfg.EfficientThreshold},
		{"BEATS_PER_CHORD", &cfg.MIDI.BeatsPerChord},
		{"VELOCITY", &cfg.MIDI.Velocity},
		{"CHANNEL", &cfg.MIDI.Channel},
	}
	for _, in := range ints {
		v := getEnv(in.key, "")
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, in.key, err)
		}
		*in.dst = n
	}

	if v := getEnv("BPM", ""); v != "" {
		bpm, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sBPM: %w", EnvPrefix, err)
		}
		cfg.MIDI.BPM = bpm
	}

	ranges := map[string]*voicing.Range{
		"SOPRANO_RANGE": &cfg.Ranges.Soprano,
		"ALTO_RANGE":    &cfg.Ranges.Alto,
		"TENOR_RANGE":   &cfg.Ranges.Tenor,
		"BASS_RANGE":    &cfg.Ranges.Bass,
	}
	for key, dst := range ranges {
		v := getEnv(key, "")
		if v == "" {
			continue
		}
		rg, err := parseRange(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = rg
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(EnvPrefix + key)
	if value != "" {
		return value
	}
	return defaultValue
}

func parseRange(s string) (voicing.Range, error) {
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return voicing.Range{}, fmt.Errorf("range %q: want low-high", s)
	}
	low, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return voicing.Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	high, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return voicing.Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	return voicing.Range{Low: chroma.Note(low), High: chroma.Note(high)}, nil
}

// Validate checks every field that a component would otherwise reject later
func (c *Config) Validate() error {
	if err := c.Ranges.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.EfficientThreshold <= 0 {
		return fmt.Errorf("%w: efficient_threshold must be positive, got %d", ErrInvalidConfig, c.EfficientThreshold)
	}
	if _, err := chroma.ParsePitchClass(c.Tonic); err != nil {
		return fmt.Errorf("%w: tonic: %w", ErrInvalidConfig, err)
	}
	if _, err := chroma.CanonicalScaleType(c.Scale); err != nil {
		return fmt.Errorf("%w: scale: %w", ErrInvalidConfig, err)
	}
	if _, ok := tonal.ParseComplexity(c.MaxComplexity); !ok {
		return fmt.Errorf("%w: unknown max_complexity %q", ErrInvalidConfig, c.MaxComplexity)
	}
	if _, err := tonal.ParseGroupStrategy(c.GroupStrategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	m := c.MIDI
	switch {
	case m.BPM <= 0:
		return fmt.Errorf("%w: midi bpm must be positive", ErrInvalidConfig)
	case m.BeatsPerChord <= 0:
		return fmt.Errorf("%w: midi beats_per_chord must be positive", ErrInvalidConfig)
	case m.Velocity < 1 || m.Velocity > 127:
		return fmt.Errorf("%w: midi velocity %d outside 1-127", ErrInvalidConfig, m.Velocity)
	case m.Channel < 0 || m.Channel > 15:
		return fmt.Errorf("%w: midi channel %d outside 0-15", ErrInvalidConfig, m.Channel)
	}

	return nil
}

// Complexity returns the parsed search filter
func (c *Config) Complexity() tonal.Complexity {
	cx, _ := tonal.ParseComplexity(c.MaxComplexity)
	return cx
}

// Strategy returns the parsed grouping strategy, falling back to fit
func (c *Config) Strategy() tonal.GroupStrategy {
	s, err := tonal.ParseGroupStrategy(c.GroupStrategy)
	if err != nil {
		return tonal.GroupByFit
	}
	return s
}

// Level returns the parsed log level
func (c *Config) Level() logging.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}
