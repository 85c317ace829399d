package transcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/voicing"
	"github.com/parkerchace/MusicTheory-sub004/logging"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	ErrEmptyProgression = errors.New("progression has no chords")
	ErrInvalidOptions   = errors.New("invalid encoder options")
)

// EncodeOptions controls Standard MIDI File export
type EncodeOptions struct {
	BPM           float64 `json:"bpm"`
	BeatsPerChord int     `json:"beats_per_chord"`
	Velocity      uint8   `json:"velocity"`
	Channel       uint8   `json:"channel"`    // Zero-based
	Resolution    uint16  `json:"resolution"` // Ticks per quarter note
	Markers       bool    `json:"markers"`    // Write each chord symbol as a marker event
}

// DefaultEncodeOptions returns 90 BPM, one 4/4 bar per chord
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		BPM:           90,
		BeatsPerChord: 4,
		Velocity:      80,
		Channel:       0,
		Resolution:    480,
		Markers:       true,
	}
}

// Validate checks the options against MIDI limits
func (o EncodeOptions) Validate() error {
	switch {
	case o.BPM <= 0:
		return fmt.Errorf("%w: bpm must be positive, got %v", ErrInvalidOptions, o.BPM)
	case o.BeatsPerChord <= 0:
		return fmt.Errorf("%w: beats per chord must be positive, got %d", ErrInvalidOptions, o.BeatsPerChord)
	case o.Velocity == 0 || o.Velocity > 127:
		return fmt.Errorf("%w: velocity %d outside 1-127", ErrInvalidOptions, o.Velocity)
	case o.Channel > 15:
		return fmt.Errorf("%w: channel %d outside 0-15", ErrInvalidOptions, o.Channel)
	case o.Resolution == 0:
		return fmt.Errorf("%w: resolution must be positive", ErrInvalidOptions)
	}
	return nil
}

// Encoder writes voiced progressions as single-track MIDI files
type Encoder struct {
	opts   EncodeOptions
	logger logging.Logger
}

// NewEncoder creates an encoder with the given options
func NewEncoder(opts EncodeOptions) *Encoder {
	return &Encoder{
		opts: opts,
		logger: logging.WithFields(logging.Fields{
			"component": "midi_encoder",
		}),
	}
}

// WithLogger returns a copy of the encoder that logs to l
func (e *Encoder) WithLogger(l logging.Logger) *Encoder {
	out := *e
	out.logger = logging.OrNoOp(l)
	return &out
}

// Build assembles the SMF for steps. Every chord sounds as a block for BeatsPerChord
// quarter notes; notes shared by two voices are struck once.
func (e *Encoder) Build(steps []voicing.Step) (*smf.SMF, error) {
	if err := e.opts.Validate(); err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, ErrEmptyProgression
	}

	clock := smf.MetricTicks(e.opts.Resolution)
	chordTicks := clock.Ticks4th() * uint32(e.opts.BeatsPerChord)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("progression"))
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(e.opts.BPM))

	for _, st := range steps {
		keys := chordKeys(st)

		if e.opts.Markers && st.Symbol != "" {
			tr.Add(0, smf.MetaMarker(st.Symbol))
		}
		for _, k := range keys {
			tr.Add(0, midi.NoteOn(e.opts.Channel, k, e.opts.Velocity))
		}
		for i, k := range keys {
			var delta uint32
			if i == 0 {
				delta = chordTicks
			}
			tr.Add(delta, midi.NoteOff(e.opts.Channel, k))
		}
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("add track: %w", err)
	}

	e.logger.Debug("Progression encoded", logging.Fields{
		"chords":      len(steps),
		"bpm":         e.opts.BPM,
		"chord_ticks": chordTicks,
	})

	return s, nil
}

// Encode writes steps to w as a Standard MIDI File
func (e *Encoder) Encode(w io.Writer, steps []voicing.Step) (int64, error) {
	s, err := e.Build(steps)
	if err != nil {
		return 0, err
	}
	n, err := s.WriteTo(w)
	if err != nil {
		e.logger.Error(err, "Failed to write MIDI data")
		return n, fmt.Errorf("write midi: %w", err)
	}
	return n, nil
}

// WriteFile encodes steps into the file at path
func (e *Encoder) WriteFile(path string, steps []voicing.Step) error {
	var buf bytes.Buffer
	if _, err := e.Encode(&buf, steps); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	e.logger.Info("MIDI file written", logging.Fields{
		"path":   path,
		"chords": len(steps),
		"bytes":  buf.Len(),
	})
	return nil
}

// EncodeProgression writes steps to w with opts
func EncodeProgression(w io.Writer, steps []voicing.Step, opts EncodeOptions) (int64, error) {
	return NewEncoder(opts).Encode(w, steps)
}

// chordKeys returns the distinct MIDI keys of a step, ascending
func chordKeys(st voicing.Step) []uint8 {
	notes := st.MIDI()
	keys := make([]uint8, 0, len(notes))
	for _, n := range notes {
		if n >= 0 && n <= 127 {
			keys = append(keys, uint8(n))
		}
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}
