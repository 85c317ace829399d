package voicing

import (
	"errors"
	"fmt"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/common"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/tonal"
)

// Voice indexes the four parts, top to bottom
type Voice int

const (
	Soprano Voice = iota
	Alto
	Tenor
	Bass
)

// Voices lists the parts in search order (soprano first)
var Voices = [4]Voice{Soprano, Alto, Tenor, Bass}

func (v Voice) String() string {
	switch v {
	case Soprano:
		return "soprano"
	case Alto:
		return "alto"
	case Tenor:
		return "tenor"
	case Bass:
		return "bass"
	default:
		return "unknown"
	}
}

// Allowed register spans in semitones. Three octaves keeps every pool at three pitches
// or fewer per pitch class.
const (
	MinRangeSpan = 11
	MaxRangeSpan = 36
)

// ErrInvalidRange is returned by Ranges.Validate
var ErrInvalidRange = errors.New("invalid voice range")

// Range is an inclusive MIDI note range
type Range struct {
	Low  chroma.Note `json:"low" yaml:"low"`
	High chroma.Note `json:"high" yaml:"high"`
}

// Contains reports whether n lies inside the range
func (r Range) Contains(n chroma.Note) bool {
	return n >= r.Low && n <= r.High
}

// Ranges holds one register per voice
type Ranges struct {
	Soprano Range `json:"soprano" yaml:"soprano"`
	Alto    Range `json:"alto" yaml:"alto"`
	Tenor   Range `json:"tenor" yaml:"tenor"`
	Bass    Range `json:"bass" yaml:"bass"`
}

// DefaultRanges returns the classic SATB registers
func DefaultRanges() Ranges {
	return Ranges{
		Soprano: Range{Low: 60, High: 81}, // C4-A5
		Alto:    Range{Low: 55, High: 74}, // G3-D5
		Tenor:   Range{Low: 48, High: 67}, // C3-G4
		Bass:    Range{Low: 40, High: 60}, // E2-C4
	}
}

// For returns the range of v
func (r Ranges) For(v Voice) Range {
	switch v {
	case Soprano:
		return r.Soprano
	case Alto:
		return r.Alto
	case Tenor:
		return r.Tenor
	default:
		return r.Bass
	}
}

// Validate checks that every range lies in MIDI space and spans 11 to 36 semitones
func (r Ranges) Validate() error {
	for _, v := range Voices {
		rg := r.For(v)
		if rg.Low < 0 || rg.High > 127 {
			return fmt.Errorf("%w: %s %d-%d outside MIDI range", ErrInvalidRange, v, rg.Low, rg.High)
		}
		span := int(rg.High - rg.Low)
		if span < MinRangeSpan || span > MaxRangeSpan {
			return fmt.Errorf("%w: %s spans %d semitones, want %d-%d", ErrInvalidRange, v, span, MinRangeSpan, MaxRangeSpan)
		}
	}
	return nil
}

// State is one four-part voicing
type State struct {
	Soprano chroma.Note `json:"soprano"`
	Alto    chroma.Note `json:"alto"`
	Tenor   chroma.Note `json:"tenor"`
	Bass    chroma.Note `json:"bass"`
}

// StateOf builds a State from notes in soprano, alto, tenor, bass order
func StateOf(notes [4]chroma.Note) State {
	return State{Soprano: notes[Soprano], Alto: notes[Alto], Tenor: notes[Tenor], Bass: notes[Bass]}
}

// Notes returns the notes in soprano, alto, tenor, bass order
func (s State) Notes() [4]chroma.Note {
	return [4]chroma.Note{s.Soprano, s.Alto, s.Tenor, s.Bass}
}

// Note returns the note sung by v
func (s State) Note(v Voice) chroma.Note {
	return s.Notes()[v]
}

// MIDI returns the notes bass to soprano
func (s State) MIDI() []int {
	return []int{int(s.Bass), int(s.Tenor), int(s.Alto), int(s.Soprano)}
}

// InRange reports whether every voice lies inside its range
func (s State) InRange(r Ranges) bool {
	for _, v := range Voices {
		if !r.For(v).Contains(s.Note(v)) {
			return false
		}
	}
	return true
}

// Direction of a single voice between two chords
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Hold Direction = "hold"
)

// VoiceMove is one voice's motion
type VoiceMove struct {
	Semitones int       `json:"semitones"` // Absolute distance
	Direction Direction `json:"direction"`
}

// Movement summarizes the motion between two voicings
type Movement struct {
	PerVoice       [4]VoiceMove `json:"per_voice"` // Soprano, alto, tenor, bass
	TotalSemitones int          `json:"total_semitones"`
	Efficient      bool         `json:"efficient"`
}

// MovementBetween measures prev -> next. threshold is the exclusive total below which
// the move counts as efficient.
func MovementBetween(prev, next State, threshold int) Movement {
	var m Movement
	p, n := prev.Notes(), next.Notes()
	for i := range p {
		delta := int(n[i] - p[i])
		dir := Hold
		switch common.Sign(delta) {
		case 1:
			dir = Up
		case -1:
			dir = Down
		}
		m.PerVoice[i] = VoiceMove{Semitones: common.AbsInt(delta), Direction: dir}
		m.TotalSemitones += common.AbsInt(delta)
	}
	m.Efficient = m.TotalSemitones < threshold
	return m
}

// Step is one chord of a voiced progression
type Step struct {
	Symbol   string          `json:"symbol"`
	Chord    tonal.ChordSpec `json:"chord"`
	Voicing  State           `json:"voicing"`
	Movement Movement        `json:"movement"`
	Cost     int             `json:"cost"`
}

// MIDI returns the step's notes bass to soprano
func (s Step) MIDI() []int {
	return s.Voicing.MIDI()
}
