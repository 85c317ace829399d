package chroma

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownChordType is returned by ChordNotes for names it does not know
var ErrUnknownChordType = errors.New("unknown chord type")

// ErrDegreeOutOfRange is returned by DiatonicChord for degrees outside the scale
var ErrDegreeOutOfRange = errors.New("scale degree out of range")

// PitchModel is the pitch knowledge the analysis components depend on. It is injected
// into every component rather than reached through a package global.
type PitchModel interface {
	PitchClassOf(name string) (PitchClass, error)
	NameOf(pc PitchClass, preferFlats bool) string
	ScaleNotes(tonic PitchClass, scaleType string) ([]PitchClass, error)
	ChordNotes(root PitchClass, chordType string) ([]PitchClass, error)
	DiatonicChord(degree int, key PitchClass, scaleType string) (DiatonicChord, error)
	NoteFromInterval(note string, semitones int) (string, error)
	KeySignature(key string) (KeySignature, bool)
}

// Triad and seventh chord types known to ChordNotes
const (
	TriadMajor      = "major"
	TriadMinor      = "minor"
	TriadDiminished = "diminished"
	TriadAugmented  = "augmented"
	TriadSus2       = "sus2"
	TriadSus4       = "sus4"
	TriadOther      = "other"
)

var chordTypeIntervals = map[string][]int{
	TriadMajor:         {0, 4, 7},
	TriadMinor:         {0, 3, 7},
	TriadDiminished:    {0, 3, 6},
	TriadAugmented:     {0, 4, 8},
	TriadSus2:          {0, 2, 7},
	TriadSus4:          {0, 5, 7},
	"dominant7":        {0, 4, 7, 10},
	"major7":           {0, 4, 7, 11},
	"minor7":           {0, 3, 7, 10},
	"minor-major7":     {0, 3, 7, 11},
	"half-diminished7": {0, 3, 6, 10},
	"diminished7":      {0, 3, 6, 9},
	"augmented7":       {0, 4, 8, 10},
}

// DiatonicChord is the triad built by stacking thirds on a scale degree
type DiatonicChord struct {
	Degree    int        `json:"degree"` // 1-based
	Root      PitchClass `json:"root"`
	ChordType string     `json:"chord_type"` // One of the Triad* names
	Roman     string     `json:"roman"`      // "ii", "V", "vii°"
}

// StandardModel is the twelve-tone equal-tempered PitchModel
type StandardModel struct{}

// NewStandardModel creates the default pitch model
func NewStandardModel() *StandardModel {
	return &StandardModel{}
}

// PitchClassOf parses a spelled pitch class ("C", "F#", "Bb")
func (m *StandardModel) PitchClassOf(name string) (PitchClass, error) {
	return ParsePitchClass(name)
}

// NameOf spells pc with sharps or flats
func (m *StandardModel) NameOf(pc PitchClass, preferFlats bool) string {
	return PitchClassName(pc, preferFlats)
}

// ScaleNotes returns the scale members in degree order, starting at tonic
func (m *StandardModel) ScaleNotes(tonic PitchClass, scaleType string) ([]PitchClass, error) {
	intervals, err := ScaleIntervals(scaleType)
	if err != nil {
		return nil, err
	}

	notes := make([]PitchClass, len(intervals))
	for i, iv := range intervals {
		notes[i] = tonic.Transpose(iv)
	}
	return notes, nil
}

// ChordNotes returns the chord tones in stacking order, starting at root
func (m *StandardModel) ChordNotes(root PitchClass, chordType string) ([]PitchClass, error) {
	intervals, ok := chordTypeIntervals[strings.ToLower(strings.TrimSpace(chordType))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChordType, chordType)
	}

	notes := make([]PitchClass, len(intervals))
	for i, iv := range intervals {
		notes[i] = root.Transpose(iv)
	}
	return notes, nil
}

// DiatonicChord stacks scale degrees degree, degree+2 and degree+4 and names the triad
func (m *StandardModel) DiatonicChord(degree int, key PitchClass, scaleType string) (DiatonicChord, error) {
	notes, err := m.ScaleNotes(key, scaleType)
	if err != nil {
		return DiatonicChord{}, err
	}
	if degree < 1 || degree > len(notes) {
		return DiatonicChord{}, fmt.Errorf("%w: %d of %d", ErrDegreeOutOfRange, degree, len(notes))
	}

	i := degree - 1
	root := notes[i]
	third := root.IntervalTo(notes[(i+2)%len(notes)])
	fifth := root.IntervalTo(notes[(i+4)%len(notes)])
	chordType := classifyTriad(third, fifth)

	return DiatonicChord{
		Degree:    degree,
		Root:      root,
		ChordType: chordType,
		Roman:     romanNumeral(degree, chordType),
	}, nil
}

// NoteFromInterval transposes a spelled note. Octave-qualified input ("E4") keeps its
// octave form; flat spellings stay flat.
func (m *StandardModel) NoteFromInterval(note string, semitones int) (string, error) {
	sp, err := parseSpelledPitch(note)
	if err != nil {
		return "", err
	}

	if !sp.hasOctave {
		return PitchClassName(sp.pitchClass().Transpose(semitones), sp.flats), nil
	}

	n := Note((sp.octave+1)*12+naturalOffsets[sp.letter]+sp.offset) + Note(semitones)
	return fmt.Sprintf("%s%d", PitchClassName(n.PitchClass(), sp.flats), n.Octave()), nil
}

// KeySignature looks up a major ("Eb") or minor ("C#m", "A minor") key
func (m *StandardModel) KeySignature(key string) (KeySignature, bool) {
	return LookupKeySignature(key)
}

func classifyTriad(third, fifth int) string {
	switch {
	case third == 4 && fifth == 7:
		return TriadMajor
	case third == 3 && fifth == 7:
		return TriadMinor
	case third == 3 && fifth == 6:
		return TriadDiminished
	case third == 4 && fifth == 8:
		return TriadAugmented
	case third == 2 && fifth == 7:
		return TriadSus2
	case third == 5 && fifth == 7:
		return TriadSus4
	default:
		return TriadOther
	}
}

var romanNumerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"}

func romanNumeral(degree int, chordType string) string {
	if degree < 1 || degree > len(romanNumerals) {
		return fmt.Sprint(degree)
	}
	numeral := romanNumerals[degree-1]
	switch chordType {
	case TriadMinor:
		return strings.ToLower(numeral)
	case TriadDiminished:
		return strings.ToLower(numeral) + "°"
	case TriadAugmented:
		return numeral + "+"
	default:
		return numeral
	}
}
