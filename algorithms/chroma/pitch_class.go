package chroma

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/common"
)

// ErrUnknownPitch is returned for names that are not a pitch (e.g. "H", "C#x9z")
var ErrUnknownPitch = errors.New("unknown pitch name")

// PitchClass is a note identity modulo octave (0=C, 1=C#/Db, ..., 11=B).
// Two pitch classes are equal when their integers are equal, regardless of spelling.
type PitchClass int

// Mod12 reduces n to a pitch class
func Mod12(n int) PitchClass {
	return PitchClass(common.Mod12(n))
}

// Transpose moves the pitch class by semitones and reduces it
func (pc PitchClass) Transpose(semitones int) PitchClass {
	return Mod12(int(pc) + semitones)
}

// IntervalTo returns the ascending interval (0..11) from pc to other
func (pc PitchClass) IntervalTo(other PitchClass) int {
	return common.Mod12(int(other) - int(pc))
}

// String spells the pitch class with sharps
func (pc PitchClass) String() string {
	return sharpNames[common.Mod12(int(pc))]
}

// Note is an absolute pitch as a MIDI number: (octave+1)*12 + pitch class (C4 = 60)
type Note int

// NewNote builds a Note from a pitch class and an octave number
func NewNote(pc PitchClass, octave int) Note {
	return Note((octave+1)*12 + common.Mod12(int(pc)))
}

// PitchClass returns the note's pitch class
func (n Note) PitchClass() PitchClass {
	return Mod12(int(n))
}

// Octave returns the scientific octave number (C4 = 60 -> 4)
func (n Note) Octave() int {
	if n < 0 {
		return (int(n)-11)/12 - 1
	}
	return int(n)/12 - 1
}

// String spells the note with sharps and octave, e.g. "F#3"
func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.PitchClass(), n.Octave())
}

var (
	sharpNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

	naturalOffsets = map[byte]int{
		'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
	}
)

// spelledPitch is a parsed note name: letter, accidental offset and an optional octave
type spelledPitch struct {
	letter    byte
	offset    int
	octave    int
	hasOctave bool
	flats     bool
}

func (s spelledPitch) pitchClass() PitchClass {
	return Mod12(naturalOffsets[s.letter] + s.offset)
}

// parseSpelledPitch reads "C", "c#", "Bb", "F##", "Ebb", "E♭", "Cx", "C4", "Bb-1"
func parseSpelledPitch(name string) (spelledPitch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return spelledPitch{}, fmt.Errorf("%w: empty", ErrUnknownPitch)
	}

	var sp spelledPitch
	letter := strings.ToUpper(name[:1])[0]
	if _, ok := naturalOffsets[letter]; !ok {
		return spelledPitch{}, fmt.Errorf("%w: %q", ErrUnknownPitch, name)
	}
	sp.letter = letter

	rest := name[1:]
	for len(rest) > 0 {
		switch {
		case strings.HasPrefix(rest, "#"):
			sp.offset++
			rest = rest[1:]
		case strings.HasPrefix(rest, "♯"):
			sp.offset++
			rest = rest[len("♯"):]
		case strings.HasPrefix(rest, "x"):
			sp.offset += 2
			rest = rest[1:]
		case strings.HasPrefix(rest, "b"):
			sp.offset--
			sp.flats = true
			rest = rest[1:]
		case strings.HasPrefix(rest, "♭"):
			sp.offset--
			sp.flats = true
			rest = rest[len("♭"):]
		default:
			octave, err := strconv.Atoi(rest)
			if err != nil {
				return spelledPitch{}, fmt.Errorf("%w: %q", ErrUnknownPitch, name)
			}
			sp.octave = octave
			sp.hasOctave = true
			rest = ""
		}
	}

	return sp, nil
}

// ParsePitchClass converts a spelled name ("Eb", "D#", "Fb") to its pitch class
func ParsePitchClass(name string) (PitchClass, error) {
	sp, err := parseSpelledPitch(name)
	if err != nil {
		return 0, err
	}
	if sp.hasOctave {
		return 0, fmt.Errorf("%w: %q carries an octave", ErrUnknownPitch, name)
	}
	return sp.pitchClass(), nil
}

// ParseNote converts a name with octave ("C4", "Bb2") to a MIDI note
func ParseNote(name string) (Note, error) {
	sp, err := parseSpelledPitch(name)
	if err != nil {
		return 0, err
	}
	if !sp.hasOctave {
		return 0, fmt.Errorf("%w: %q has no octave", ErrUnknownPitch, name)
	}
	// letter octave plus accidental offset, so B#3 is C4 and Cb4 is B3
	return Note((sp.octave+1)*12 + naturalOffsets[sp.letter] + sp.offset), nil
}

// PitchClassName spells pc with sharps or flats
func PitchClassName(pc PitchClass, preferFlats bool) string {
	idx := common.Mod12(int(pc))
	if preferFlats {
		return flatNames[idx]
	}
	return sharpNames[idx]
}

// UniquePitchClasses reduces and de-duplicates, keeping first-seen order
func UniquePitchClasses(pcs []PitchClass) []PitchClass {
	var seen [12]bool
	out := make([]PitchClass, 0, len(pcs))
	for _, pc := range pcs {
		r := Mod12(int(pc))
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// PitchClassSet is a 12-bit membership mask
type PitchClassSet uint16

// NewPitchClassSet builds a set from pitch classes (reduced mod 12)
func NewPitchClassSet(pcs ...PitchClass) PitchClassSet {
	var s PitchClassSet
	for _, pc := range pcs {
		s |= 1 << uint(common.Mod12(int(pc)))
	}
	return s
}

// Contains reports whether pc is a member
func (s PitchClassSet) Contains(pc PitchClass) bool {
	return s&(1<<uint(common.Mod12(int(pc)))) != 0
}

// ContainsAll reports whether every member of other is in s
func (s PitchClassSet) ContainsAll(other PitchClassSet) bool {
	return s&other == other
}

// Len returns the number of members
func (s PitchClassSet) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Intersect returns the members common to both sets
func (s PitchClassSet) Intersect(other PitchClassSet) PitchClassSet {
	return s & other
}

// Members lists the pitch classes in ascending order
func (s PitchClassSet) Members() []PitchClass {
	out := make([]PitchClass, 0, s.Len())
	for pc := 0; pc < 12; pc++ {
		if s.Contains(PitchClass(pc)) {
			out = append(out, PitchClass(pc))
		}
	}
	return out
}
