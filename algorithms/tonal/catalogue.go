package tonal

import (
	"slices"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
)

// ChordType is one entry of the search catalogue, rooted on C
type ChordType struct {
	Name       string     `json:"name"`       // Display name, "minor 7"
	Suffix     string     `json:"suffix"`     // Symbol suffix, "m7"
	Intervals  []int      `json:"intervals"`  // Offsets above the root
	Complexity Complexity `json:"complexity"` // Triad, seventh or extended
	spec       ChordSpec
}

// Spec returns the chord type rooted on root
func (ct ChordType) Spec(root chroma.PitchClass) ChordSpec {
	return Transpose(ct.spec, int(root))
}

var catalogueEntries = []struct {
	name   string
	suffix string
}{
	{"major", ""},
	{"minor", "m"},
	{"diminished", "dim"},
	{"augmented", "aug"},
	{"sus2", "sus2"},
	{"sus4", "sus4"},
	{"6", "6"},
	{"minor 6", "m6"},
	{"dominant 7", "7"},
	{"major 7", "maj7"},
	{"minor 7", "m7"},
	{"minor-major 7", "m(maj7)"},
	{"half-diminished 7", "m7b5"},
	{"diminished 7", "dim7"},
	{"augmented 7", "aug7"},
	{"augmented major 7", "augmaj7"},
	{"dominant 7 sus4", "7sus4"},
	{"dominant 9", "9"},
	{"major 9", "maj9"},
	{"minor 9", "m9"},
	{"add 9", "add9"},
	{"minor add 9", "madd9"},
	{"dominant 11", "11"},
	{"minor 11", "m11"},
	{"dominant 13", "13"},
	{"major 13", "maj13"},
	{"minor 13", "m13"},
	{"dominant 7 flat 9", "7b9"},
	{"dominant 7 sharp 9", "7#9"},
	{"dominant 7 flat 5", "7b5"},
	{"dominant 7 sharp 11", "7#11"},
}

var catalogue = func() []ChordType {
	out := make([]ChordType, 0, len(catalogueEntries))
	for _, e := range catalogueEntries {
		spec := MustParseChord("C" + e.suffix)
		out = append(out, ChordType{
			Name:       e.name,
			Suffix:     e.suffix,
			Intervals:  ResolveIntervals(spec),
			Complexity: ComplexityOf(spec),
			spec:       spec,
		})
	}
	return out
}()

// Catalogue returns the chord types searched for every root, in search order
func Catalogue() []ChordType {
	out := make([]ChordType, len(catalogue))
	for i, ct := range catalogue {
		out[i] = ct
		out[i].Intervals = slices.Clone(ct.Intervals)
	}
	return out
}

// lookupChordType finds the catalogue entry with the same quality, extensions and
// alterations as spec, ignoring root and bass
func lookupChordType(spec ChordSpec) (ChordType, bool) {
	for _, ct := range catalogue {
		if ct.spec.Quality == spec.Quality &&
			slices.Equal(ct.spec.Extensions, spec.Extensions) &&
			slices.Equal(ct.spec.Alterations, spec.Alterations) {
			return ct, true
		}
	}
	return ChordType{}, false
}
