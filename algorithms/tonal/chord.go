package tonal

import (
	"slices"
	"strings"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
)

// Quality is the triad quality of a chord
type Quality int

const (
	Major Quality = iota
	Minor
	Diminished
	Augmented
)

func (q Quality) String() string {
	switch q {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Diminished:
		return "diminished"
	case Augmented:
		return "augmented"
	default:
		return "unknown"
	}
}

// Extension is a stacked chord extension
type Extension int

const (
	Ext6 Extension = iota
	Ext7
	ExtMaj7
	Ext9
	Ext11
	Ext13
)

func (e Extension) String() string {
	switch e {
	case Ext6:
		return "6"
	case Ext7:
		return "7"
	case ExtMaj7:
		return "maj7"
	case Ext9:
		return "9"
	case Ext11:
		return "11"
	case Ext13:
		return "13"
	default:
		return "?"
	}
}

// Alteration modifies stacked tones or adds a tone
type Alteration int

const (
	AltFlat5 Alteration = iota
	AltSharp5
	AltFlat9
	AltSharp9
	AltSharp11
	AltFlat13
	AltDoubleFlat7
	AltSus2
	AltSus4
	AltAdd9
	AltAdd11
	AltAdd13
)

func (a Alteration) String() string {
	switch a {
	case AltFlat5:
		return "b5"
	case AltSharp5:
		return "#5"
	case AltFlat9:
		return "b9"
	case AltSharp9:
		return "#9"
	case AltSharp11:
		return "#11"
	case AltFlat13:
		return "b13"
	case AltDoubleFlat7:
		return "bb7"
	case AltSus2:
		return "sus2"
	case AltSus4:
		return "sus4"
	case AltAdd9:
		return "add9"
	case AltAdd11:
		return "add11"
	case AltAdd13:
		return "add13"
	default:
		return "?"
	}
}

// ChordSpec is a parsed chord symbol. Extensions and Alterations are kept sorted and
// duplicate-free so two specs for the same chord compare equal.
type ChordSpec struct {
	Root        chroma.PitchClass  `json:"root"`
	Quality     Quality            `json:"quality"`
	Extensions  []Extension        `json:"extensions,omitempty"`
	Alterations []Alteration       `json:"alterations,omitempty"`
	Bass        *chroma.PitchClass `json:"bass,omitempty"` // Slash bass, nil when the root is the bass
}

// HasExtension reports whether e is present
func (s ChordSpec) HasExtension(e Extension) bool {
	return slices.Contains(s.Extensions, e)
}

// HasAlteration reports whether a is present
func (s ChordSpec) HasAlteration(a Alteration) bool {
	return slices.Contains(s.Alterations, a)
}

// BassPitchClass returns the slash bass or, without one, the root
func (s ChordSpec) BassPitchClass() chroma.PitchClass {
	if s.Bass != nil {
		return *s.Bass
	}
	return s.Root
}

// IsSuspended reports a sus2 or sus4 chord
func (s ChordSpec) IsSuspended() bool {
	return s.HasAlteration(AltSus2) || s.HasAlteration(AltSus4)
}

// Clone returns a deep copy
func (s ChordSpec) Clone() ChordSpec {
	out := s
	out.Extensions = slices.Clone(s.Extensions)
	out.Alterations = slices.Clone(s.Alterations)
	if s.Bass != nil {
		b := *s.Bass
		out.Bass = &b
	}
	return out
}

// Symbol spells the spec back into a chord symbol using model for note names
func (s ChordSpec) Symbol(model chroma.PitchModel, preferFlats bool) string {
	var b strings.Builder
	b.WriteString(model.NameOf(s.Root, preferFlats))
	b.WriteString(s.suffix())
	if s.Bass != nil && *s.Bass != s.Root {
		b.WriteString("/")
		b.WriteString(model.NameOf(*s.Bass, preferFlats))
	}
	return b.String()
}

// suffix renders quality, extensions and alterations in the form the parser accepts
func (s ChordSpec) suffix() string {
	var b strings.Builder

	alts := slices.Clone(s.Alterations)
	halfDim := s.Quality == Minor && s.HasExtension(Ext7) && s.HasAlteration(AltFlat5)
	dim7 := s.Quality == Diminished && s.HasExtension(Ext7) && s.HasAlteration(AltDoubleFlat7)

	switch {
	case dim7:
		b.WriteString("dim")
		alts = slices.DeleteFunc(alts, func(a Alteration) bool { return a == AltDoubleFlat7 })
	case s.Quality == Minor:
		b.WriteString("m")
	case s.Quality == Diminished:
		b.WriteString("dim")
	case s.Quality == Augmented:
		b.WriteString("aug")
	}

	top := s.topExtension()
	switch {
	case s.HasExtension(ExtMaj7) && s.Quality == Minor:
		b.WriteString("(maj")
		if top == Ext7 || top == ExtMaj7 {
			b.WriteString("7")
		} else {
			b.WriteString(top.String())
		}
		b.WriteString(")")
	case s.HasExtension(ExtMaj7):
		b.WriteString("maj")
		if top == ExtMaj7 {
			b.WriteString("7")
		} else {
			b.WriteString(top.String())
		}
	case len(s.Extensions) > 0:
		b.WriteString(top.String())
	}

	if halfDim {
		// m7b5 reads better than m7(b5)
		alts = slices.DeleteFunc(alts, func(a Alteration) bool { return a == AltFlat5 })
		b.WriteString("b5")
	}
	for _, a := range alts {
		b.WriteString(a.String())
	}
	return b.String()
}

// topExtension returns the highest extension
func (s ChordSpec) topExtension() Extension {
	if len(s.Extensions) == 0 {
		return Ext7
	}
	return s.Extensions[len(s.Extensions)-1]
}

// Complexity buckets a chord by how many tones it stacks
type Complexity int

const (
	Triad Complexity = iota
	Seventh
	Extended
)

func (c Complexity) String() string {
	switch c {
	case Triad:
		return "triad"
	case Seventh:
		return "seventh"
	default:
		return "extended"
	}
}

// ParseComplexity reads "triad", "seventh" or "extended"
func ParseComplexity(s string) (Complexity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "triad":
		return Triad, true
	case "seventh":
		return Seventh, true
	case "extended", "":
		return Extended, true
	default:
		return Extended, false
	}
}

// ComplexityOf classifies a spec: no extensions and no added tones is a triad, a lone
// 6/7/maj7 is a seventh chord, anything else is extended
func ComplexityOf(spec ChordSpec) Complexity {
	added := false
	tensions := false
	for _, a := range spec.Alterations {
		switch a {
		case AltAdd9, AltAdd11, AltAdd13:
			added = true
		case AltFlat9, AltSharp9, AltSharp11, AltFlat13:
			tensions = true
		}
	}

	if len(spec.Extensions) == 0 {
		if added || tensions {
			return Extended
		}
		return Triad
	}

	for _, e := range spec.Extensions {
		if e != Ext6 && e != Ext7 && e != ExtMaj7 {
			return Extended
		}
	}
	if added || tensions {
		return Extended
	}
	return Seventh
}

// ChordInstance is a resolved chord: its spec, display name, symbol and pitch classes
// in ascending offset order without duplicates
type ChordInstance struct {
	Spec         ChordSpec           `json:"spec"`
	Name         string              `json:"name"`   // "C major", "A minor 7"
	Symbol       string              `json:"symbol"` // "C", "Am7"
	PitchClasses []chroma.PitchClass `json:"pitch_classes"`
}

// Set returns the chord tones as a bit set
func (c ChordInstance) Set() chroma.PitchClassSet {
	return chroma.NewPitchClassSet(c.PitchClasses...)
}
