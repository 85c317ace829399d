package tonal

import (
	"slices"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
)

// ResolveIntervals stacks the semitone offsets of a chord above its root.
//
// The triad comes from the quality, extensions add on top of it (9, 11 and 13 imply
// the minor seventh unless maj7 is present), then alterations rewrite or add tones.
// The result is sorted ascending without duplicates.
func ResolveIntervals(spec ChordSpec) []int {
	third, fifth := 4, 7
	switch spec.Quality {
	case Minor:
		third = 3
	case Diminished:
		third, fifth = 3, 6
	case Augmented:
		fifth = 8
	}

	offsets := []int{0, third, fifth}

	impliedSeventh := func() {
		if !spec.HasExtension(ExtMaj7) {
			offsets = append(offsets, 10)
		}
	}

	for _, ext := range spec.Extensions {
		switch ext {
		case Ext6:
			offsets = append(offsets, 9)
		case Ext7:
			offsets = append(offsets, 10)
		case ExtMaj7:
			offsets = append(offsets, 11)
		case Ext9:
			impliedSeventh()
			offsets = append(offsets, 14)
		case Ext11:
			impliedSeventh()
			offsets = append(offsets, 14, 17)
		case Ext13:
			impliedSeventh()
			offsets = append(offsets, 14, 17, 21)
		}
	}

	for _, alt := range spec.Alterations {
		switch alt {
		case AltFlat5:
			offsets = replaceOrAdd(offsets, 7, 6)
		case AltSharp5:
			offsets = replaceOrAdd(offsets, 7, 8)
		case AltDoubleFlat7:
			offsets = replaceOrAdd(offsets, 10, 9)
		case AltFlat9:
			offsets = replaceOrAdd(offsets, 14, 13)
		case AltSharp9:
			offsets = replaceOrAdd(offsets, 14, 15)
		case AltSharp11:
			offsets = replaceOrAdd(offsets, 17, 18)
		case AltFlat13:
			offsets = replaceOrAdd(offsets, 21, 20)
		case AltSus2:
			offsets = replaceThird(offsets, third, 2)
		case AltSus4:
			offsets = replaceThird(offsets, third, 5)
		case AltAdd9:
			offsets = append(offsets, 14)
		case AltAdd11:
			offsets = append(offsets, 17)
		case AltAdd13:
			offsets = append(offsets, 21)
		}
	}

	slices.Sort(offsets)
	return slices.Compact(offsets)
}

func replaceOrAdd(offsets []int, from, to int) []int {
	if i := slices.Index(offsets, from); i >= 0 {
		offsets[i] = to
		return offsets
	}
	return append(offsets, to)
}

func replaceThird(offsets []int, third, to int) []int {
	if i := slices.Index(offsets, third); i >= 0 {
		offsets[i] = to
	}
	return offsets
}

// PitchClassesOf maps the stacked offsets onto pitch classes, keeping ascending-offset
// order and the first occurrence of any pitch class that repeats
func PitchClassesOf(spec ChordSpec) []chroma.PitchClass {
	offsets := ResolveIntervals(spec)
	pcs := make([]chroma.PitchClass, len(offsets))
	for i, off := range offsets {
		pcs[i] = spec.Root.Transpose(off)
	}
	return chroma.UniquePitchClasses(pcs)
}

// Resolve builds the ChordInstance for spec, spelled with sharps
func Resolve(spec ChordSpec, model chroma.PitchModel) ChordInstance {
	return ResolveSpelled(spec, model, false)
}

// ResolveSpelled builds the ChordInstance for spec with the requested spelling
func ResolveSpelled(spec ChordSpec, model chroma.PitchModel, preferFlats bool) ChordInstance {
	symbol := spec.Symbol(model, preferFlats)
	name := symbol
	if ct, ok := lookupChordType(spec); ok {
		name = model.NameOf(spec.Root, preferFlats) + " " + ct.Name
		if spec.Bass != nil && *spec.Bass != spec.Root {
			name += " over " + model.NameOf(*spec.Bass, preferFlats)
		}
	}

	return ChordInstance{
		Spec:         spec,
		Name:         name,
		Symbol:       symbol,
		PitchClasses: PitchClassesOf(spec),
	}
}

// Transpose moves the root (and slash bass) of spec by semitones
func Transpose(spec ChordSpec, semitones int) ChordSpec {
	out := spec.Clone()
	out.Root = spec.Root.Transpose(semitones)
	if out.Bass != nil {
		b := out.Bass.Transpose(semitones)
		out.Bass = &b
	}
	return out
}
