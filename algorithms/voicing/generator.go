package voicing

import (
	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/tonal"
)

// Pools holds the candidate notes for each voice, ascending, indexed by Voice
type Pools [4][]chroma.Note

// Empty reports whether any voice has no candidate
func (p Pools) Empty() bool {
	for _, pool := range p {
		if len(pool) == 0 {
			return true
		}
	}
	return false
}

// Generator lists in-range candidate pitches for a chord. It selects nothing.
type Generator struct {
	ranges Ranges
}

// NewGenerator creates a generator over the given registers
func NewGenerator(ranges Ranges) *Generator {
	return &Generator{ranges: ranges}
}

// Candidates returns every in-range pitch of the bass pitch class for the bass, and
// every in-range chord tone for the upper voices
func (g *Generator) Candidates(spec tonal.ChordSpec) Pools {
	tones := chroma.NewPitchClassSet(tonal.PitchClassesOf(spec)...)
	bass := chroma.NewPitchClassSet(spec.BassPitchClass())

	var pools Pools
	for _, v := range Voices {
		allowed := tones
		if v == Bass {
			allowed = bass
		}
		rg := g.ranges.For(v)
		for n := rg.Low; n <= rg.High; n++ {
			if allowed.Contains(n.PitchClass()) {
				pools[v] = append(pools[v], n)
			}
		}
	}
	return pools
}
