package tonal

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
)

// GroupStrategy selects how results are bucketed
type GroupStrategy string

const (
	GroupByFit    GroupStrategy = "fit"
	GroupByRoot   GroupStrategy = "root"
	GroupByFamily GroupStrategy = "family"
)

// ParseGroupStrategy validates a strategy name
func ParseGroupStrategy(s string) (GroupStrategy, error) {
	switch GroupStrategy(s) {
	case GroupByFit, GroupByRoot, GroupByFamily:
		return GroupStrategy(s), nil
	default:
		return "", fmt.Errorf("unknown group strategy %q", s)
	}
}

// Group is a named bucket of graded results
type Group struct {
	Name      string         `json:"name"`
	Results   []GradedResult `json:"results,omitempty"`
	Count     int            `json:"count"`
	Collapsed bool           `json:"collapsed,omitempty"` // Set by ApplyView for closed groups
}

// Fit buckets
const (
	FitTight    = "Tight"
	FitBalanced = "Balanced"
	FitRich     = "Rich"
)

// Family is a coarse chord family
type Family string

const (
	FamilyMajor      Family = "Major"
	FamilyMinor      Family = "Minor"
	FamilyDominant   Family = "Dominant"
	FamilySuspended  Family = "Suspended"
	FamilyAltered    Family = "Altered"
	FamilyAugmented  Family = "Augmented"
	FamilyDiminished Family = "Diminished"
	FamilyOther      Family = "Other"
)

var familyOrder = []Family{
	FamilyMajor, FamilyMinor, FamilyDominant, FamilySuspended,
	FamilyAltered, FamilyAugmented, FamilyDiminished, FamilyOther,
}

// FamilyOf classifies spec by priority Altered > Suspended > Diminished > Augmented >
// Dominant > Minor > Major
func FamilyOf(spec ChordSpec) Family {
	tension := spec.HasAlteration(AltFlat9) || spec.HasAlteration(AltSharp9) ||
		spec.HasAlteration(AltSharp11) || spec.HasAlteration(AltFlat13)

	switch {
	case tension || (isDominantFamily(spec) && spec.HasAlteration(AltFlat5)):
		return FamilyAltered
	case spec.IsSuspended():
		return FamilySuspended
	case spec.Quality == Diminished || (spec.Quality == Minor && spec.HasAlteration(AltFlat5)):
		return FamilyDiminished
	case spec.Quality == Augmented:
		return FamilyAugmented
	case isDominantFamily(spec):
		return FamilyDominant
	case spec.Quality == Minor:
		return FamilyMinor
	case spec.Quality == Major:
		return FamilyMajor
	default:
		return FamilyOther
	}
}

// FitBucket names the fit bucket for a chord with extra tones beyond the input
func FitBucket(extra int) string {
	switch {
	case extra <= 1:
		return FitTight
	case extra <= 3:
		return FitBalanced
	default:
		return FitRich
	}
}

// CoreToneMatches counts input pitch classes among the chord's root, third, fifth and
// sixth/seventh (every offset below the octave)
func CoreToneMatches(spec ChordSpec, input []chroma.PitchClass) int {
	var core chroma.PitchClassSet
	for _, off := range ResolveIntervals(spec) {
		if off < 12 {
			core |= chroma.NewPitchClassSet(spec.Root.Transpose(off))
		}
	}

	n := 0
	for _, pc := range chroma.UniquePitchClasses(input) {
		if core.Contains(pc) {
			n++
		}
	}
	return n
}

// GroupResults buckets results by strategy. Empty buckets are omitted and every sort is
// stable, so search order breaks ties.
func GroupResults(results []SearchResult, input []chroma.PitchClass, strategy GroupStrategy) ([]Group, error) {
	graded := GradeAll(results)

	switch strategy {
	case GroupByFit:
		return groupByFit(graded, input), nil
	case GroupByRoot:
		return groupByRoot(graded), nil
	case GroupByFamily:
		return groupByFamily(graded), nil
	default:
		return nil, fmt.Errorf("unknown group strategy %q", strategy)
	}
}

func groupByFit(graded []GradedResult, input []chroma.PitchClass) []Group {
	inputSize := len(chroma.UniquePitchClasses(input))
	buckets := map[string][]GradedResult{}
	for _, r := range graded {
		name := FitBucket(len(r.Chord.PitchClasses) - inputSize)
		buckets[name] = append(buckets[name], r)
	}

	var groups []Group
	for _, name := range []string{FitTight, FitBalanced, FitRich} {
		members := buckets[name]
		if len(members) == 0 {
			continue
		}
		slices.SortStableFunc(members, func(a, b GradedResult) int {
			return cmp.Or(
				cmp.Compare(CoreToneMatches(b.Chord.Spec, input), CoreToneMatches(a.Chord.Spec, input)),
				cmp.Compare(b.ScaleMatchPercent, a.ScaleMatchPercent),
				cmp.Compare(b.Grade, a.Grade),
			)
		})
		groups = append(groups, Group{Name: name, Results: members, Count: len(members)})
	}
	return groups
}

func groupByRoot(graded []GradedResult) []Group {
	buckets := map[string][]GradedResult{}
	var names []string
	for _, r := range graded {
		if _, ok := buckets[r.RootName]; !ok {
			names = append(names, r.RootName)
		}
		buckets[r.RootName] = append(buckets[r.RootName], r)
	}
	slices.Sort(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		members := buckets[name]
		sortByGradeDesc(members)
		groups = append(groups, Group{Name: name, Results: members, Count: len(members)})
	}
	return groups
}

func groupByFamily(graded []GradedResult) []Group {
	buckets := map[Family][]GradedResult{}
	for _, r := range graded {
		f := FamilyOf(r.Chord.Spec)
		buckets[f] = append(buckets[f], r)
	}

	var groups []Group
	for _, f := range familyOrder {
		members := buckets[f]
		if len(members) == 0 {
			continue
		}
		sortByGradeDesc(members)
		groups = append(groups, Group{Name: string(f), Results: members, Count: len(members)})
	}
	return groups
}

func sortByGradeDesc(rs []GradedResult) {
	slices.SortStableFunc(rs, func(a, b GradedResult) int {
		return cmp.Compare(b.Grade, a.Grade)
	})
}
