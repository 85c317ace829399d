package tonal

import (
	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/common"
	"github.com/parkerchace/MusicTheory-sub004/logging"
)

// Function tags attached to search results
const (
	TagTonic             = "Tonic"
	TagPredominant       = "Predominant"
	TagDominant          = "Dominant"
	TagSecondaryDominant = "Secondary Dominant"
	TagBorrowed          = "Borrowed"
)

// SearchResult is one catalogue chord that contains every input pitch class
type SearchResult struct {
	Chord             ChordInstance     `json:"chord"`
	ChordType         string            `json:"chord_type"` // Catalogue name, "minor 7"
	RootName          string            `json:"root_name"`  // Root spelled for the scale's key
	ScaleMatchPercent int               `json:"scale_match_percent"`
	FunctionTags      []string          `json:"function_tags,omitempty"`
	Degree            int               `json:"degree"` // Zero-based scale degree of the root, -1 outside the scale
	Complexity        Complexity        `json:"complexity"`
	Profile           chroma.SetProfile `json:"profile"`
}

// HasTags reports whether any function tag is attached
func (r SearchResult) HasTags() bool {
	return len(r.FunctionTags) > 0
}

// SearchParams controls which catalogue entries are tried and which extras are computed
type SearchParams struct {
	MaxComplexity         Complexity `json:"max_complexity"`          // Skip catalogue entries above this
	TagSecondaryDominants bool       `json:"tag_secondary_dominants"` // Tag dominant chords of non-tonic degrees
	TagBorrowed           bool       `json:"tag_borrowed"`            // Tag chords taken from the parallel mode
	ComputeProfiles       bool       `json:"compute_profiles"`        // Attach the DFT profile of each chord
}

// DefaultSearchParams searches the whole catalogue with every tag enabled
func DefaultSearchParams() SearchParams {
	return SearchParams{
		MaxComplexity:         Extended,
		TagSecondaryDominants: true,
		TagBorrowed:           true,
		ComputeProfiles:       true,
	}
}

// ChordSearcher enumerates the catalogue over all twelve roots. It holds no mutable
// state and is safe for concurrent use.
type ChordSearcher struct {
	params    SearchParams
	model     chroma.PitchModel
	catalogue []ChordType
	logger    logging.Logger
}

// NewChordSearcher creates a searcher with default parameters
func NewChordSearcher(model chroma.PitchModel) *ChordSearcher {
	return NewChordSearcherWithParams(model, DefaultSearchParams())
}

// NewChordSearcherWithParams creates a searcher with custom parameters
func NewChordSearcherWithParams(model chroma.PitchModel, params SearchParams) *ChordSearcher {
	return &ChordSearcher{
		params:    params,
		model:     model,
		catalogue: Catalogue(),
		logger: logging.WithFields(logging.Fields{
			"component": "chord_searcher",
		}),
	}
}

// WithLogger returns a copy of the searcher that logs to l
func (cs *ChordSearcher) WithLogger(l logging.Logger) *ChordSearcher {
	out := *cs
	out.logger = logging.OrNoOp(l)
	return &out
}

// Params returns the searcher's parameters
func (cs *ChordSearcher) Params() SearchParams {
	return cs.params
}

// Search returns every catalogue chord containing all input pitch classes, roots
// 0..11 in the outer loop and catalogue order in the inner loop. An empty input or a
// set no chord contains yields no results.
func (cs *ChordSearcher) Search(input []chroma.PitchClass, scale chroma.ScaleContext) []SearchResult {
	unique := chroma.UniquePitchClasses(input)
	if len(unique) == 0 {
		cs.logger.Debug("Empty input, nothing to search")
		return nil
	}

	inputSet := chroma.NewPitchClassSet(unique...)
	scaleSet := scale.Set()
	parallelSet, hasParallel := cs.parallelSet(scale)

	var results []SearchResult
	for root := 0; root < 12; root++ {
		rootPC := chroma.PitchClass(root)
		rootName := cs.model.NameOf(rootPC, scale.PreferFlats)

		for _, ct := range cs.catalogue {
			if ct.Complexity > cs.params.MaxComplexity {
				continue
			}

			spec := ct.Spec(rootPC)
			pcs := PitchClassesOf(spec)
			chordSet := chroma.NewPitchClassSet(pcs...)
			if !chordSet.ContainsAll(inputSet) {
				continue
			}

			inScale := chordSet.Intersect(scaleSet).Len()
			result := SearchResult{
				Chord: ChordInstance{
					Spec:         spec,
					Name:         rootName + " " + ct.Name,
					Symbol:       spec.Symbol(cs.model, scale.PreferFlats),
					PitchClasses: pcs,
				},
				ChordType:         ct.Name,
				RootName:          rootName,
				ScaleMatchPercent: common.Percent(inScale, len(pcs)),
				Degree:            -1,
				Complexity:        ct.Complexity,
			}
			if deg, ok := scale.Degree(rootPC); ok {
				result.Degree = deg
			}
			result.FunctionTags = cs.functionTags(result, scale, parallelSet, hasParallel)
			if cs.params.ComputeProfiles {
				result.Profile = chroma.ComputeSetProfile(pcs)
			}

			results = append(results, result)
		}
	}

	cs.logger.Debug("Chord search completed", logging.Fields{
		"input":   len(unique),
		"scale":   scale.Name(),
		"results": len(results),
	})

	return results
}

// parallelSet resolves the parallel major/minor used for borrowed-chord tags
func (cs *ChordSearcher) parallelSet(scale chroma.ScaleContext) (chroma.PitchClassSet, bool) {
	if !cs.params.TagBorrowed {
		return 0, false
	}

	parallel, err := chroma.ParallelScaleType(scale.ScaleType)
	if err != nil {
		cs.logger.Warn("No parallel scale, borrowed tags disabled", logging.Fields{
			"scale_type": scale.ScaleType,
			"error":      err.Error(),
		})
		return 0, false
	}

	notes, err := cs.model.ScaleNotes(scale.Tonic, parallel)
	if err != nil {
		cs.logger.Warn("Parallel scale lookup failed, borrowed tags disabled", logging.Fields{
			"scale_type": parallel,
			"error":      err.Error(),
		})
		return 0, false
	}
	return chroma.NewPitchClassSet(notes...), true
}

func (cs *ChordSearcher) functionTags(r SearchResult, scale chroma.ScaleContext, parallel chroma.PitchClassSet, hasParallel bool) []string {
	var tags []string

	if tag, ok := degreeTag(r.Degree); ok {
		tags = append(tags, tag)
	}

	spec := r.Chord.Spec
	if cs.params.TagSecondaryDominants && isDominantFamily(spec) {
		target := spec.Root.Transpose(-7)
		if deg, ok := scale.Degree(target); ok && deg != 0 {
			tags = append(tags, TagSecondaryDominant)
		}
	}

	if hasParallel && r.ScaleMatchPercent < 100 && r.Complexity <= Seventh {
		if parallel.ContainsAll(r.Chord.Set()) {
			tags = append(tags, TagBorrowed)
		}
	}

	return tags
}

// degreeTag maps a zero-based scale degree to its harmonic function. Degrees past the
// seventh (8-note scales) carry no tag.
func degreeTag(degree int) (string, bool) {
	switch degree {
	case 0, 2, 5:
		return TagTonic, true
	case 1, 3:
		return TagPredominant, true
	case 4, 6:
		return TagDominant, true
	default:
		return "", false
	}
}

// isDominantFamily reports a major-third chord with a minor seventh (7, 9, 11, 13 and
// their altered forms)
func isDominantFamily(spec ChordSpec) bool {
	if spec.Quality != Major || spec.HasExtension(ExtMaj7) || spec.IsSuspended() {
		return false
	}
	return spec.HasExtension(Ext7) || spec.HasExtension(Ext9) ||
		spec.HasExtension(Ext11) || spec.HasExtension(Ext13)
}
