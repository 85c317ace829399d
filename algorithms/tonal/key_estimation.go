package tonal

import (
	"cmp"
	"slices"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/common"
	"github.com/parkerchace/MusicTheory-sub004/logging"
)

// KeyProfile selects the tonal hierarchy that pitch-class weights are correlated with
type KeyProfile int

const (
	KeyProfileKrumhansl KeyProfile = iota
	KeyProfileTemperley
	KeyProfileDiatonic
)

func (p KeyProfile) String() string {
	switch p {
	case KeyProfileKrumhansl:
		return "krumhansl"
	case KeyProfileTemperley:
		return "temperley"
	case KeyProfileDiatonic:
		return "diatonic"
	default:
		return "unknown"
	}
}

// KeyMode is major or minor
type KeyMode int

const (
	KeyModeMajor KeyMode = iota
	KeyModeMinor
)

// ScaleType returns the catalogue scale for the mode
func (m KeyMode) ScaleType() string {
	if m == KeyModeMinor {
		return "natural_minor"
	}
	return "major"
}

// keyProfileTemplate holds one weight per scale degree, tonic first
type keyProfileTemplate struct {
	Major [12]float64
	Minor [12]float64
}

var keyProfiles = map[KeyProfile]keyProfileTemplate{
	// Krumhansl-Schmuckler probe-tone ratings
	KeyProfileKrumhansl: {
		Major: [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88},
		Minor: [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17},
	},
	KeyProfileTemperley: {
		Major: [12]float64{5.0, 2.0, 3.5, 2.0, 4.5, 4.0, 2.0, 4.5, 2.0, 3.5, 1.5, 4.0},
		Minor: [12]float64{5.0, 2.0, 3.5, 4.5, 2.0, 4.0, 2.0, 4.5, 3.5, 2.0, 1.5, 4.0},
	},
	KeyProfileDiatonic: {
		Major: [12]float64{5.0, 0.0, 3.0, 0.0, 4.0, 3.5, 0.0, 4.5, 0.0, 3.0, 0.0, 2.0},
		Minor: [12]float64{5.0, 0.0, 3.0, 3.5, 0.0, 3.5, 0.0, 4.5, 3.0, 0.0, 2.0, 0.0},
	},
}

// KeyCandidate is one of the 24 major and minor keys with its correlation score
type KeyCandidate struct {
	Tonic       chroma.PitchClass `json:"tonic"`
	Mode        KeyMode           `json:"mode"`
	Name        string            `json:"name"`        // "A natural minor"
	Correlation float64           `json:"correlation"` // Pearson r against the rotated profile
}

// KeyEstimationResult ranks keys for one pitch-class histogram
type KeyEstimationResult struct {
	Best       KeyCandidate   `json:"best"`
	Candidates []KeyCandidate `json:"candidates"`
	Clarity    float64        `json:"clarity"` // Best minus runner-up correlation
	Weights    [12]float64    `json:"weights"` // Input histogram, C first
	Profile    string         `json:"profile"`
}

// KeyEstimationParams configures key estimation
type KeyEstimationParams struct {
	Profile       KeyProfile `json:"profile"`
	MaxCandidates int        `json:"max_candidates"` // Candidates kept in the result
	RootWeight    float64    `json:"root_weight"`    // Extra weight for chord roots
	BassWeight    float64    `json:"bass_weight"`    // Extra weight for slash basses
}

// DefaultKeyEstimationParams uses Krumhansl profiles and doubles chord roots
func DefaultKeyEstimationParams() KeyEstimationParams {
	return KeyEstimationParams{
		Profile:       KeyProfileKrumhansl,
		MaxCandidates: 5,
		RootWeight:    1.0,
		BassWeight:    0.5,
	}
}

// KeyEstimator finds the most likely key of a pitch-class distribution
type KeyEstimator struct {
	params KeyEstimationParams
	model  chroma.PitchModel
	logger logging.Logger
}

// NewKeyEstimator creates an estimator with default parameters
func NewKeyEstimator(model chroma.PitchModel) *KeyEstimator {
	return NewKeyEstimatorWithParams(model, DefaultKeyEstimationParams())
}

// NewKeyEstimatorWithParams creates an estimator with custom parameters
func NewKeyEstimatorWithParams(model chroma.PitchModel, params KeyEstimationParams) *KeyEstimator {
	if _, ok := keyProfiles[params.Profile]; !ok {
		params.Profile = KeyProfileKrumhansl
	}
	if params.MaxCandidates <= 0 {
		params.MaxCandidates = DefaultKeyEstimationParams().MaxCandidates
	}
	return &KeyEstimator{
		params: params,
		model:  model,
		logger: logging.WithFields(logging.Fields{
			"component": "key_estimator",
		}),
	}
}

// WithLogger returns a copy of the estimator that logs to l
func (ke *KeyEstimator) WithLogger(l logging.Logger) *KeyEstimator {
	out := *ke
	out.logger = logging.OrNoOp(l)
	return &out
}

// EstimateKey correlates weights (index = pitch class) with all 24 rotated profiles.
// Ties keep major before minor and lower tonics first.
func (ke *KeyEstimator) EstimateKey(weights [12]float64) KeyEstimationResult {
	profile := keyProfiles[ke.params.Profile]

	candidates := make([]KeyCandidate, 0, 24)
	for tonic := 0; tonic < 12; tonic++ {
		for _, mode := range []KeyMode{KeyModeMajor, KeyModeMinor} {
			tmpl := profile.Major
			if mode == KeyModeMinor {
				tmpl = profile.Minor
			}
			r := common.Correlation(weights[:], rotateProfile(tmpl, tonic))
			candidates = append(candidates, KeyCandidate{
				Tonic:       chroma.PitchClass(tonic),
				Mode:        mode,
				Name:        ke.keyName(chroma.PitchClass(tonic), mode),
				Correlation: r,
			})
		}
	}

	slices.SortStableFunc(candidates, func(a, b KeyCandidate) int {
		return cmp.Compare(b.Correlation, a.Correlation)
	})

	result := KeyEstimationResult{
		Best:    candidates[0],
		Clarity: candidates[0].Correlation - candidates[1].Correlation,
		Weights: weights,
		Profile: ke.params.Profile.String(),
	}
	result.Candidates = candidates[:min(ke.params.MaxCandidates, len(candidates))]

	ke.logger.Debug("Key estimated", logging.Fields{
		"key":         result.Best.Name,
		"correlation": result.Best.Correlation,
		"clarity":     result.Clarity,
		"mass":        common.Sum(weights[:]),
	})

	return result
}

// EstimateKeyFromChords builds a histogram from chord tones, adding RootWeight to each
// root and BassWeight to each slash bass, and estimates its key
func (ke *KeyEstimator) EstimateKeyFromChords(specs []ChordSpec) KeyEstimationResult {
	var weights [12]float64
	for _, spec := range specs {
		for _, pc := range PitchClassesOf(spec) {
			weights[pc]++
		}
		weights[spec.Root] += ke.params.RootWeight
		if spec.Bass != nil && *spec.Bass != spec.Root {
			weights[*spec.Bass] += ke.params.BassWeight
		}
	}
	return ke.EstimateKey(weights)
}

// Scale returns the scale context of a candidate key
func (c KeyCandidate) Scale(model chroma.PitchModel) (chroma.ScaleContext, error) {
	return chroma.NewScaleContext(model, c.Tonic, c.Mode.ScaleType())
}

func (ke *KeyEstimator) keyName(tonic chroma.PitchClass, mode KeyMode) string {
	scale, err := chroma.NewScaleContext(ke.model, tonic, mode.ScaleType())
	if err != nil {
		return ke.model.NameOf(tonic, false) + " " + mode.ScaleType()
	}
	return scale.Name()
}

// rotateProfile moves a tonic-first template so index i holds the weight of pitch class i
func rotateProfile(tmpl [12]float64, tonic int) []float64 {
	out := make([]float64, 12)
	for i := range out {
		out[i] = tmpl[common.Mod12(i-tonic)]
	}
	return out
}
