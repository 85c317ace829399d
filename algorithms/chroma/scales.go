package chroma

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnknownScale is returned for scale types outside the catalogue
	ErrUnknownScale = errors.New("unknown scale type")

	// ErrScaleTooSmall is returned when a scale context would hold fewer than seven members
	ErrScaleTooSmall = errors.New("scale context needs at least 7 members")
)

// MinScaleSize is the smallest scale a ScaleContext accepts
const MinScaleSize = 7

// Interval patterns above the tonic. Every entry has at least seven members so it can
// back a ScaleContext.
var scaleIntervals = map[string][]int{
	"major":             {0, 2, 4, 5, 7, 9, 11},
	"natural_minor":     {0, 2, 3, 5, 7, 8, 10},
	"harmonic_minor":    {0, 2, 3, 5, 7, 8, 11},
	"melodic_minor":     {0, 2, 3, 5, 7, 9, 11},
	"dorian":            {0, 2, 3, 5, 7, 9, 10},
	"phrygian":          {0, 1, 3, 5, 7, 8, 10},
	"lydian":            {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":        {0, 2, 4, 5, 7, 9, 10},
	"locrian":           {0, 1, 3, 5, 6, 8, 10},
	"harmonic_major":    {0, 2, 4, 5, 7, 8, 11},
	"double_harmonic":   {0, 1, 4, 5, 7, 8, 11},
	"phrygian_dominant": {0, 1, 4, 5, 7, 8, 10},
	"lydian_dominant":   {0, 2, 4, 6, 7, 9, 10},
	"altered":           {0, 1, 3, 4, 6, 8, 10},
	"hungarian_minor":   {0, 2, 3, 6, 7, 8, 11},
	"neapolitan_major":  {0, 1, 3, 5, 7, 9, 11},
	"neapolitan_minor":  {0, 1, 3, 5, 7, 8, 11},
	"bebop_dominant":    {0, 2, 4, 5, 7, 9, 10, 11},
	"bebop_major":       {0, 2, 4, 5, 7, 8, 9, 11},
	"octatonic_hw":      {0, 1, 3, 4, 6, 7, 9, 10},
	"octatonic_wh":      {0, 2, 3, 5, 6, 8, 9, 11},
}

var scaleAliases = map[string]string{
	"ionian":           "major",
	"minor":            "natural_minor",
	"aeolian":          "natural_minor",
	"super_locrian":    "altered",
	"diminished":       "octatonic_wh",
	"half_whole":       "octatonic_hw",
	"whole_half":       "octatonic_wh",
	"spanish_phrygian": "phrygian_dominant",
}

// CanonicalScaleType normalizes a scale name ("Harmonic Minor", "harmonic-minor",
// "aeolian") to its catalogue key
func CanonicalScaleType(scaleType string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(scaleType))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if alias, ok := scaleAliases[key]; ok {
		key = alias
	}
	if _, ok := scaleIntervals[key]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownScale, scaleType)
	}
	return key, nil
}

// ScaleIntervals returns a copy of the interval pattern for scaleType
func ScaleIntervals(scaleType string) ([]int, error) {
	key, err := CanonicalScaleType(scaleType)
	if err != nil {
		return nil, err
	}
	return slices.Clone(scaleIntervals[key]), nil
}

// ScaleTypes lists the catalogue keys alphabetically
func ScaleTypes() []string {
	out := make([]string, 0, len(scaleIntervals))
	for k := range scaleIntervals {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// ParallelScaleType returns the parallel major or natural minor used for modal borrowing.
// Scales with a major third borrow from natural minor and vice versa.
func ParallelScaleType(scaleType string) (string, error) {
	intervals, err := ScaleIntervals(scaleType)
	if err != nil {
		return "", err
	}
	if slices.Contains(intervals, 4) {
		return "natural_minor", nil
	}
	return "major", nil
}

// ScaleContext is the key a search is graded against. Members are in scale-degree order.
type ScaleContext struct {
	Tonic       PitchClass   `json:"tonic"`
	ScaleType   string       `json:"scale_type"`
	Members     []PitchClass `json:"members"`
	PreferFlats bool         `json:"prefer_flats"` // Spelling taken from the key signature
}

// NewScaleContext resolves the scale through model and validates it
func NewScaleContext(model PitchModel, tonic PitchClass, scaleType string) (ScaleContext, error) {
	key, err := CanonicalScaleType(scaleType)
	if err != nil {
		return ScaleContext{}, err
	}

	members, err := model.ScaleNotes(tonic, key)
	if err != nil {
		return ScaleContext{}, err
	}
	members = UniquePitchClasses(members)
	if len(members) < MinScaleSize {
		return ScaleContext{}, fmt.Errorf("%w: %s has %d", ErrScaleTooSmall, key, len(members))
	}

	return ScaleContext{
		Tonic:       Mod12(int(tonic)),
		ScaleType:   key,
		Members:     members,
		PreferFlats: preferFlats(model, Mod12(int(tonic)), !slices.Contains(scaleIntervals[key], 4)),
	}, nil
}

// ParseScaleContext is NewScaleContext with a spelled tonic ("Eb", "F#")
func ParseScaleContext(model PitchModel, tonic, scaleType string) (ScaleContext, error) {
	pc, err := model.PitchClassOf(tonic)
	if err != nil {
		return ScaleContext{}, err
	}
	return NewScaleContext(model, pc, scaleType)
}

// Contains reports whether pc belongs to the scale
func (s ScaleContext) Contains(pc PitchClass) bool {
	return slices.Contains(s.Members, Mod12(int(pc)))
}

// Degree returns the zero-based scale-degree index of pc
func (s ScaleContext) Degree(pc PitchClass) (int, bool) {
	idx := slices.Index(s.Members, Mod12(int(pc)))
	return idx, idx >= 0
}

// Set returns the members as a bit set
func (s ScaleContext) Set() PitchClassSet {
	return NewPitchClassSet(s.Members...)
}

// Name spells the context, e.g. "Eb major"
func (s ScaleContext) Name() string {
	return PitchClassName(s.Tonic, s.PreferFlats) + " " + strings.ReplaceAll(s.ScaleType, "_", " ")
}

// preferFlats picks the spelling of the key signature with fewer accidentals.
// Enharmonic ties (F#/Gb) keep sharps.
func preferFlats(model PitchModel, tonic PitchClass, minor bool) bool {
	suffix := ""
	if minor {
		suffix = "m"
	}

	sharpName := model.NameOf(tonic, false)
	flatName := model.NameOf(tonic, true)
	sharpSig, sharpOK := model.KeySignature(sharpName + suffix)
	flatSig, flatOK := model.KeySignature(flatName + suffix)

	switch {
	case sharpName == flatName:
		return sharpOK && sharpSig.Type == FlatKey
	case sharpOK && flatOK:
		return flatSig.Accidentals < sharpSig.Accidentals
	default:
		return flatOK
	}
}
