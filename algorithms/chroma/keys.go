package chroma

import "strings"

// AccidentalType is the kind of accidental a key signature carries
type AccidentalType string

const (
	NaturalKey AccidentalType = "natural"
	SharpKey   AccidentalType = "sharp"
	FlatKey    AccidentalType = "flat"
)

// KeySignature describes the accidentals of a major or minor key
type KeySignature struct {
	Key         string         `json:"key"`         // Canonical name, "Eb" or "C#m"
	Tonic       PitchClass     `json:"tonic"`
	Minor       bool           `json:"minor"`
	Accidentals int            `json:"accidentals"` // Number of sharps or flats
	Type        AccidentalType `json:"type"`
}

var keySignatures = func() map[string]KeySignature {
	type entry struct {
		key   string
		count int
		kind  AccidentalType
	}
	entries := []entry{
		{"C", 0, NaturalKey}, {"G", 1, SharpKey}, {"D", 2, SharpKey}, {"A", 3, SharpKey},
		{"E", 4, SharpKey}, {"B", 5, SharpKey}, {"F#", 6, SharpKey}, {"C#", 7, SharpKey},
		{"F", 1, FlatKey}, {"Bb", 2, FlatKey}, {"Eb", 3, FlatKey}, {"Ab", 4, FlatKey},
		{"Db", 5, FlatKey}, {"Gb", 6, FlatKey}, {"Cb", 7, FlatKey},

		{"Am", 0, NaturalKey}, {"Em", 1, SharpKey}, {"Bm", 2, SharpKey}, {"F#m", 3, SharpKey},
		{"C#m", 4, SharpKey}, {"G#m", 5, SharpKey}, {"D#m", 6, SharpKey}, {"A#m", 7, SharpKey},
		{"Dm", 1, FlatKey}, {"Gm", 2, FlatKey}, {"Cm", 3, FlatKey}, {"Fm", 4, FlatKey},
		{"Bbm", 5, FlatKey}, {"Ebm", 6, FlatKey}, {"Abm", 7, FlatKey},
	}

	out := make(map[string]KeySignature, len(entries))
	for _, e := range entries {
		minor := strings.HasSuffix(e.key, "m")
		tonic, err := ParsePitchClass(strings.TrimSuffix(e.key, "m"))
		if err != nil {
			panic(err)
		}
		out[e.key] = KeySignature{
			Key:         e.key,
			Tonic:       tonic,
			Minor:       minor,
			Accidentals: e.count,
			Type:        e.kind,
		}
	}
	return out
}()

// normalizeKeyName maps "A minor", "a min", "Amin" and "Am" to "Am", "Eb major" to "Eb"
func normalizeKeyName(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}

	lower := strings.ToLower(key)
	minor := false
	for _, suffix := range []string{" minor", "minor", " min", "min", "m"} {
		if strings.HasSuffix(lower, suffix) && len(key) > len(suffix) {
			key = strings.TrimSpace(key[:len(key)-len(suffix)])
			minor = true
			break
		}
	}
	if !minor {
		for _, suffix := range []string{" major", "major", " maj", "maj"} {
			if strings.HasSuffix(lower, suffix) && len(key) > len(suffix) {
				key = strings.TrimSpace(key[:len(key)-len(suffix)])
				break
			}
		}
	}

	key = strings.NewReplacer("♯", "#", "♭", "b").Replace(key)
	key = strings.ToUpper(key[:1]) + key[1:]
	if minor {
		key += "m"
	}
	return key
}

// LookupKeySignature finds the signature for a key name
func LookupKeySignature(key string) (KeySignature, bool) {
	sig, ok := keySignatures[normalizeKeyName(key)]
	return sig, ok
}
