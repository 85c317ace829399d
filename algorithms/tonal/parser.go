package tonal

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
)

// Sentinel errors a *ParseError unwraps to
var (
	ErrNoRoot            = errors.New("chord symbol has no root")
	ErrUnrecognizedToken = errors.New("unrecognized token in chord symbol")
	ErrUnknownQuality    = errors.New("conflicting chord quality")
)

// ParseReason classifies a parse failure
type ParseReason int

const (
	NoRoot ParseReason = iota + 1
	UnrecognizedToken
	UnknownQuality
)

func (r ParseReason) String() string {
	switch r {
	case NoRoot:
		return "no root"
	case UnrecognizedToken:
		return "unrecognized token"
	case UnknownQuality:
		return "unknown quality"
	default:
		return "unknown"
	}
}

// ParseError reports why a chord symbol was rejected
type ParseError struct {
	Symbol string
	Reason ParseReason
	Token  string // Offending text, empty for NoRoot
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("parse %q: %s %q", e.Symbol, e.Reason, e.Token)
	}
	return fmt.Sprintf("parse %q: %s", e.Symbol, e.Reason)
}

func (e *ParseError) Unwrap() error {
	switch e.Reason {
	case NoRoot:
		return ErrNoRoot
	case UnrecognizedToken:
		return ErrUnrecognizedToken
	case UnknownQuality:
		return ErrUnknownQuality
	default:
		return nil
	}
}

var rootOffsets = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// parseRootToken reads [A-G] plus one optional accidental and returns the bytes consumed
func parseRootToken(s string) (chroma.PitchClass, int, bool) {
	if s == "" {
		return 0, 0, false
	}
	base, ok := rootOffsets[s[0]]
	if !ok {
		return 0, 0, false
	}

	rest := s[1:]
	switch {
	case strings.HasPrefix(rest, "#"):
		return chroma.Mod12(base + 1), 2, true
	case strings.HasPrefix(rest, "♯"):
		return chroma.Mod12(base + 1), 1 + len("♯"), true
	case strings.HasPrefix(rest, "♭"):
		return chroma.Mod12(base - 1), 1 + len("♭"), true
	case strings.HasPrefix(rest, "b"):
		return chroma.Mod12(base - 1), 2, true
	default:
		return chroma.Mod12(base), 1, true
	}
}

type qualityToken struct {
	text    string
	quality Quality
}

// Longest first so "min" wins over "m"
var qualityTokens = []qualityToken{
	{"minor", Minor},
	{"min", Minor},
	{"dim", Diminished},
	{"aug", Augmented},
	{"°", Diminished},
	{"+", Augmented},
	{"-", Minor},
	{"m", Minor},
}

// matchQuality finds a quality marker at the start of s. "maj" never reads as minor.
func matchQuality(s string) (qualityToken, bool) {
	if hasMajPrefix(s) {
		return qualityToken{}, false
	}
	for _, qt := range qualityTokens {
		if strings.HasPrefix(s, qt.text) {
			return qt, true
		}
	}
	return qualityToken{}, false
}

func hasMajPrefix(s string) bool {
	return len(s) >= 3 && strings.EqualFold(s[:3], "maj")
}

type extensionToken struct {
	text string
	exts []Extension
}

// Major-seventh family, matched case-insensitively for "maj"
var majExtensionTokens = []extensionToken{
	{"maj13", []Extension{ExtMaj7, Ext13}},
	{"maj11", []Extension{ExtMaj7, Ext11}},
	{"maj9", []Extension{ExtMaj7, Ext9}},
	{"maj7", []Extension{ExtMaj7}},
	{"M13", []Extension{ExtMaj7, Ext13}},
	{"M11", []Extension{ExtMaj7, Ext11}},
	{"M9", []Extension{ExtMaj7, Ext9}},
	{"M7", []Extension{ExtMaj7}},
	{"Δ13", []Extension{ExtMaj7, Ext13}},
	{"Δ9", []Extension{ExtMaj7, Ext9}},
	{"Δ7", []Extension{ExtMaj7}},
	{"Δ", []Extension{ExtMaj7}},
}

var plainExtensionTokens = []extensionToken{
	{"13", []Extension{Ext13}},
	{"11", []Extension{Ext11}},
	{"9", []Extension{Ext9}},
	{"7", []Extension{Ext7}},
	{"6", []Extension{Ext6}},
}

func matchMajExtension(s string) (extensionToken, bool) {
	for _, et := range majExtensionTokens {
		if strings.HasPrefix(et.text, "maj") {
			if len(s) >= len(et.text) && strings.EqualFold(s[:len(et.text)], et.text) {
				return et, true
			}
			continue
		}
		if strings.HasPrefix(s, et.text) {
			return et, true
		}
	}
	return extensionToken{}, false
}

func matchPlainExtension(s string) (extensionToken, bool) {
	for _, et := range plainExtensionTokens {
		if strings.HasPrefix(s, et.text) {
			return et, true
		}
	}
	return extensionToken{}, false
}

type alterationToken struct {
	text string
	alt  Alteration
}

// Longest first so "add13" wins over "add1..." and "b13" over "b1..."
var alterationTokens = []alterationToken{
	{"add13", AltAdd13},
	{"add11", AltAdd11},
	{"add9", AltAdd9},
	{"add2", AltAdd9},
	{"sus2", AltSus2},
	{"sus4", AltSus4},
	{"sus", AltSus4},
	{"bb7", AltDoubleFlat7},
	{"b13", AltFlat13},
	{"#11", AltSharp11},
	{"b9", AltFlat9},
	{"#9", AltSharp9},
	{"b5", AltFlat5},
	{"#5", AltSharp5},
	{"♭13", AltFlat13},
	{"♯11", AltSharp11},
	{"♭9", AltFlat9},
	{"♯9", AltSharp9},
	{"♭5", AltFlat5},
	{"♯5", AltSharp5},
	{"+5", AltSharp5},
	{"-5", AltFlat5},
}

func matchAlteration(s string) (alterationToken, bool) {
	for _, at := range alterationTokens {
		if strings.HasPrefix(s, at.text) {
			return at, true
		}
	}
	return alterationToken{}, false
}

// ParseChord turns a chord symbol such as "Cmaj7", "F#m7b5", "G7/B" or "Bb13(#11)" into
// a ChordSpec. Every character must be accounted for; unknown text is an error.
func ParseChord(symbol string) (ChordSpec, error) {
	s := strings.TrimSpace(symbol)

	root, n, ok := parseRootToken(s)
	if !ok {
		return ChordSpec{}, &ParseError{Symbol: symbol, Reason: NoRoot}
	}
	spec := ChordSpec{Root: root, Quality: Major}
	body := s[n:]

	if i := strings.LastIndex(body, "/"); i >= 0 {
		bassText := body[i+1:]
		bass, bn, ok := parseRootToken(bassText)
		if !ok || bn != len(bassText) {
			return ChordSpec{}, &ParseError{Symbol: symbol, Reason: UnrecognizedToken, Token: body[i:]}
		}
		spec.Bass = &bass
		body = body[:i]
	}

	var exts []Extension
	var alts []Alteration

	// half-diminished shorthand
	if strings.HasPrefix(body, "ø") {
		spec.Quality = Minor
		exts = append(exts, Ext7)
		alts = append(alts, AltFlat5)
		body = strings.TrimPrefix(body[len("ø"):], "7")
	} else if qt, ok := matchQuality(body); ok {
		spec.Quality = qt.quality
		body = body[len(qt.text):]
		if conflict, ok := matchQuality(body); ok && !isAlterationAt(body) {
			return ChordSpec{}, &ParseError{Symbol: symbol, Reason: UnknownQuality, Token: conflict.text}
		}
	} else if hasMajPrefix(body) {
		// explicit major ("Cmaj"); "maj7" is left for the extension step
		if !startsWithExtensionDigit(body[3:]) {
			body = body[3:]
		}
	} else if strings.HasPrefix(body, "M") && !startsWithExtensionDigit(body[1:]) {
		body = body[1:]
	}

	if et, ok := matchMajExtension(body); ok {
		exts = append(exts, et.exts...)
		body = body[len(et.text):]
	} else if strings.HasPrefix(body, "(") {
		if et, ok := matchMajExtension(body[1:]); ok && strings.HasPrefix(body[1+len(et.text):], ")") {
			exts = append(exts, et.exts...)
			body = body[len(et.text)+2:]
		}
	}
	if !slices.Contains(exts, ExtMaj7) {
		if et, ok := matchPlainExtension(body); ok {
			exts = append(exts, et.exts...)
			body = body[len(et.text):]
		}
	}

	if spec.Quality == Diminished && slices.Contains(exts, Ext7) {
		alts = append(alts, AltDoubleFlat7)
	}

	for body != "" {
		switch {
		case body[0] == '(' || body[0] == ')' || body[0] == ',' || body[0] == ' ':
			body = body[1:]
			continue
		}
		at, ok := matchAlteration(body)
		if !ok {
			return ChordSpec{}, &ParseError{Symbol: symbol, Reason: UnrecognizedToken, Token: body}
		}
		alts = append(alts, at.alt)
		body = body[len(at.text):]
	}

	// C7#5 and C#5 spell augmented chords
	if spec.Quality == Major && slices.Contains(alts, AltSharp5) {
		spec.Quality = Augmented
		alts = slices.DeleteFunc(alts, func(a Alteration) bool { return a == AltSharp5 })
	}

	spec.Extensions = normalizeSet(exts)
	spec.Alterations = normalizeSet(alts)
	return spec, nil
}

// MustParseChord panics on error. Intended for tables of known-good symbols.
func MustParseChord(symbol string) ChordSpec {
	spec, err := ParseChord(symbol)
	if err != nil {
		panic(err)
	}
	return spec
}

func startsWithExtensionDigit(s string) bool {
	_, ok := matchPlainExtension(s)
	return ok
}

// isAlterationAt reports "+5"/"-5" style alterations, which look like quality markers
func isAlterationAt(s string) bool {
	at, ok := matchAlteration(s)
	return ok && (at.text == "+5" || at.text == "-5")
}

func normalizeSet[T ~int](values []T) []T {
	if len(values) == 0 {
		return nil
	}
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}
