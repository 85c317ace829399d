package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	t.Cleanup(func() {
		jsonOutput, leadSpread, leadMIDI = false, false, ""
		searchFocal, searchGroup, searchMinGrade, searchMaxCx = "", "", "", ""
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestParseCommandJSON(t *testing.T) {
	out := run(t, "parse", "Cmaj7", "--json")

	var chords []struct {
		Name         string `json:"name"`
		PitchClasses []int  `json:"pitch_classes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &chords))
	require.Len(t, chords, 1)
	assert.Equal(t, []int{0, 4, 7, 11}, chords[0].PitchClasses)
}

func TestSearchCommand(t *testing.T) {
	out := run(t, "search", "C", "E", "--tonic", "C", "--scale", "major")
	assert.Contains(t, out, "Scale: C major")
	assert.Contains(t, out, "Tight")
	assert.Contains(t, out, "A minor")
}

func TestVoiceleadCommandWritesMIDI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	out := run(t, "voicelead", "Cmaj7", "Fmaj7", "G7", "Cmaj7", "--midi", path)

	assert.Contains(t, out, "Fmaj7")
	assert.Contains(t, out, "parallels 0")
	assert.FileExists(t, path)
}

func TestKeyCommand(t *testing.T) {
	out := run(t, "key", "C", "F", "G7", "C")
	assert.Contains(t, out, "C major (r=")
}
