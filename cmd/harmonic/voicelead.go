package main

import (
	"fmt"
	"io"

	"github.com/parkerchace/MusicTheory-sub004/engine"
	"github.com/spf13/cobra"
)

var (
	leadSpread bool
	leadMIDI   string
)

func init() {
	voiceleadCmd.Flags().BoolVar(&leadSpread, "spread", false, "spread spacing for the first chord (default from config)")
	voiceleadCmd.Flags().StringVar(&leadMIDI, "midi", "", "write the voiced progression to this MIDI file")
	rootCmd.AddCommand(voiceleadCmd)
}

var voiceleadCmd = &cobra.Command{
	Use:   "voicelead SYMBOL...",
	Short: "Voices a chord progression in four parts",
	Long:  `Voices a chord progression for soprano, alto, tenor and bass with minimal movement and no parallel fifths or octaves.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spread := eng.Config().Spread
		if cmd.Flags().Changed("spread") {
			spread = leadSpread
		}

		p, err := eng.VoiceLeadSpread(args, spread)
		if err != nil {
			return err
		}

		if leadMIDI != "" {
			if err := eng.ExportMIDIFile(leadMIDI, p); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, p)
		}
		printProgression(out, p)
		return nil
	},
}

func printProgression(w io.Writer, p engine.Progression) {
	fmt.Fprintf(w, "%-10s %-5s %-5s %-5s %-5s %5s %5s\n", "chord", "S", "A", "T", "B", "moved", "cost")
	for _, st := range p.Steps {
		v := st.Voicing
		fmt.Fprintf(w, "%-10s %-5s %-5s %-5s %-5s %5d %5d\n",
			st.Symbol, v.Soprano, v.Alto, v.Tenor, v.Bass,
			st.Movement.TotalSemitones, st.Cost)
	}

	s := p.Summary
	fmt.Fprintf(w, "\ntotal %d semitones, mean %.2f, efficient %d/%d, parallels %d\n",
		s.TotalSemitones, s.MeanSemitones, s.EfficientSteps, s.Transitions, s.Parallels)
}

