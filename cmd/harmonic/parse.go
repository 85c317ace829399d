package main

import (
	"fmt"
	"strings"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/tonal"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse SYMBOL...",
	Short: "Parses chord symbols",
	Long:  `Parses chord symbols such as Cmaj7, F#m7b5 or G7/B and prints their pitch classes.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chords := make([]tonal.ChordInstance, 0, len(args))
		for _, sym := range args {
			c, err := eng.ParseChord(sym)
			if err != nil {
				return err
			}
			chords = append(chords, c)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, chords)
		}
		for _, c := range chords {
			names := make([]string, len(c.PitchClasses))
			for i, pc := range c.PitchClasses {
				names[i] = eng.Model().NameOf(pc, false)
			}
			fmt.Fprintf(out, "%-12s %-28s %s\n", c.Symbol, c.Name, strings.Join(names, " "))
		}
		return nil
	},
}
