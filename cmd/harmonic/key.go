package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keyCmd)
}

var keyCmd = &cobra.Command{
	Use:   "key SYMBOL...",
	Short: "Estimates the key of a chord progression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := eng.EstimateKey(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, res)
		}
		fmt.Fprintf(out, "%s (r=%.3f, clarity %.3f)\n", res.Best.Name, res.Best.Correlation, res.Clarity)
		for _, c := range res.Candidates[1:] {
			fmt.Fprintf(out, "  %-22s %.3f\n", c.Name, c.Correlation)
		}
		return nil
	},
}
