package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/tonal"
	"github.com/spf13/cobra"
)

var (
	searchTonic    string
	searchScale    string
	searchGroup    string
	searchFocal    string
	searchMinGrade string
	searchMaxCx    string
)

func init() {
	searchCmd.Flags().StringVar(&searchTonic, "tonic", "", "scale tonic (default from config)")
	searchCmd.Flags().StringVar(&searchScale, "scale", "", "scale type (default from config)")
	searchCmd.Flags().StringVar(&searchGroup, "group", "", "fit, root or family (default from config)")
	searchCmd.Flags().StringVar(&searchFocal, "focal", "", "group by the role of this note instead")
	searchCmd.Flags().StringVar(&searchMinGrade, "min-grade", "", "hide results below this grade")
	searchCmd.Flags().StringVar(&searchMaxCx, "max-complexity", "", "hide results above triad, seventh or extended")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search NOTE...",
	Short: "Finds every chord containing the notes",
	Long:  `Finds every catalogue chord containing the given notes, grades it against a scale and groups the results.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scale, err := eng.Scale(searchTonic, searchScale)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if searchFocal != "" {
			groups, err := eng.GroupByRole(searchFocal, scale)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(out, groups)
			}
			printRoleGroups(out, groups)
			return nil
		}

		view, err := searchView()
		if err != nil {
			return err
		}

		analysis, err := eng.Analyze(args, scale, tonal.GroupStrategy(searchGroup))
		if err != nil {
			return err
		}
		analysis.Groups = tonal.ApplyView(analysis.Groups, view)

		if jsonOutput {
			return writeJSON(out, analysis)
		}
		printGroups(out, analysis.Scale, analysis.Groups)
		return nil
	},
}

func searchView() (*tonal.ViewContext, error) {
	view := tonal.NewViewContext()
	if searchMinGrade != "" {
		g, err := tonal.ParseGrade(searchMinGrade)
		if err != nil {
			return nil, err
		}
		view.MinGrade = g
	}
	if searchMaxCx != "" {
		cx, ok := tonal.ParseComplexity(searchMaxCx)
		if !ok {
			return nil, fmt.Errorf("unknown complexity %q", searchMaxCx)
		}
		view.MaxComplexity = cx
	}
	return view, nil
}

func printGroups(w io.Writer, scale string, groups []tonal.Group) {
	fmt.Fprintf(w, "Scale: %s\n", scale)
	for _, g := range groups {
		fmt.Fprintf(w, "\n%s (%d)\n", g.Name, g.Count)
		for _, r := range g.Results {
			fmt.Fprintf(w, "  %-10s %-30s %3d%%  %-12s %s\n",
				r.Chord.Symbol, r.Chord.Name, r.ScaleMatchPercent, r.Grade, strings.Join(r.FunctionTags, ", "))
		}
	}
}

func printRoleGroups(w io.Writer, groups []tonal.RoleGroup) {
	for _, g := range groups {
		fmt.Fprintf(w, "\n%s (score %d)\n", g.Role, g.Score)
		for _, r := range g.Results {
			fmt.Fprintf(w, "  %-10s %-30s %3d%%  %s\n",
				r.Chord.Symbol, r.Chord.Name, r.ScaleMatchPercent, r.Grade)
		}
	}
}
