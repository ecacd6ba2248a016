package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamusis/mvx-cli/internal/report"
)

type scoresFlags struct {
	model int
	rows  int
	plot  string
	x     int
	y     int
}

var scoresCmd = &cobra.Command{
	Use:   "scores <file>",
	Short: "Print a model's score matrix (T), optionally as a scatter plot",
	Args:  cobra.ExactArgs(1),
	RunE:  runScores,
}

func init() {
	var f scoresFlags
	addModelFlag(scoresCmd, &f.model)
	scoresCmd.Flags().IntVar(&f.rows, "rows", 20, "Maximum rows to print (0 = all)")
	scoresCmd.Flags().StringVar(&f.plot, "plot", "", "Write a score plot to this file (.png, .svg, .pdf, ...)")
	scoresCmd.Flags().IntVar(&f.x, "x", 1, "Component on the plot's x axis")
	scoresCmd.Flags().IntVar(&f.y, "y", 2, "Component on the plot's y axis")
	scoresCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(context.WithValue(cmd.Context(), scoresFlagsKey{}, f))
		return nil
	}
	rootCmd.AddCommand(scoresCmd)
}

type scoresFlagsKey struct{}

func runScores(cmd *cobra.Command, args []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}
	f, ok := cmd.Context().Value(scoresFlagsKey{}).(scoresFlags)
	if !ok {
		return fmt.Errorf("internal error: scores flags missing")
	}

	p, m, err := openModel(e, args[0], f.model, true)
	if err != nil {
		return err
	}
	defer closeProject(e, p)

	t, err := m.Scores()
	if err != nil {
		return fmt.Errorf("cannot read scores: %w", err)
	}

	printSection(fmt.Sprintf("Scores — %s", m.Name()))
	printKV("Rows", fmt.Sprint(t.Rows()), "Columns", fmt.Sprint(t.Cols()))
	printMatrix(t, f.rows)

	if f.plot != "" {
		y := f.y
		if t.Cols() == 1 && !cmd.Flags().Changed("y") {
			y = 1
		}
		if err := report.ScorePlot(t, f.x, y, fmt.Sprintf("%s scores", m.Name()), f.plot); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("score plot written to %s", f.plot))
	}
	return nil
}
