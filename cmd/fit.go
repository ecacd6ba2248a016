package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagFitModel int

var fitCmd = &cobra.Command{
	Use:   "fit <file>",
	Short: "Print per-component R2X, R2Y and Q2",
	Args:  cobra.ExactArgs(1),
	RunE:  runFit,
}

func init() {
	addModelFlag(fitCmd, &flagFitModel)
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}
	p, m, err := openModel(e, args[0], flagFitModel, true)
	if err != nil {
		return err
	}
	defer closeProject(e, p)

	fs, err := m.FitStatistics()
	if err != nil {
		return fmt.Errorf("cannot read fit statistics: %w", err)
	}

	printSection(fmt.Sprintf("Fit — %s", m.Name()))
	cols := []struct {
		name string
		vals []float64
	}{
		{"R2X", fs.R2X}, {"R2X(cum)", fs.R2XCum},
		{"R2Y", fs.R2Y}, {"R2Y(cum)", fs.R2YCum},
		{"Q2", fs.Q2}, {"Q2(cum)", fs.Q2Cum},
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"Comp"}
	for _, c := range cols {
		if len(c.vals) > 0 {
			header = append(header, c.name)
		}
	}
	fmt.Fprintln(tw, "  "+strings.Join(header, "\t")+"\t")
	for a := 0; a < m.NumComponents(); a++ {
		cells := []string{strconv.Itoa(a + 1)}
		for _, c := range cols {
			if len(c.vals) > 0 {
				cells = append(cells, strconv.FormatFloat(c.vals[a], 'f', 3, 64))
			}
		}
		fmt.Fprintln(tw, "  "+strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}
