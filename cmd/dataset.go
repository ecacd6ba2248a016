package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type datasetFlags struct {
	index int
	rows  int
}

var datasetCmd = &cobra.Command{
	Use:   "dataset <file>",
	Short: "Show a dataset's observations and variables",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataset,
}

func init() {
	var f datasetFlags
	datasetCmd.Flags().IntVar(&f.index, "dataset", 1, "Dataset index (1-based)")
	datasetCmd.Flags().IntVar(&f.rows, "rows", 10, "Maximum data rows to print (0 = all)")
	datasetCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(context.WithValue(cmd.Context(), datasetFlagsKey{}, f))
		return nil
	}
	rootCmd.AddCommand(datasetCmd)
}

type datasetFlagsKey struct{}

func runDataset(cmd *cobra.Command, args []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}
	f, ok := cmd.Context().Value(datasetFlagsKey{}).(datasetFlags)
	if !ok {
		return fmt.Errorf("internal error: dataset flags missing")
	}

	p, err := openProject(e, args[0])
	if err != nil {
		return err
	}
	defer closeProject(e, p)

	num, err := p.DatasetNumberFromIndex(f.index)
	if err != nil {
		return fmt.Errorf("cannot locate dataset: %w", err)
	}
	d, err := p.Dataset(num)
	if err != nil {
		return err
	}

	printSection("Dataset")
	idNames := d.ObservationIDNames()
	vars := d.VariableNames()
	printKV(
		"Name", d.Name(),
		"Observation IDs", fmt.Sprint(len(idNames)),
		"Observation ID names", strings.Join(idNames, ", "),
		"Variables", fmt.Sprint(len(vars)),
		"Variable names", strings.Join(vars, ", "),
	)

	obs, err := d.Observations()
	if err != nil {
		return err
	}
	if len(idNames) > 0 {
		names, err := d.ObservationNames(1)
		if err != nil {
			return err
		}
		if len(names) > 0 {
			printKV("First observation", names[0])
		}
	}
	printKV("Observations", fmt.Sprint(obs.Rows()))

	if obs.Rows() > 0 && obs.Cols() > 0 {
		printSection("Data")
		printMatrix(obs, f.rows)
	}
	return nil
}
