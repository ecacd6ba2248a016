package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagLoadingsModel int

var loadingsCmd = &cobra.Command{
	Use:   "loadings <file>",
	Short: "Print a model's X loadings (P)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoadings,
}

func init() {
	addModelFlag(loadingsCmd, &flagLoadingsModel)
	rootCmd.AddCommand(loadingsCmd)
}

func runLoadings(cmd *cobra.Command, args []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}
	p, m, err := openModel(e, args[0], flagLoadingsModel, true)
	if err != nil {
		return err
	}
	defer closeProject(e, p)

	l, err := m.Loadings()
	if err != nil {
		return fmt.Errorf("cannot read loadings: %w", err)
	}
	printSection(fmt.Sprintf("Loadings — %s", m.Name()))
	printMatrix(l, 0)
	return nil
}
