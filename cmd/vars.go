package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamusis/mvx-cli/internal/predict"
)

var flagVarsModel int

var varsCmd = &cobra.Command{
	Use:   "vars <file>",
	Short: "List the input variables a model needs for prediction",
	Long: `List the model's prediction inputs in slot order. The header line of a
'mvx predict' input file is matched against these names.`,
	Args: cobra.ExactArgs(1),
	RunE: runVars,
}

func init() {
	addModelFlag(varsCmd, &flagVarsModel)
	rootCmd.AddCommand(varsCmd)
}

func runVars(cmd *cobra.Command, args []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}
	p, m, err := openModel(e, args[0], flagVarsModel, true)
	if err != nil {
		return err
	}
	defer closeProject(e, p)

	r, err := predict.NewRunner(m, e.log)
	if err != nil {
		return err
	}
	printSection(fmt.Sprintf("Prediction inputs — %s", m.Name()))
	for _, s := range r.Slots() {
		fmt.Fprintf(stdout, "  %3d  %s\n", s.Position, s.Name)
	}
	return nil
}
