package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var flagModelIndex int

var modelCmd = &cobra.Command{
	Use:   "model <file>",
	Short: "Show model type, size and variables",
	Args:  cobra.ExactArgs(1),
	RunE:  runModel,
}

func init() {
	addModelFlag(modelCmd, &flagModelIndex)
	rootCmd.AddCommand(modelCmd)
}

// addModelFlag registers --model on c.
func addModelFlag(c *cobra.Command, p *int) {
	c.Flags().IntVar(p, "model", 0, "Model index (1-based, default model_index from config)")
}

func runModel(cmd *cobra.Command, args []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}
	p, m, err := openModel(e, args[0], flagModelIndex, false)
	if err != nil {
		return err
	}
	defer closeProject(e, p)

	printSection("Model")
	fitted := "yes"
	if !m.IsFitted() {
		fitted = "no"
	}
	printKV(
		"Name", m.Name(),
		"Number", fmt.Sprint(m.Number()),
		"Type", m.Type(),
		"Fitted", fitted,
		"Components", fmt.Sprint(m.NumComponents()),
		"Observations", fmt.Sprint(m.NumObservations()),
		"X variables", fmt.Sprint(len(m.XVariables())),
		"Y variables", fmt.Sprint(len(m.YVariables())),
	)
	if xs := m.XVariables(); len(xs) > 0 {
		printInfo("X", strings.Join(xs, ", "))
	}
	if ys := m.YVariables(); len(ys) > 0 {
		printInfo("Y", strings.Join(ys, ", "))
	}
	return nil
}
