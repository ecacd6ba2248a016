package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project <file>",
	Short: "Show project name, datasets and models",
	Args:  cobra.ExactArgs(1),
	RunE:  runProject,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, args []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}
	p, err := openProject(e, args[0])
	if err != nil {
		return err
	}
	defer closeProject(e, p)

	printSection("Project")
	printKV(
		"Name", p.Name(),
		"Models", fmt.Sprint(p.NumModels()),
		"Datasets", fmt.Sprint(p.NumDatasets()),
	)

	if p.NumDatasets() > 0 {
		printSection("Datasets")
		for i := 1; i <= p.NumDatasets(); i++ {
			num, err := p.DatasetNumberFromIndex(i)
			if err != nil {
				return err
			}
			d, err := p.Dataset(num)
			if err != nil {
				return err
			}
			printInfo(fmt.Sprint(num), fmt.Sprintf("%s — %d variable(s)", d.Name(), len(d.VariableNames())))
		}
	}

	if p.NumModels() > 0 {
		printSection("Models")
		for i := 1; i <= p.NumModels(); i++ {
			num, err := p.ModelNumberFromIndex(i)
			if err != nil {
				return err
			}
			m, err := p.Model(num)
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("%s (%s), %d component(s)", m.Name(), m.Type(), m.NumComponents())
			if m.IsFitted() {
				printOK(fmt.Sprint(num), msg)
			} else {
				printWarn(fmt.Sprint(num), msg+" — not fitted")
			}
		}
	}
	return nil
}
