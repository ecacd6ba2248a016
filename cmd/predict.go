package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/mvx-cli/internal/config"
	"github.com/kamusis/mvx-cli/internal/engine"
	"github.com/kamusis/mvx-cli/internal/predict"
	"github.com/kamusis/mvx-cli/internal/rowassembly"
)

type predictFlags struct {
	model int
	input string
}

var predictCmd = &cobra.Command{
	Use:   "predict <file> --input <csv>",
	Short: "Predict observations from named input rows",
	Long: `Read a header line of variable names followed by one or more value lines,
match the names to the model's prediction inputs and print the predicted Y
values (YPredPS) and scores (TPS) for each row.

Fields that match no model variable are ignored. Model inputs with no value in
a row are left missing; the model treats them as unknown, never as zero.

Use --input - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runPredict,
}

func init() {
	var f predictFlags
	addModelFlag(predictCmd, &f.model)
	predictCmd.Flags().StringVarP(&f.input, "input", "i", "", "Input file with a header line and value lines (- for stdin)")
	_ = predictCmd.MarkFlagRequired("input")
	predictCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(context.WithValue(cmd.Context(), predictFlagsKey{}, f))
		return nil
	}
	rootCmd.AddCommand(predictCmd)
}

type predictFlagsKey struct{}

// parserOptions translates the config's matching settings into assembler options.
func parserOptions(cfg *config.Config) []rowassembly.Option {
	opts := []rowassembly.Option{rowassembly.WithDelimiter(cfg.DelimiterRune())}
	if cfg.Match.CaseInsensitive {
		opts = append(opts, rowassembly.WithCaseInsensitive())
	}
	if cfg.Match.TrimSpace {
		opts = append(opts, rowassembly.WithTrimSpace())
	}
	if cfg.MissingValue != nil {
		opts = append(opts, rowassembly.WithMissing(*cfg.MissingValue))
	}
	return opts
}

// readInput parses the rows at path, or stdin for "-".
func readInput(cmd *cobra.Command, cfg *config.Config, path string) ([]rowassembly.NamedRow, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	rows, err := rowassembly.NewParser(parserOptions(cfg)...).ParseRows(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return rows, nil
}

func runPredict(cmd *cobra.Command, args []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}
	f, ok := cmd.Context().Value(predictFlagsKey{}).(predictFlags)
	if !ok {
		return fmt.Errorf("internal error: predict flags missing")
	}

	rows, err := readInput(cmd, e.cfg, f.input)
	if err != nil {
		return err
	}

	p, m, err := openModel(e, args[0], f.model, true)
	if err != nil {
		return err
	}
	defer closeProject(e, p)

	runner, err := predict.NewRunner(m, e.log)
	if err != nil {
		return err
	}
	results, err := runner.PredictAll(cmd.Context(), rows)
	if err != nil {
		return err
	}

	printSection(fmt.Sprintf("Predictions — %s", m.Name()))
	for i, res := range results {
		printResult(i+1, res)
	}
	return nil
}

func printResult(n int, res *predict.Result) {
	label := fmt.Sprintf("row %d", n)
	if res.Line > 0 {
		label = fmt.Sprintf("row %d (line %d)", n, res.Line)
	}
	fmt.Fprintf(stdout, "\n  %s\n", label)

	if missing := missingNames(res); len(missing) > 0 {
		printWarn("missing", strings.Join(missing, ", "))
	}
	if len(res.Unmatched) > 0 {
		printInfo("ignored", strings.Join(res.Unmatched, ", "))
	}
	for _, name := range []string{engine.ResultYPred, engine.ResultScores} {
		if out, ok := res.Outputs[name]; ok {
			printKV(name, formatRow(out))
		}
	}
}

func missingNames(res *predict.Result) []string {
	var out []string
	for _, s := range res.Slots {
		if res.Input.IsMissing(s.Position) {
			out = append(out, s.Name)
		}
	}
	return out
}

// formatRow renders the first row of m as "name=value" cells.
func formatRow(m *engine.Matrix) string {
	if m.Rows() == 0 {
		return "n/a"
	}
	vals, _ := m.Row(1)
	cells := make([]string, len(vals))
	for i, v := range vals {
		cells[i] = colLabel(m, i+1) + "=" + formatValue(v)
	}
	return strings.Join(cells, "  ")
}
