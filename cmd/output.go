package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kamusis/mvx-cli/internal/engine"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// Every command prints results through these so icons and indentation match.
//
// Icon semantics:
//   ✓  success / valid
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ○  skipped / already done
//   ~  neutral info

// printSection prints a top-level section header, e.g. "=== Model ===".
func printSection(title string) {
	fmt.Fprintf(stdout, "\n=== %s ===\n", title)
}

func printLine(icon, name, msg string) {
	w := stdout
	if icon == "✗" {
		w = stderr
	}
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", icon, msg)
	} else {
		fmt.Fprintf(w, "  %s  [%s] %s\n", icon, name, msg)
	}
}

// printOK prints a success line.
func printOK(name, msg string) { printLine("✓", name, msg) }

// printErr prints an error line to stderr.
func printErr(name, msg string) { printLine("✗", name, msg) }

// printWarn prints a warning line.
func printWarn(name, msg string) { printLine("⚠", name, msg) }

// printSkip prints a skipped / already-done line.
func printSkip(name, msg string) { printLine("○", name, msg) }

// printInfo prints a neutral informational line.
func printInfo(name, msg string) { printLine("~", name, msg) }

// printKV prints aligned "key: value" pairs. pairs alternates key, value.
func printKV(pairs ...string) {
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(tw, "  %s:\t%s\n", pairs[i], pairs[i+1])
	}
	_ = tw.Flush()
}

// printMatrix prints a matrix with its row and column names, at most maxRows
// rows (0 prints all).
func printMatrix(m *engine.Matrix, maxRows int) {
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{""}
	for c := 1; c <= m.Cols(); c++ {
		header = append(header, colLabel(m, c))
	}
	fmt.Fprintln(tw, "  "+strings.Join(header, "\t")+"\t")

	rows := m.Rows()
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
	}
	for r := 1; r <= rows; r++ {
		vals, _ := m.Row(r)
		cells := []string{rowLabel(m, r)}
		for _, v := range vals {
			cells = append(cells, formatValue(v))
		}
		fmt.Fprintln(tw, "  "+strings.Join(cells, "\t")+"\t")
	}
	_ = tw.Flush()
	if rows < m.Rows() {
		fmt.Fprintf(stdout, "  … %d more row(s)\n", m.Rows()-rows)
	}
}

func rowLabel(m *engine.Matrix, r int) string {
	if n := m.RowName(r); n != "" {
		return n
	}
	return strconv.Itoa(r)
}

func colLabel(m *engine.Matrix, c int) string {
	if n := m.ColName(c); n != "" {
		return n
	}
	return strconv.Itoa(c)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
