package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/mvx-cli/internal/config"
	"github.com/kamusis/mvx-cli/internal/engine"
	"github.com/kamusis/mvx-cli/internal/engine/projfile"
	"github.com/kamusis/mvx-cli/internal/license"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [project-file]",
	Short: "Run pre-flight environment checks",
	Long: `Check that mvx's configuration and license are in place. With a project
file argument, also check that the project opens and is not locked by another
process.

Run this command when something seems wrong, or before filing a bug report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}
	allOK := true
	failD := func(format string, a ...any) {
		printErr("", fmt.Sprintf(format, a...))
		allOK = false
	}

	printSection("mvx doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: config file ──────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ mvx.yaml ]")
	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath, _ = config.ConfigPath()
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		printWarn("", fmt.Sprintf("%s not found — using defaults (run 'mvx init')", cfgPath))
	} else {
		printOK("", fmt.Sprintf("loaded: %s", cfgPath))
	}
	printKV(
		"model_index", fmt.Sprint(e.cfg.ModelIndex),
		"delimiter", fmt.Sprintf("%q", string(e.cfg.DelimiterRune())),
		"case_insensitive", fmt.Sprint(e.cfg.Match.CaseInsensitive),
		"trim_space", fmt.Sprint(e.cfg.Match.TrimSpace),
	)
	fmt.Fprintln(stdout)

	// ── Check 2: license ──────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ License ]")
	l, err := license.Load(e.cfg.LicensePath)
	switch {
	case errors.Is(err, license.ErrNoLicense):
		failD("no license file at %s", e.cfg.LicensePath)
	case err != nil:
		failD("%v", err)
	case !l.Valid(now()):
		failD("license not valid (product %s, expires %s)", l.Product, l.ExpireDate())
	default:
		printOK("", fmt.Sprintf("%s, expires %s", l.Product, l.ExpireDate()))
	}
	fmt.Fprintln(stdout)

	// ── Check 3: project (optional) ───────────────────────────────────────────
	if len(args) == 1 {
		fmt.Fprintln(stdout, "[ Project ]")
		p, err := projfile.Open(args[0])
		switch {
		case errors.Is(err, engine.ErrProjectLocked):
			failD("%s is locked by another process (%s)", args[0], projfile.LockPath(args[0]))
		case err != nil:
			failD("%v", err)
		default:
			fitted := 0
			for i := 1; i <= p.NumModels(); i++ {
				if n, err := p.ModelNumberFromIndex(i); err == nil {
					if m, err := p.Model(n); err == nil && m.IsFitted() {
						fitted++
					}
				}
			}
			printOK("", fmt.Sprintf("%s: %d dataset(s), %d model(s), %d fitted",
				p.Name(), p.NumDatasets(), p.NumModels(), fitted))
			closeProject(e, p)
		}
		fmt.Fprintln(stdout)
	}

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(stdout, "✓  all checks passed")
	return nil
}
