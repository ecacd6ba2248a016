package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/mvx-cli/internal/config"
	"github.com/kamusis/mvx-cli/internal/license"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.mvx with a default configuration",
	Long: `Create ~/.mvx/, write a default mvx.yaml and a .env template when they
do not exist yet, and report whether a license file is in place.

Existing files are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}

	// ── 1. Resolve ~/.mvx directory ───────────────────────────────────────────
	mvxDir, err := config.MvxDir()
	if err != nil {
		return err
	}
	cfgPath := flagConfig
	if cfgPath == "" {
		if cfgPath, err = config.ConfigPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(mvxDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", mvxDir, err)
	}
	printOK("", fmt.Sprintf("mvx directory ready: %s", mvxDir))

	// ── 2. Write mvx.yaml if missing ──────────────────────────────────────────
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else if err != nil {
		return fmt.Errorf("cannot stat %s: %w", cfgPath, err)
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 3. .env template ──────────────────────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	printOK("", "Environment overrides: ~/.mvx/.env")

	// ── 4. License ────────────────────────────────────────────────────────────
	// The config loaded before init ran already points at the license path.
	if _, err := license.Load(e.cfg.LicensePath); errors.Is(err, license.ErrNoLicense) {
		printWarn("", fmt.Sprintf("no license file yet — place it at %s", e.cfg.LicensePath))
	} else if err != nil {
		printWarn("", err.Error())
	} else {
		printOK("", fmt.Sprintf("License found: %s", e.cfg.LicensePath))
	}

	fmt.Fprintln(stdout, "\n✓  mvx init complete. Run 'mvx doctor' to verify your environment.")
	return nil
}
