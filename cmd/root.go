package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/mvx-cli/internal/config"
	"github.com/kamusis/mvx-cli/internal/logging"
)

// stdout and stderr are swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:          "mvx",
	Short:        "mvx — inspect multivariate projects and run model predictions",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `mvx opens multivariate-analysis project files, prints datasets, models,
scores, loadings and fit statistics, and predicts new observations from
comma-separated input rows matched to model variables by name.

Configuration lives in ~/.mvx/mvx.yaml (see 'mvx init').`,
	PersistentPreRunE: setupEnv,
}

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.mvx/mvx.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text, json, auto")
}

// env is the per-invocation state shared by all commands.
type env struct {
	cfg *config.Config
	log *slog.Logger
}

type envKey struct{}

func setupEnv(cmd *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFrom(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Log.Format = flagLogFormat
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}

	e := &env{cfg: cfg, log: logging.New(stderr, level, format)}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, envKey{}, e))
	return nil
}

func envFrom(cmd *cobra.Command) (*env, error) {
	e, ok := cmd.Context().Value(envKey{}).(*env)
	if !ok {
		return nil, fmt.Errorf("internal error: command environment missing")
	}
	return e, nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		os.Exit(1)
	}
}
