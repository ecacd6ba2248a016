package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X".
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show mvx version and build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	printKV(
		"Version", version,
		"Commit", emptyAsNA(commit),
		"Build Date", emptyAsNA(buildDate),
		"Go Version", runtime.Version(),
		"OS/Arch", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	)
	return nil
}
