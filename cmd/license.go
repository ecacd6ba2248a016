package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamusis/mvx-cli/internal/license"
)

var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Check the engine license file",
	Long: `Report whether the license file is valid, when it expires and which
product it covers. The file is read from license_path in mvx.yaml or
MVX_LICENSE_FILE.`,
	Args: cobra.NoArgs,
	RunE: runLicense,
}

func init() {
	rootCmd.AddCommand(licenseCmd)
}

func runLicense(cmd *cobra.Command, _ []string) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}

	printSection("License")
	l, err := license.Load(e.cfg.LicensePath)
	if errors.Is(err, license.ErrNoLicense) {
		printErr("", fmt.Sprintf("no license file at %s", e.cfg.LicensePath))
		return fmt.Errorf("you have an invalid license")
	}
	if err != nil {
		return err
	}

	if !l.Valid(now()) {
		printErr("", fmt.Sprintf("invalid license (product %s, expired %s)", l.Product, l.ExpireDate()))
		return fmt.Errorf("you have an invalid license")
	}
	printOK("", "You have a valid license")
	printKV(
		"Licensee", emptyAsNA(l.Licensee),
		"Expires", l.ExpireDate(),
		"Product", l.Product.String(),
	)
	return nil
}
