package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kamusis/mvx-cli/internal/engine"
	"github.com/kamusis/mvx-cli/internal/engine/projfile"
)

const testLicense = `licensee: Test Lab
product: SQPPlus
expires: 2099-12-31
`

// setupHome points HOME at a temp dir holding ~/.mvx/license.yaml and
// returns the path of a copy of the project fixture.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MVX_LICENSE_FILE", "")
	t.Setenv("MVX_LOG_LEVEL", "")

	mvxDir := filepath.Join(home, ".mvx")
	if err := os.MkdirAll(mvxDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mvxDir, "license.yaml"), []byte(testLicense), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join("..", "internal", "engine", "projfile", "testdata", "foods.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	project := filepath.Join(t.TempDir(), "foods.yaml")
	if err := os.WriteFile(project, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return project
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".mvx", "mvx.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

// resetFlags puts every flag back to its default so runs don't leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes mvx with args and returns what went to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })

	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&errOut)
	rootCmd.SetErr(&errOut)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestLicense_Valid(t *testing.T) {
	setupHome(t)
	out, err := run(t, "", "license")
	if err != nil {
		t.Fatalf("license: %v", err)
	}
	assertContains(t, out, "You have a valid license", "2099-12-31", "SQPPlus", "Test Lab")
}

func TestLicense_MissingFile(t *testing.T) {
	setupHome(t)
	t.Setenv("MVX_LICENSE_FILE", filepath.Join(t.TempDir(), "none.yaml"))
	if _, err := run(t, "", "license"); err == nil {
		t.Fatal("expected an error for a missing license")
	}
}

func TestProject_RefusesWithoutLicense(t *testing.T) {
	project := setupHome(t)
	t.Setenv("MVX_LICENSE_FILE", filepath.Join(t.TempDir(), "none.yaml"))
	if _, err := run(t, "", "project", project); err == nil {
		t.Fatal("expected project to refuse without a license")
	}
}

func TestProject_Summary(t *testing.T) {
	project := setupHome(t)
	out, err := run(t, "", "project", project)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	assertContains(t, out, "FOODS", "PROCESS", "M1 (PLS)", "M2 (PCA-X)", "not fitted")
}

func TestDataset_ShowsNamesAndData(t *testing.T) {
	project := setupHome(t)
	out, err := run(t, "", "dataset", project, "--rows", "2")
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	assertContains(t, out, "PROCESS", "Primary ID, Site", "Temp, Pressure, pH, Yield", "B1", "2 more row(s)")
}

func TestModel_DefaultAndExplicitIndex(t *testing.T) {
	project := setupHome(t)
	out, err := run(t, "", "model", project)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	assertContains(t, out, "M1", "PLS", "Temp, Pressure, pH", "Yield")

	out, err = run(t, "", "model", project, "--model", "2")
	if err != nil {
		t.Fatalf("model --model 2: %v", err)
	}
	assertContains(t, out, "M2", "PCA-X")
}

func TestFit_CumulativeColumns(t *testing.T) {
	project := setupHome(t)
	out, err := run(t, "", "fit", project)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	assertContains(t, out, "R2X(cum)", "Q2(cum)", "0.800", "0.600")
}

func TestScores_WritesPlot(t *testing.T) {
	project := setupHome(t)
	plotPath := filepath.Join(t.TempDir(), "scores.png")
	out, err := run(t, "", "scores", project, "--plot", plotPath)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	assertContains(t, out, "t1", "t2", "B3", "score plot written")
	if fi, err := os.Stat(plotPath); err != nil || fi.Size() == 0 {
		t.Fatalf("plot not written: %v", err)
	}
}

func TestScores_UnfittedModel(t *testing.T) {
	project := setupHome(t)
	_, err := run(t, "", "scores", project, "--model", "2")
	if !errors.Is(err, engine.ErrNotFitted) {
		t.Fatalf("err = %v, want ErrNotFitted", err)
	}
}

func TestLoadings(t *testing.T) {
	project := setupHome(t)
	out, err := run(t, "", "loadings", project)
	if err != nil {
		t.Fatalf("loadings: %v", err)
	}
	assertContains(t, out, "p1", "Pressure", "0.5")
}

func TestVars_SlotOrder(t *testing.T) {
	project := setupHome(t)
	out, err := run(t, "", "vars", project)
	if err != nil {
		t.Fatalf("vars: %v", err)
	}
	iTemp := strings.Index(out, "1  Temp")
	iPH := strings.Index(out, "3  pH")
	if iTemp < 0 || iPH < 0 || iTemp > iPH {
		t.Fatalf("unexpected slot listing:\n%s", out)
	}
}

func TestPredict_FromFileWithMissingSlot(t *testing.T) {
	project := setupHome(t)
	input := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(input, []byte("Temp,Pressure\n25,2.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "predict", project, "--input", input)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	assertContains(t, out, "line 2", "[missing] pH", "Yield=57", "t1=1", "t2=0")
}

func TestPredict_StdinIgnoresUnknownFields(t *testing.T) {
	project := setupHome(t)
	in := "Color,Temp,Pressure,pH\nred,,,\n0,25,2.5,7\n"
	// "red" is not numeric, so the first row must fail to parse.
	if _, err := run(t, in, "predict", project, "--input", "-"); err == nil {
		t.Fatal("expected a parse error for a non-numeric cell")
	}

	in = "Batch,Temp,Pressure,pH\n7,25,2.5,7\n"
	out, err := run(t, in, "predict", project, "-i", "-")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	assertContains(t, out, "[ignored] Batch", "Yield=57")
	if strings.Contains(out, "[missing]") {
		t.Errorf("no slot should be missing:\n%s", out)
	}
}

func TestPredict_ParseErrorNamesLine(t *testing.T) {
	project := setupHome(t)
	_, err := run(t, "Temp,Pressure\n25,2.5\n26,abc\n", "predict", project, "--input", "-")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "line 3") || !strings.Contains(err.Error(), "Pressure") {
		t.Errorf("error should name line and field: %v", err)
	}
}

func TestPredict_CaseInsensitiveFromConfig(t *testing.T) {
	project := setupHome(t)
	in := "temp,PRESSURE\n25,2.5\n"

	out, err := run(t, in, "predict", project, "--input", "-")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	assertContains(t, out, "[missing] Temp, Pressure, pH", "Yield=50")

	writeConfig(t, "match:\n  case_insensitive: true\n")
	out, err = run(t, in, "predict", project, "--input", "-")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	assertContains(t, out, "Yield=57")
}

func TestPredict_SemicolonDelimiter(t *testing.T) {
	project := setupHome(t)
	writeConfig(t, "delimiter: \";\"\n")
	out, err := run(t, "Temp;Pressure\n25;2.5\n", "predict", project, "--input", "-")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	assertContains(t, out, "Yield=57")
}

func TestDoctor_ReportsLockedProject(t *testing.T) {
	project := setupHome(t)
	out, err := run(t, "", "doctor", project)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	assertContains(t, out, "FOODS: 1 dataset(s), 2 model(s), 1 fitted", "all checks passed")

	lock := flock.New(projfile.LockPath(project))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("TryLock: %v", err)
	}
	defer func() { _ = lock.Unlock() }()

	if _, err := run(t, "", "doctor", project); err == nil {
		t.Fatal("expected doctor to fail on a locked project")
	}
}

func TestInit_WritesConfigOnce(t *testing.T) {
	setupHome(t)
	out, err := run(t, "", "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	assertContains(t, out, "Config written", "License found")

	home, _ := os.UserHomeDir()
	for _, name := range []string{"mvx.yaml", ".env"} {
		if _, err := os.Stat(filepath.Join(home, ".mvx", name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}

	out, err = run(t, "", "init")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	assertContains(t, out, "Config already exists")
}

func TestVersion(t *testing.T) {
	setupHome(t)
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	assertContains(t, out, "Version", "dev", "Go Version")
}
