package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"itree-extract/internal/config"
	apperrors "itree-extract/internal/errors"

	"github.com/xuri/excelize/v2"
)

// execute runs the root command with args and returns stdout and the error.
// Flag values from earlier runs are reset to their defaults first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg = config.FromEnv()
	engineName = string(cfg.Engine)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestUnknownActionPrintsHelp(t *testing.T) {
	tmp := t.TempDir()
	outDir := filepath.Join(tmp, "out")

	out, err := execute(t, "extract_everything", "-r", filepath.Join(tmp, "missing"), "-d", outDir)
	actionErr, ok := err.(*apperrors.UnknownActionError)
	if !ok {
		t.Fatalf("Expected UnknownActionError, got %v", err)
	}
	if actionErr.Action != "extract_everything" {
		t.Errorf("Action = %q", actionErr.Action)
	}
	if !strings.Contains(out, "extract_species") || !strings.Contains(out, "extract_values") {
		t.Errorf("help text missing actions:\n%s", out)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("output directory created for an unknown action")
	}
}

func TestBuiltinVerbsAreUnknownActions(t *testing.T) {
	for _, args := range [][]string{{"help"}, {"completion", "bash"}, {}} {
		out, err := execute(t, args...)
		if _, ok := err.(*apperrors.UnknownActionError); !ok {
			t.Errorf("%v: Expected UnknownActionError, got %v", args, err)
		}
		if !strings.Contains(out, "extract_species") {
			t.Errorf("%v: help text not printed:\n%s", args, out)
		}
	}
}

func TestFlagsResetBetweenRuns(t *testing.T) {
	tmp := t.TempDir()
	unit := filepath.Join(tmp, "res", "R1")
	if err := os.MkdirAll(unit, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	page := `<p><a href="#a1">Bvoc</a></p><a name="a1"></a><table><tr><td>1</td></tr></table>`
	if err := os.WriteFile(filepath.Join(unit, "ResourceUnit.html"), []byte(page), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res := filepath.Join(tmp, "res")

	if _, err := execute(t, "extract_values", "-r", res, "-d", filepath.Join(tmp, "first"), "--report-file", "Other.html"); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "first", "output__R1__bvoc.csv")); !os.IsNotExist(err) {
		t.Error("report written despite --report-file Other.html")
	}

	// --report-file is not repeated, so the default ResourceUnit.html applies
	if _, err := execute(t, "extract_values", "-r", res, "-d", filepath.Join(tmp, "second")); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "second", "output__R1__bvoc.csv")); err != nil {
		t.Errorf("default report file not used: %v", err)
	}
}

func TestMissingResourceDir(t *testing.T) {
	tmp := t.TempDir()
	missing := filepath.Join(tmp, "ResourceUnit")
	outDir := filepath.Join(tmp, "out")

	for _, action := range []string{"extract_species", "extract_values"} {
		_, err := execute(t, action, "-r", missing, "-d", outDir, "--engine", "native")
		if _, ok := err.(*apperrors.ResourceDirError); !ok {
			t.Fatalf("%s: Expected ResourceDirError, got %v", action, err)
		}
		if !strings.Contains(err.Error(), missing) {
			t.Errorf("%s: error does not name the path: %v", action, err)
		}
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("output directory created for a missing resource directory")
	}
}

func TestExtractValues(t *testing.T) {
	tmp := t.TempDir()
	unit := filepath.Join(tmp, "ResourceUnit", "NoCalXXX")
	if err := os.MkdirAll(unit, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	page := `<p><a href="#a1">Natural Gas</a></p><a name="a1"></a><table><tr><td>1</td><td>2,5</td></tr></table>`
	if err := os.WriteFile(filepath.Join(unit, "ResourceUnit.html"), []byte(page), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	outDir := filepath.Join(tmp, "out")

	if _, err := execute(t, "extract_values", "-r", filepath.Join(tmp, "ResourceUnit"), "-d", outDir,
		"--report-file", "ResourceUnit.html"); err != nil {
		t.Fatalf("extract_values failed: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(outDir, "output__NoCalXXX__natural_gas.csv"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(b) != "1,25\n" {
		t.Errorf("output = %q", b)
	}
}

func TestExtractSpeciesNative(t *testing.T) {
	tmp := t.TempDir()
	region := filepath.Join(tmp, "res", "TpIntWBOI")
	if err := os.MkdirAll(region, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "SpeciesCode")
	f.SetCellValue("Sheet1", "B1", "ScientificName")
	f.SetCellValue("Sheet1", "A2", "PIPO")
	f.SetCellValue("Sheet1", "B2", "Pinus ponderosa")
	if err := f.SaveAs(filepath.Join(region, "SpeciesCode.xlsx")); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	outDir := filepath.Join(tmp, "out")

	if _, err := execute(t, "extract_species", "-r", filepath.Join(tmp, "res"), "-d", outDir,
		"--engine", "native", "--species-file", "SpeciesCode.xlsx"); err != nil {
		t.Fatalf("extract_species failed: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(outDir, "species_master_list.csv"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 || lines[1] != "PIPO,Pinus ponderosa,,,,,,,,,TpIntWBOI" {
		t.Errorf("unexpected output %q", lines)
	}
}

func TestExtractSpeciesExec(t *testing.T) {
	tmp := t.TempDir()
	region := filepath.Join(tmp, "res", "R1")
	if err := os.MkdirAll(region, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	csv := "SpeciesCode,ScientificName\nABC,Quercus\n,Pinus\nXYZ,123.4\n"
	if err := os.WriteFile(filepath.Join(region, "SpeciesCode.xls"), []byte(csv), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fake := filepath.Join(tmp, "xls2csv")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\ncat \"$1\"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	outDir := filepath.Join(tmp, "out")

	if _, err := execute(t, "extract_species", "-r", filepath.Join(tmp, "res"), "-d", outDir,
		"--engine", "exec", "--xls2csv", fake, "--species-file", "SpeciesCode.xls"); err != nil {
		t.Fatalf("extract_species failed: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(outDir, "species_master_list.csv"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 || lines[1] != "ABC,Quercus,,,,,,,,,R1" {
		t.Errorf("unexpected output %q", lines)
	}
}

func TestExtractSpeciesConverterMissing(t *testing.T) {
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, "res"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := execute(t, "extract_species", "-r", filepath.Join(tmp, "res"), "-d", filepath.Join(tmp, "out"),
		"--engine", "exec", "--xls2csv", filepath.Join(tmp, "no-xls2csv"))
	if _, ok := err.(*apperrors.ConverterNotFoundError); !ok {
		t.Fatalf("Expected ConverterNotFoundError, got %v", err)
	}
}

func TestInvalidEngine(t *testing.T) {
	tmp := t.TempDir()
	_, err := execute(t, "extract_species", "-r", tmp, "-d", filepath.Join(tmp, "out"), "--engine", "catdoc")
	if err == nil || !strings.Contains(err.Error(), "invalid engine") {
		t.Errorf("Expected invalid engine error, got %v", err)
	}
}
