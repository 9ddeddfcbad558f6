package config

import (
	"fmt"
	"os"
	"strings"
)

// Engine selects how spreadsheets are turned into rows
type Engine string

const (
	EngineExec   Engine = "exec"
	EngineNative Engine = "native"
)

// Defaults for a run
const (
	DefaultResourceDir = "ResourceUnit"
	DefaultExecutable  = "xls2csv"
	DefaultSpeciesFile = "SpeciesCode.xls"
	DefaultReportFile  = "ResourceUnit.html"
)

// Environment variables that override the defaults above
const (
	EnvExecutable  = "ITREE_XLS2CSV"
	EnvEngine      = "ITREE_ENGINE"
	EnvResourceDir = "ITREE_RESOURCE_DIR"
	EnvOutputDir   = "ITREE_OUTPUT_DIR"
)

// Config holds everything an extraction run needs
type Config struct {
	ResourceDir string
	OutputDir   string
	Executable  string
	Engine      Engine
	SpeciesFile string
	ReportFile  string
	Verbose     bool
}

// Default returns the configuration used when no flags or environment
// variables are set
func Default() Config {
	return Config{
		ResourceDir: DefaultResourceDir,
		Executable:  DefaultExecutable,
		Engine:      EngineExec,
		SpeciesFile: DefaultSpeciesFile,
		ReportFile:  DefaultReportFile,
	}
}

// FromEnv returns Default with any environment overrides applied
func FromEnv() Config {
	cfg := Default()
	cfg.ResourceDir = envOr(EnvResourceDir, cfg.ResourceDir)
	cfg.OutputDir = envOr(EnvOutputDir, cfg.OutputDir)
	cfg.Executable = envOr(EnvExecutable, cfg.Executable)
	cfg.Engine = Engine(envOr(EnvEngine, string(cfg.Engine)))
	return cfg
}

// ParseEngine validates an engine name
func ParseEngine(name string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(name))); e {
	case EngineExec, EngineNative:
		return e, nil
	default:
		return "", fmt.Errorf("invalid engine: %s (must be exec or native)", name)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
