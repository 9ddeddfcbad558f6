package cmd

import (
	"fmt"
	"os"

	"itree-extract/internal/config"
	"itree-extract/internal/converter"
	"itree-extract/internal/errors"
	"itree-extract/internal/logging"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfg        = config.FromEnv()
	engineName string
	logger     *log.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "itree-extract <action>",
	Short: "Convert i-Tree Streets resource files into CSV",
	Long: `itree-extract flattens the spreadsheets and HTML reports shipped with an
i-Tree Streets installation into CSV files.

Action should be "extract_species" or "extract_values".`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(cmd.ErrOrStderr(), cfg.Verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Reached only when args[0] is not a known action
		action := ""
		if len(args) > 0 {
			action = args[0]
		}
		_ = cmd.Help()
		return errors.NewUnknownActionError(action)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// requireResourceDir fails when the configured resource directory is missing
func requireResourceDir() error {
	if _, err := os.Stat(cfg.ResourceDir); err != nil {
		return errors.NewResourceDirError(cfg.ResourceDir)
	}
	return nil
}

// newConverter builds the spreadsheet converter selected by --engine
func newConverter() (converter.Converter, error) {
	engine, err := config.ParseEngine(engineName)
	if err != nil {
		return nil, err
	}
	if engine == config.EngineNative {
		return converter.NewNative(logger), nil
	}
	return converter.NewExec(cfg.Executable, logger), nil
}

// helpCmd replaces cobra's help command so "help" is rejected like any other
// unknown action
var helpCmd = &cobra.Command{
	Use:    "help",
	Hidden: true,
	Args:   cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Root().Help()
		return errors.NewUnknownActionError("help")
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(helpCmd)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfg.ResourceDir, "resource-dir", "r", cfg.ResourceDir, "resource unit directory")
	rootCmd.PersistentFlags().StringVarP(&cfg.OutputDir, "output-dir", "d", cfg.OutputDir, "output directory")
	rootCmd.PersistentFlags().StringVar(&cfg.Executable, "xls2csv", cfg.Executable, "spreadsheet converter executable")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", string(cfg.Engine), "spreadsheet engine: exec (run xls2csv) or native")
	rootCmd.PersistentFlags().StringVar(&cfg.SpeciesFile, "species-file", cfg.SpeciesFile, "species spreadsheet file name")
	rootCmd.PersistentFlags().StringVar(&cfg.ReportFile, "report-file", cfg.ReportFile, "resource unit report file name")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
}
