package cmd

import (
	"itree-extract/internal/report"

	"github.com/spf13/cobra"
)

// extractValuesCmd represents the extract_values command
var extractValuesCmd = &cobra.Command{
	Use:   "extract_values",
	Short: "Split every ResourceUnit.html into per-category CSV files",
	Long: `Walk the resource directory and split the tables of each ResourceUnit.html
into output__<unit>__<category>.csv files in the output directory.`,
	Args: cobra.NoArgs,
	RunE: runExtractValues,
}

func runExtractValues(cmd *cobra.Command, args []string) error {
	if err := requireResourceDir(); err != nil {
		return err
	}

	res, err := report.NewSplitter(cfg.ReportFile, logger).Extract(cfg.OutputDir, cfg.ResourceDir)
	if err != nil {
		return err
	}

	logger.Info("split resource unit reports", "pages", res.Pages, "files", len(res.Files))
	return nil
}

func init() {
	rootCmd.AddCommand(extractValuesCmd)
}
