package cmd

import (
	"itree-extract/internal/species"

	"github.com/spf13/cobra"
)

// extractSpeciesCmd represents the extract_species command
var extractSpeciesCmd = &cobra.Command{
	Use:   "extract_species",
	Short: "Build species_master_list.csv from every region's SpeciesCode.xls",
	Long: `Walk the resource directory, convert each region's SpeciesCode.xls and
write the valid species of all regions, tagged with their region code, to
species_master_list.csv in the output directory.`,
	Args: cobra.NoArgs,
	RunE: runExtractSpecies,
}

func runExtractSpecies(cmd *cobra.Command, args []string) error {
	if err := requireResourceDir(); err != nil {
		return err
	}

	conv, err := newConverter()
	if err != nil {
		return err
	}

	res, err := species.NewNormalizer(conv, cfg.SpeciesFile, logger).Extract(cfg.OutputDir, cfg.ResourceDir)
	if err != nil {
		return err
	}

	logger.Info("wrote species master list", "file", res.Path, "regions", res.Regions, "rows", res.Rows)
	return nil
}

func init() {
	rootCmd.AddCommand(extractSpeciesCmd)
}
