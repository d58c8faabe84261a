package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dimtools/armortrim/internal/utils"
	"github.com/dimtools/armortrim/pkg/loader"
	"github.com/dimtools/armortrim/pkg/report"
	"github.com/dimtools/armortrim/pkg/trimmer"
)

const exportHelp = `In DestinyItemManager, go to 'Organizer', click on one of your characters to display all their armor,
and then click the 'Armor.csv' button to export a list of all armor across all your characters.`

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Rank a DIM armor export and list the pieces to delete",
	Long: `Rank a DIM armor export and list the pieces to delete.

This is a harsh tool that will tell you to delete a lot of armor. Review the
highlighted items in DIM before removing anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := viper.GetString("input.path")
		sheet, _ := cmd.Flags().GetString("sheet")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")
		save, _ := cmd.Flags().GetBool("save")
		queryOnly, _ := cmd.Flags().GetBool("query-only")

		if includeLoadouts, _ := cmd.Flags().GetBool("include-loadouts"); includeLoadouts {
			viper.Set("filter.ignore_in_loadout", false)
		}
		cfg, err := buildConfig()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		items, err := loader.Load(input, loader.Options{Sheet: sheet})
		if err != nil {
			if errors.Is(err, loader.ErrFileNotFound) {
				return fmt.Errorf("%w\n\n%s", err, exportHelp)
			}
			return err
		}
		utils.Log.Infof("%s read successfully, generating results...", filepath.Base(input))

		res, err := trimmer.Run(cmd.Context(), cfg, items)
		if err != nil {
			return err
		}

		if queryOnly {
			fmt.Println(report.Query(res.Trimmed))
		} else if err := report.Write(os.Stdout, res); err != nil {
			return err
		}

		if xlsxPath != "" {
			if err := report.ExportXLSX(xlsxPath, res); err != nil {
				return err
			}
			utils.Log.Infof("Wrote %s", xlsxPath)
		}

		if save {
			run, err := saveRun(cmd, input, res)
			if err != nil {
				return fmt.Errorf("could not save run: %w", err)
			}
			utils.Log.Infof("Saved run %s", run.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trimCmd)
	trimCmd.Flags().StringP("input", "i", "destinyArmor.csv", "DIM armor export (.csv or .xlsx)")
	trimCmd.Flags().String("sheet", "", "Worksheet to read from an .xlsx export (default: first sheet)")
	trimCmd.Flags().StringSliceP("class", "c", nil, "Classes to trim armor for (overrides filter.include_classes)")
	trimCmd.Flags().StringSlice("location", nil, "Locations to include (overrides filter.include_locations)")
	trimCmd.Flags().Bool("include-loadouts", false, "Also rank items that are used in a loadout")
	trimCmd.Flags().Bool("parallel", false, "Rank the four slots concurrently")
	trimCmd.Flags().String("xlsx", "", "Also write the trim and keep lists to this workbook")
	trimCmd.Flags().Bool("save", false, "Record this run in the history database")
	trimCmd.Flags().BoolP("query-only", "q", false, "Print only the DIM search query")

	_ = viper.BindPFlag("input.path", trimCmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("filter.include_classes", trimCmd.Flags().Lookup("class"))
	_ = viper.BindPFlag("filter.include_locations", trimCmd.Flags().Lookup("location"))
	_ = viper.BindPFlag("ranking.parallel", trimCmd.Flags().Lookup("parallel"))
}
