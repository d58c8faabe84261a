package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dimtools/armortrim/pkg/storage"
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show how the trim list changed between the two latest saved runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, _, err := openDB(cmd, true)
		if err != nil {
			return err
		}
		defer db.Close()

		changes, err := db.DiffLatest(cmd.Context())
		if err != nil {
			if errors.Is(err, storage.ErrNotEnoughRuns) {
				fmt.Println("Need at least two runs saved with 'armortrim trim --save' to compare.")
				return nil
			}
			return err
		}
		if len(changes) == 0 {
			fmt.Println("The trim list did not change.")
			return nil
		}
		for _, c := range changes {
			fmt.Printf("%-7s  %s  %-11s  %s\n", c.ChangeType, c.ItemID, c.Type, c.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changesCmd)
}
