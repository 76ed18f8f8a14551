// Wipe command deletes all stored data.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagWipeConfirm bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all stored data",
	Long: `Wipe deletes every row from every entity table and compacts the
store file. The schema and its version log survive. Requires --yes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagWipeConfirm {
			return fmt.Errorf("refusing to wipe without --yes")
		}
		if err := vault.Maintenance().WipeAllData(); err != nil {
			return err
		}
		fmt.Println("all data wiped")
		return nil
	},
}

func init() {
	wipeCmd.Flags().BoolVar(&flagWipeConfirm, "yes", false, "confirm the wipe")
}
