// Export command dumps the store to JSONL files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export every table to JSONL files",
	Long: `Export writes one <table>.jsonl file per entity table to the given
directory, one JSON object per row. The schema version log is not exported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := vault.Maintenance().ExportJSONL(args[0]); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", args[0])
		return nil
	},
}
