// Compact command reclaims free pages in the store file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Compact the store file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := vault.Maintenance().Compact(); err != nil {
			return err
		}
		fmt.Println("store compacted")
		return nil
	},
}
