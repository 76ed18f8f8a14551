// Recent command lists the most recently checked items.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagRecentLimit  int
	flagRecentGame   string
	flagRecentLeague string
	flagRecentName   string
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently checked items",
	Long: `Recent lists checked items, newest first. The name filter matches
substrings case-insensitively.

Example:
  stashvault recent
  stashvault recent --league Standard --limit 10
  stashvault recent --name tabula`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := vault.CheckedItems().Recent(
			flagRecentLimit, flagRecentGame, flagRecentLeague, flagRecentName)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(items)
		}
		if len(items) == 0 {
			fmt.Println("no checked items")
			return nil
		}
		for _, item := range items {
			fmt.Printf("%d\t%s\t%s\t%s\t%.1f %s\t%s\n",
				item.ID, item.Game, item.League, item.Name,
				item.Value, item.Currency,
				item.CheckedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVar(&flagRecentLimit, "limit", 20, "maximum number of items (0 = all)")
	recentCmd.Flags().StringVar(&flagRecentGame, "game", "", "filter by game (poe1, poe2)")
	recentCmd.Flags().StringVar(&flagRecentLeague, "league", "", "filter by league")
	recentCmd.Flags().StringVar(&flagRecentName, "name", "", "filter by item name substring")
}
