// Alerts commands manage price alerts.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exiletools/stashvault/pkg/types"
)

var (
	flagAlertsAll      bool
	flagAlertGame      string
	flagAlertLeague    string
	flagAlertDirection string
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Manage price alerts",
	Long: `Alerts lists the configured price alerts. By default only enabled
alerts are shown.

Example:
  stashvault alerts
  stashvault alerts add "Mageblood" 80000 --league Standard
  stashvault alerts disable 3
  stashvault alerts delete 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		alerts, err := vault.Alerts().List(!flagAlertsAll)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(alerts)
		}
		if len(alerts) == 0 {
			fmt.Println("no alerts")
			return nil
		}
		for _, a := range alerts {
			state := "enabled"
			if !a.Enabled {
				state = "disabled"
			}
			fmt.Printf("%d\t%s\t%s\t%s %.0f chaos\t%s\n",
				a.ID, a.League, a.ItemName, a.Direction, a.ThresholdChaos, state)
		}
		return nil
	},
}

var alertsAddCmd = &cobra.Command{
	Use:   "add <item-name> <threshold-chaos>",
	Short: "Add a price alert",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, err := parsePrice(args[1])
		if err != nil {
			return err
		}
		id, err := vault.Alerts().Add(types.PriceAlert{
			Game:           flagAlertGame,
			League:         flagAlertLeague,
			ItemName:       args[0],
			ThresholdChaos: threshold,
			Direction:      flagAlertDirection,
			Enabled:        true,
		})
		if err != nil {
			return err
		}
		fmt.Printf("alert %d added\n", id)
		return nil
	},
}

var alertsEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable an alert",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleAlert(args[0], true) },
}

var alertsDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable an alert",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleAlert(args[0], false) },
}

var alertsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		found, err := vault.Alerts().Delete(id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("alert %d not found", id)
		}
		fmt.Printf("alert %d deleted\n", id)
		return nil
	},
}

func toggleAlert(arg string, enabled bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	found, err := vault.Alerts().SetEnabled(id, enabled)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("alert %d not found", id)
	}
	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	fmt.Printf("alert %d %s\n", id, state)
	return nil
}

func init() {
	alertsCmd.Flags().BoolVar(&flagAlertsAll, "all", false, "include disabled alerts")

	alertsAddCmd.Flags().StringVar(&flagAlertGame, "game", "", "game (poe1, poe2; default poe1)")
	alertsAddCmd.Flags().StringVar(&flagAlertLeague, "league", "", "league to watch")
	alertsAddCmd.Flags().StringVar(&flagAlertDirection, "direction", "", "trigger direction (below, above; default below)")

	alertsCmd.AddCommand(alertsAddCmd)
	alertsCmd.AddCommand(alertsEnableCmd)
	alertsCmd.AddCommand(alertsDisableCmd)
	alertsCmd.AddCommand(alertsDeleteCmd)
}
