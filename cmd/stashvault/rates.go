// Rates command shows and records currency exchange rates.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exiletools/stashvault/pkg/types"
)

var flagRatesLeague string

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show currency rates for a league",
	Long: `Rates lists the recorded chaos-equivalent of every currency in a
league.

Example:
  stashvault rates --league Standard
  stashvault rates set divine 185 --league Standard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagRatesLeague == "" {
			return types.ErrInvalidLeague
		}
		rates, err := vault.Economy().Rates(flagRatesLeague)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(rates)
		}
		if len(rates) == 0 {
			fmt.Printf("no rates recorded for %s\n", flagRatesLeague)
			return nil
		}
		for _, rate := range rates {
			fmt.Printf("%s\t%.2f chaos\t%s\n",
				rate.Currency, rate.ChaosEquivalent,
				rate.FetchedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var ratesSetCmd = &cobra.Command{
	Use:   "set <currency> <chaos-equivalent>",
	Short: "Record the chaos-equivalent of a currency",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parsePrice(args[1])
		if err != nil {
			return err
		}
		err = vault.Economy().UpsertRate(types.CurrencyRate{
			League:          flagRatesLeague,
			Currency:        args[0],
			ChaosEquivalent: value,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s/%s = %.2f chaos\n", flagRatesLeague, args[0], value)
		return nil
	},
}

func init() {
	ratesCmd.PersistentFlags().StringVar(&flagRatesLeague, "league", "", "league the rates belong to")
	ratesCmd.AddCommand(ratesSetCmd)
}
