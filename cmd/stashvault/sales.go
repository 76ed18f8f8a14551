// Sales commands manage the sale lifecycle: list, add, complete, unsold.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/exiletools/stashvault/pkg/types"
)

var (
	flagSalesLimit  int
	flagSalesName   string
	flagSalesSource string

	flagSaleGame    string
	flagSaleLeague  string
	flagSaleSource  string
	flagSaleChaos   float64
	flagSaleDivine  float64
	flagSaleInstant bool
)

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Manage sale records",
	Long: `Sales tracks listed items through their lifecycle: listed, then
sold or unsold. Time to sale is recorded when a sale completes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sales, err := vault.Sales().Recent(flagSalesLimit, flagSalesName, flagSalesSource)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(sales)
		}
		if len(sales) == 0 {
			fmt.Println("no sales")
			return nil
		}
		for _, s := range sales {
			fmt.Printf("%d\t%s\t%s\t%s\t%.1f %s\t%s\n",
				s.ID, s.League, s.ItemName, s.Status,
				s.ListedPrice, s.Currency,
				s.ListedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var salesAddCmd = &cobra.Command{
	Use:   "add <item-name>",
	Short: "Record a new listing",
	Long: `Add records a newly listed item. Exactly one of --chaos or
--divine must carry the listing price. With --instant the item is recorded
as sold the moment it was listed.

Example:
  stashvault sales add "Headhunter" --league Standard --divine 120
  stashvault sales add "Goldrim" --league Standard --chaos 1 --instant`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := types.SaleInput{
			Game:        flagSaleGame,
			League:      flagSaleLeague,
			ItemName:    args[0],
			Source:      flagSaleSource,
			PriceChaos:  flagSaleChaos,
			PriceDivine: flagSaleDivine,
		}
		var (
			id  int64
			err error
		)
		if flagSaleInstant {
			id, err = vault.Sales().RecordInstantSale(in)
		} else {
			id, err = vault.Sales().AddListing(in)
		}
		if err != nil {
			return err
		}
		fmt.Printf("sale %d recorded\n", id)
		return nil
	},
}

var salesCompleteCmd = &cobra.Command{
	Use:   "complete <id> <sold-price>",
	Short: "Mark a listed sale as sold",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		price, err := parsePrice(args[1])
		if err != nil {
			return err
		}
		found, err := vault.Sales().Complete(id, price, time.Now())
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("sale %d not found", id)
		}
		fmt.Printf("sale %d completed\n", id)
		return nil
	},
}

var salesUnsoldCmd = &cobra.Command{
	Use:   "unsold <id>",
	Short: "Mark a listed sale as unsold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		found, err := vault.Sales().MarkUnsold(id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("sale %d not found", id)
		}
		fmt.Printf("sale %d marked unsold\n", id)
		return nil
	},
}

func init() {
	salesCmd.Flags().IntVar(&flagSalesLimit, "limit", 20, "maximum number of sales (0 = all)")
	salesCmd.Flags().StringVar(&flagSalesName, "name", "", "filter by item name substring")
	salesCmd.Flags().StringVar(&flagSalesSource, "source", "", "filter by listing source")

	salesAddCmd.Flags().StringVar(&flagSaleGame, "game", "", "game (poe1, poe2; default poe1)")
	salesAddCmd.Flags().StringVar(&flagSaleLeague, "league", "", "league the item is listed in")
	salesAddCmd.Flags().StringVar(&flagSaleSource, "source", "", "listing source")
	salesAddCmd.Flags().Float64Var(&flagSaleChaos, "chaos", 0, "listing price in chaos")
	salesAddCmd.Flags().Float64Var(&flagSaleDivine, "divine", 0, "listing price in divine")
	salesAddCmd.Flags().BoolVar(&flagSaleInstant, "instant", false, "record as an instant sale")

	salesCmd.AddCommand(salesAddCmd)
	salesCmd.AddCommand(salesCompleteCmd)
	salesCmd.AddCommand(salesUnsoldCmd)
}
