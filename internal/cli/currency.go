package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/billops/billingctl/internal/api"
	"github.com/billops/billingctl/internal/common/money"
)

// newRatesCmd groups the exchange rate operations.
func newRatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Browse exchange rates",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List published exchange rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			page, err := client.ExchangeRates(cmd.Context(), pageQuery(cmd))
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(page)
				return nil
			}
			for _, r := range page.Data {
				fmt.Printf("%s -> %s  %12s  %s\n", r.FromCurrency, r.ToCurrency, r.Rate.String(), r.EffectiveDate)
			}
			fmt.Printf("Total: %d\n", page.Total)
			return nil
		},
	}
	pageFlags(list)

	query := &cobra.Command{
		Use:   "query FROM TO",
		Short: "Query the rate between two currencies",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")

			client, _, err := newClients()
			if err != nil {
				return err
			}
			rate, err := client.QueryExchangeRate(cmd.Context(), money.Currency(args[0]), money.Currency(args[1]), date)
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(rate)
			} else {
				fmt.Printf("%s -> %s: %s (effective %s)\n", rate.FromCurrency, rate.ToCurrency, rate.Rate.String(), rate.EffectiveDate)
			}
			return nil
		},
	}
	query.Flags().String("date", "", "Effective date (YYYY-MM-DD), defaults to today")

	cmd.AddCommand(list)
	cmd.AddCommand(query)
	return cmd
}

// newConvertCmd converts an amount between currencies. With --rate the
// conversion runs locally on exact decimals; without it the server converts
// at the published rate.
func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert AMOUNT FROM TO",
		Short: "Convert an amount between currencies",
		Long: `Convert an amount between currencies.

When --rate is given the conversion is computed locally with exact decimal
arithmetic. Without it, the server converts at the published rate for the
given date.

Examples:
  billingctl convert 10.005 USD JPY --rate 110.25
  billingctl convert 100 USD EUR`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, from, to := args[0], money.Currency(args[1]), money.Currency(args[2])
			rate, _ := cmd.Flags().GetString("rate")
			date, _ := cmd.Flags().GetString("date")

			if rate != "" || from == to {
				result, err := money.Convert(amount, from, to, rate)
				if err != nil {
					return err
				}
				if jsonOutput {
					printJSON(map[string]string{
						"from_currency":    string(from),
						"to_currency":      string(to),
						"amount":           amount,
						"converted_amount": result,
					})
				} else {
					fmt.Printf("%s %s = %s %s\n", amount, from, result, to)
				}
				return nil
			}

			d, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			client, _, err := newClients()
			if err != nil {
				return err
			}
			resp, err := client.Convert(cmd.Context(), api.ConvertRequest{
				Amount:       d,
				FromCurrency: from,
				ToCurrency:   to,
				Date:         date,
			})
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(resp)
			} else {
				fmt.Printf("%s %s = %s %s (rate %s, effective %s)\n",
					resp.Amount.String(), resp.FromCurrency,
					resp.ConvertedAmount.String(), resp.ToCurrency,
					resp.ExchangeRate.String(), resp.EffectiveDate)
			}
			return nil
		},
	}
	cmd.Flags().String("rate", "", "Exchange rate for local conversion")
	cmd.Flags().String("date", "", "Effective date for server-side conversion (YYYY-MM-DD)")
	return cmd
}

// newFormatCmd renders an amount in a currency's display format.
func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format AMOUNT CURRENCY",
		Short: "Format an amount for display",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			noSymbol, _ := cmd.Flags().GetBool("no-symbol")
			noCode, _ := cmd.Flags().GetBool("no-code")
			precision, _ := cmd.Flags().GetInt32("precision")

			opts := money.DefaultFormatOptions()
			opts.ShowSymbol = !noSymbol
			opts.ShowCode = !noCode
			opts.Precision = precision

			result, err := money.Format(args[0], money.Currency(args[1]), opts)
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		},
	}
	cmd.Flags().Bool("no-symbol", false, "Omit the currency symbol")
	cmd.Flags().Bool("no-code", false, "Omit the currency code suffix")
	cmd.Flags().Int32("precision", -1, "Fractional digits (default: currency precision)")
	return cmd
}
