package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billops/billingctl/internal/common/money"
)

// newSKUCmd groups the SKU operations.
func newSKUCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sku",
		Short: "Browse the product catalog",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newSKUListCmd())
	cmd.AddCommand(newSKUGetCmd())
	return cmd
}

func newSKUListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List SKUs",
		RunE: func(cmd *cobra.Command, args []string) error {
			withPrice, _ := cmd.Flags().GetBool("with-price")

			client, _, err := newClients()
			if err != nil {
				return err
			}

			if withPrice {
				items, err := client.SKUsWithPrice(cmd.Context())
				if err != nil {
					return handled(err)
				}
				if jsonOutput {
					printJSON(items)
					return nil
				}
				for _, item := range items {
					price := "-"
					if item.UnitPrice != nil {
						if p, ferr := money.Format(item.UnitPrice.String(), item.Currency); ferr == nil {
							price = p
						}
					}
					fmt.Printf("%-20s %-24s %s\n", item.SkuCode, item.SkuName, price)
				}
				return nil
			}

			page, err := client.SKUs(cmd.Context(), pageQuery(cmd))
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(page)
				return nil
			}
			for _, sku := range page.Data {
				fmt.Printf("%-20s %-24s %-10s %s\n", sku.SkuCode, sku.SkuName, sku.Region, sku.StockType)
			}
			fmt.Printf("Total: %d\n", page.Total)
			return nil
		},
	}
	pageFlags(cmd)
	cmd.Flags().Bool("with-price", false, "Join each SKU to its price rule")
	return cmd
}

func newSKUGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get SKU_ID",
		Short: "Show a SKU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			sku, err := client.SKU(cmd.Context(), args[0])
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(sku)
				return nil
			}
			fmt.Printf("SKU:     %s (%s)\n", sku.SkuName, sku.SkuCode)
			fmt.Printf("SPU:     %s\n", sku.SpuCode)
			fmt.Printf("Region:  %s\n", sku.Region)
			fmt.Printf("Stock:   %s\n", sku.StockType)
			return nil
		},
	}
}

// newPriceRuleCmd groups the price rule operations.
func newPriceRuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price-rule",
		Short: "Browse pricing rules",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List price rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			page, err := client.PriceRules(cmd.Context(), pageQuery(cmd))
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(page)
				return nil
			}
			for _, rule := range page.Data {
				target := rule.SkuCode
				if target == "" {
					target = rule.SpuCode
				}
				fmt.Printf("%s  %-10s %-20s %s\n", rule.RuleID, rule.RuleType, target, rule.Currency)
			}
			fmt.Printf("Total: %d\n", page.Total)
			return nil
		},
	}
	pageFlags(list)

	get := &cobra.Command{
		Use:   "get RULE_ID",
		Short: "Show a price rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			rule, err := client.PriceRule(cmd.Context(), args[0])
			if err != nil {
				return handled(err)
			}
			printJSON(rule)
			return nil
		},
	}

	cmd.AddCommand(list)
	cmd.AddCommand(get)
	return cmd
}
