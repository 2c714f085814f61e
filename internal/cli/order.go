package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billops/billingctl/internal/api"
	"github.com/billops/billingctl/internal/common/money"
)

// newOrderCmd groups the order operations.
func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders",
		Long: `Manage billing orders.

Examples:
  # List orders
  billingctl order list

  # Create a prepaid order
  billingctl order create --tenant tnt-1 --org org-1 --project prj-1 --user usr-1 --sku sku-compute-s --quantity 3

  # Pay an order from the tenant balance
  billingctl order pay ord-123`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newOrderListCmd())
	cmd.AddCommand(newOrderGetCmd())
	cmd.AddCommand(newOrderCreateCmd())
	cmd.AddCommand(newOrderCancelCmd())
	cmd.AddCommand(newOrderPayCmd())
	return cmd
}

func newOrderListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			page, err := client.Orders(cmd.Context(), pageQuery(cmd))
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(page)
				return nil
			}
			for _, o := range page.Data {
				amount, ferr := money.Format(o.PayableAmount.String(), o.Currency)
				if ferr != nil {
					amount = o.PayableAmount.String() + " " + string(o.Currency)
				}
				fmt.Printf("%s  %-10s %-10s %s\n", o.OrderID, o.Status, o.OrderType, amount)
			}
			fmt.Printf("Total: %d\n", page.Total)
			return nil
		},
	}
	pageFlags(cmd)
	return cmd
}

func newOrderGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ORDER_ID",
		Short: "Show an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			o, err := client.Order(cmd.Context(), args[0])
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(o)
				return nil
			}
			payable, ferr := money.Format(o.PayableAmount.String(), o.Currency)
			if ferr != nil {
				payable = o.PayableAmount.String()
			}
			fmt.Printf("Order:    %s (%s)\n", o.OrderNo, o.OrderID)
			fmt.Printf("Tenant:   %s\n", o.TenantID)
			fmt.Printf("SKU:      %s\n", o.SkuCode)
			fmt.Printf("Payable:  %s\n", payable)
			fmt.Printf("Status:   %s\n", o.Status)
			fmt.Printf("Created:  %s\n", o.CreatedAt)
			return nil
		},
	}
}

func newOrderCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenant, _ := cmd.Flags().GetString("tenant")
			org, _ := cmd.Flags().GetString("org")
			project, _ := cmd.Flags().GetString("project")
			user, _ := cmd.Flags().GetString("user")
			sku, _ := cmd.Flags().GetString("sku")
			orderType, _ := cmd.Flags().GetString("type")
			quantity, _ := cmd.Flags().GetInt("quantity")

			client, _, err := newClients()
			if err != nil {
				return err
			}
			o, err := client.CreateOrder(cmd.Context(), api.CreateOrderRequest{
				TenantID:       tenant,
				OrganizationID: org,
				ProjectID:      project,
				UserID:         user,
				OrderType:      api.OrderType(orderType),
				SkuCode:        sku,
				Quantity:       quantity,
			})
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(o)
			} else {
				okLabel.Printf("✓ Order created: %s\n", o.OrderID)
			}
			return nil
		},
	}
	cmd.Flags().String("tenant", "", "Tenant ID")
	cmd.Flags().String("org", "", "Organization ID")
	cmd.Flags().String("project", "", "Project ID")
	cmd.Flags().String("user", "", "User ID")
	cmd.Flags().String("sku", "", "SKU code")
	cmd.Flags().String("type", "PREPAID", "Order type (PREPAID or POSTPAID)")
	cmd.Flags().Int("quantity", 1, "Quantity")
	return cmd
}

func newOrderCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ORDER_ID",
		Short: "Cancel a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			if err := client.CancelOrder(cmd.Context(), args[0]); err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(map[string]string{"status": "success"})
			} else {
				okLabel.Printf("✓ Order cancelled: %s\n", args[0])
			}
			return nil
		},
	}
}

func newOrderPayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay ORDER_ID",
		Short: "Pay a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			if err := client.PayOrder(cmd.Context(), args[0]); err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(map[string]string{"status": "success"})
			} else {
				okLabel.Printf("✓ Order paid: %s\n", args[0])
			}
			return nil
		},
	}
}
