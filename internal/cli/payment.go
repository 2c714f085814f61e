package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/billops/billingctl/internal/api"
	"github.com/billops/billingctl/internal/common/money"
)

// newPaymentCmd groups the payment operations.
func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Manage payments",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newPaymentListCmd())
	cmd.AddCommand(newPaymentGetCmd())
	cmd.AddCommand(newPaymentCreateCmd())
	return cmd
}

func newPaymentListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			page, err := client.Payments(cmd.Context(), pageQuery(cmd))
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(page)
				return nil
			}
			for _, p := range page.Data {
				amount, ferr := money.Format(p.Amount.String(), p.Currency)
				if ferr != nil {
					amount = p.Amount.String() + " " + string(p.Currency)
				}
				fmt.Printf("%s  %-14s %-8s %s\n", p.PaymentID, p.PaymentMethod, p.Status, amount)
			}
			fmt.Printf("Total: %d\n", page.Total)
			return nil
		},
	}
	pageFlags(cmd)
	return cmd
}

func newPaymentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get PAYMENT_ID",
		Short: "Show a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			p, err := client.Payment(cmd.Context(), args[0])
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(p)
				return nil
			}
			amount, ferr := money.Format(p.Amount.String(), p.Currency)
			if ferr != nil {
				amount = p.Amount.String()
			}
			fmt.Printf("Payment:  %s\n", p.PaymentID)
			fmt.Printf("Tenant:   %s\n", p.TenantID)
			fmt.Printf("Method:   %s\n", p.PaymentMethod)
			fmt.Printf("Amount:   %s\n", amount)
			fmt.Printf("Status:   %s\n", p.Status)
			fmt.Printf("Created:  %s\n", p.CreatedAt)
			return nil
		},
	}
}

func newPaymentCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenant, _ := cmd.Flags().GetString("tenant")
			user, _ := cmd.Flags().GetString("user")
			orderID, _ := cmd.Flags().GetString("order")
			method, _ := cmd.Flags().GetString("method")
			amountStr, _ := cmd.Flags().GetString("amount")
			currency, _ := cmd.Flags().GetString("currency")

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}

			client, _, err := newClients()
			if err != nil {
				return err
			}
			p, err := client.CreatePayment(cmd.Context(), api.CreatePaymentRequest{
				OrderID:       orderID,
				TenantID:      tenant,
				UserID:        user,
				PaymentMethod: api.PaymentMethod(method),
				Amount:        amount,
				Currency:      money.Currency(currency),
			})
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(p)
			} else {
				okLabel.Printf("✓ Payment created: %s\n", p.PaymentID)
			}
			return nil
		},
	}
	cmd.Flags().String("tenant", "", "Tenant ID")
	cmd.Flags().String("user", "", "User ID")
	cmd.Flags().String("order", "", "Order ID to pay")
	cmd.Flags().String("method", "BALANCE", "Payment method")
	cmd.Flags().String("amount", "", "Amount to pay")
	cmd.Flags().String("currency", "USD", "Currency")
	return cmd
}

// newBalanceCmd groups the balance account operations.
func newBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Manage tenant balance accounts",
		Long: `Inspect and top up tenant balance accounts.

Examples:
  # Show a tenant's balance
  billingctl balance get tnt-1

  # Top it up
  billingctl balance recharge tnt-1 --amount 500

  # Show the movement history
  billingctl balance transactions tnt-1`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newBalanceGetCmd())
	cmd.AddCommand(newBalanceRechargeCmd())
	cmd.AddCommand(newBalanceTransactionsCmd())
	return cmd
}

func newBalanceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get TENANT_ID",
		Short: "Show a tenant's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			b, err := client.Balance(cmd.Context(), args[0])
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(b)
				return nil
			}
			balance, ferr := money.Format(b.Balance.String(), b.Currency)
			if ferr != nil {
				balance = b.Balance.String()
			}
			frozen, ferr := money.Format(b.FrozenBalance.String(), b.Currency)
			if ferr != nil {
				frozen = b.FrozenBalance.String()
			}
			fmt.Printf("Tenant:  %s\n", b.TenantID)
			fmt.Printf("Balance: %s\n", balance)
			fmt.Printf("Frozen:  %s\n", frozen)
			return nil
		},
	}
}

func newBalanceRechargeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recharge TENANT_ID",
		Short: "Top up a tenant's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountStr, _ := cmd.Flags().GetString("amount")
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}

			client, _, err := newClients()
			if err != nil {
				return err
			}
			if err := client.Recharge(cmd.Context(), args[0], amount); err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(map[string]string{"status": "success"})
			} else {
				okLabel.Printf("✓ Recharged %s\n", amountStr)
			}
			return nil
		},
	}
	cmd.Flags().String("amount", "", "Amount to add")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func newBalanceTransactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions TENANT_ID",
		Short: "List the movements on a tenant's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			page, err := client.BalanceTransactions(cmd.Context(), args[0], pageQuery(cmd))
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(page)
				return nil
			}
			for _, txn := range page.Data {
				fmt.Printf("%s  %-10s %12s  %s -> %s\n",
					txn.TransactionID, txn.TransactionType, txn.Amount.String(),
					txn.BalanceBefore.String(), txn.BalanceAfter.String())
			}
			fmt.Printf("Total: %d\n", page.Total)
			return nil
		},
	}
	pageFlags(cmd)
	return cmd
}
