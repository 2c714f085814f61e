package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billops/billingctl/internal/api"
	"github.com/billops/billingctl/internal/common/money"
)

// newTenantCmd groups the tenant operations.
func newTenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
		Long: `Manage the tenants of the billing platform.

Examples:
  # List tenants
  billingctl tenant list

  # Show one tenant
  billingctl tenant get tnt-42

  # Register an individual tenant
  billingctl tenant register-individual --name "Jane Doe" --email jane@example.com --currency USD`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newTenantListCmd())
	cmd.AddCommand(newTenantGetCmd())
	cmd.AddCommand(newTenantRegisterIndividualCmd())
	cmd.AddCommand(newTenantRegisterEnterpriseCmd())
	return cmd
}

func newTenantListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			page, err := client.Tenants(cmd.Context(), pageQuery(cmd))
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(page)
				return nil
			}
			for _, t := range page.Data {
				verified := " "
				if t.Verified {
					verified = "✓"
				}
				fmt.Printf("%s  %-12s %-10s %s %s\n", t.TenantID, t.TenantType, t.PreferredCurrency, verified, t.Name)
			}
			fmt.Printf("Total: %d\n", page.Total)
			return nil
		},
	}
	pageFlags(cmd)
	return cmd
}

func newTenantGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get TENANT_ID",
		Short: "Show a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			t, err := client.Tenant(cmd.Context(), args[0])
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(t)
				return nil
			}
			fmt.Printf("Tenant:   %s (%s)\n", t.Name, t.TenantID)
			fmt.Printf("Type:     %s\n", t.TenantType)
			fmt.Printf("Currency: %s\n", t.PreferredCurrency)
			fmt.Printf("Verified: %t\n", t.Verified)
			fmt.Printf("Created:  %s\n", t.CreatedAt)
			return nil
		},
	}
}

func newTenantRegisterIndividualCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-individual",
		Short: "Register an individual tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			currency, _ := cmd.Flags().GetString("currency")

			client, _, err := newClients()
			if err != nil {
				return err
			}
			t, err := client.RegisterIndividual(cmd.Context(), api.RegisterIndividualRequest{
				Name:              name,
				Email:             email,
				Phone:             phone,
				PreferredCurrency: money.Currency(currency),
			})
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(t)
			} else {
				okLabel.Printf("✓ Tenant registered: %s\n", t.TenantID)
			}
			return nil
		},
	}
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "Contact email")
	cmd.Flags().String("phone", "", "Contact phone")
	cmd.Flags().String("currency", "USD", "Preferred currency")
	return cmd
}

func newTenantRegisterEnterpriseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-enterprise",
		Short: "Register an enterprise tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			company, _ := cmd.Flags().GetString("company")
			taxID, _ := cmd.Flags().GetString("tax-id")
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			currency, _ := cmd.Flags().GetString("currency")

			client, _, err := newClients()
			if err != nil {
				return err
			}
			t, err := client.RegisterEnterprise(cmd.Context(), api.RegisterEnterpriseRequest{
				CompanyName:       company,
				TaxID:             taxID,
				ContactEmail:      email,
				ContactPhone:      phone,
				PreferredCurrency: money.Currency(currency),
			})
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(t)
			} else {
				okLabel.Printf("✓ Tenant registered: %s\n", t.TenantID)
			}
			return nil
		},
	}
	cmd.Flags().String("company", "", "Company name")
	cmd.Flags().String("tax-id", "", "Tax identification number")
	cmd.Flags().String("email", "", "Contact email")
	cmd.Flags().String("phone", "", "Contact phone")
	cmd.Flags().String("currency", "USD", "Preferred currency")
	return cmd
}
