package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/billops/billingctl/internal/api"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the billing platform",
		Long: `Login to the billing platform to obtain a session token.
The token and the tenant you belong to are stored in the session file and
attached to every subsequent request.

Example:
  billingctl login --username admin --password secret
  billingctl login --username admin  # reads BILLING_PASSWORD`,
		RunE: runLogin,
	}

	cmd.Flags().StringP("username", "u", "", "Username for authentication")
	cmd.Flags().StringP("password", "p", "", "Password for authentication")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	if username == "" {
		return fmt.Errorf("no username provided. Use the --username flag")
	}
	if password == "" {
		password = os.Getenv("BILLING_PASSWORD")
		if password == "" {
			return fmt.Errorf("no password provided. Use the --password flag or set BILLING_PASSWORD")
		}
	}

	client, store, err := newClients()
	if err != nil {
		return err
	}

	resp, err := client.Login(cmd.Context(), api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return handled(err)
	}

	if err := store.SetSession(resp.Token, resp.TenantID); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if jsonOutput {
		kv := map[string]interface{}{
			"status":     "success",
			"tenant_id":  resp.TenantID,
			"user_id":    resp.UserID,
			"expires_at": resp.ExpiresAt,
		}
		printJSON(kv)
	} else {
		okLabel.Println("✓ Login successful")
		fmt.Printf("Tenant: %s\n", resp.TenantID)
		if resp.ExpiresAt != "" {
			fmt.Printf("Token expires at: %s\n", resp.ExpiresAt)
		}
	}

	return nil
}

// newLogoutCmd creates and returns a new logout command
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, store, err := newClients()
			if err != nil {
				return err
			}

			// server-side invalidation is best effort; the local session is
			// cleared regardless so a dead token never lingers on disk
			logoutErr := client.Logout(cmd.Context())
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			if logoutErr != nil {
				return handled(logoutErr)
			}

			if jsonOutput {
				printJSON(map[string]string{"status": "success"})
			} else {
				okLabel.Println("✓ Logged out")
			}
			return nil
		},
	}
}

// newWhoamiCmd reports the authenticated user.
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClients()
			if err != nil {
				return err
			}
			user, err := client.CurrentUser(cmd.Context())
			if err != nil {
				return handled(err)
			}
			if jsonOutput {
				printJSON(user)
			} else {
				fmt.Printf("User:   %s (%s)\n", user.Username, user.UserID)
				fmt.Printf("Tenant: %s\n", user.TenantID)
				if user.Email != "" {
					fmt.Printf("Email:  %s\n", user.Email)
				}
			}
			return nil
		},
	}
}
