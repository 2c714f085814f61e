// Package cli implements the billingctl command line interface. The CLI is
// the presentation surface of the client: it provides the notification and
// navigation implementations the transport pipeline drives on failures, and
// calls the typed endpoint wrappers for everything else.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/billops/billingctl/internal/api"
	"github.com/billops/billingctl/internal/common/httpclient"
	"github.com/billops/billingctl/internal/common/session"
)

var (
	// Global flags
	jsonOutput  bool
	sessionFile string
	serverFlag  string
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)
var warnLabel = color.New(color.FgYellow)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "billingctl [command] [flags]",
	Short: "billingctl - A command line interface for the billing platform",
	Long: `billingctl is an administrative command line interface for a
multi-tenant billing platform. It manages tenants, orders, payments,
SKUs and pricing, and currency exchange.

Examples:
  # Authenticate against the platform
  billingctl login --username admin

  # List tenants
  billingctl tenant list

  # Pay an order
  billingctl order pay ord-123

  # Convert an amount locally at a given rate
  billingctl convert 10.005 USD JPY --rate 110.25`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sessionFile, "session-file", "", "", "Path to session file to override default")
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Server URL (overrides BILLING_SERVER_URL)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newTenantCmd())
	rootCmd.AddCommand(newOrderCmd())
	rootCmd.AddCommand(newPaymentCmd())
	rootCmd.AddCommand(newBalanceCmd())
	rootCmd.AddCommand(newSKUCmd())
	rootCmd.AddCommand(newPriceRuleCmd())
	rootCmd.AddCommand(newRatesCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newFormatCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if jsonOutput {
			kv := map[string]string{
				"error": err.Error(),
			}
			printJSON(kv)
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// serverURL resolves the server base URL from the flag, the environment, or
// the localhost default, normalizing the scheme and trailing slashes.
func serverURL() string {
	server := serverFlag
	if server == "" {
		server = os.Getenv("BILLING_SERVER_URL")
	}
	if server == "" {
		server = "http://localhost:8080"
	}
	server = strings.TrimRight(server, "/")
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}
	return server
}

// messageSurface shows the pipeline's user-facing notifications on stderr.
type messageSurface struct{}

func (messageSurface) Notify(message string) {
	warnLabel.Fprintf(os.Stderr, "! %s\n", message)
}

// loginRedirect is the terminal client's login entry point: it tells the
// operator to re-authenticate.
type loginRedirect struct{}

func (loginRedirect) NavigateToLogin() {
	fmt.Fprintln(os.Stderr, "Authenticate again with \"billingctl login\"")
}

// newClients wires the session store, the transport pipeline, and the
// endpoint wrappers for a command invocation.
func newClients() (*api.Client, session.Store, error) {
	store, err := session.NewFileStore(sessionFile)
	if err != nil {
		return nil, nil, err
	}
	transport := httpclient.NewClient(serverURL(), store, messageSurface{}, loginRedirect{})
	return api.New(transport), store, nil
}

// handled maps a wrapper error to what a command should return. Classified
// transport failures have already produced a notification, so reporting them
// again would double-print; anything else surfaces normally.
func handled(err error) error {
	if err == nil {
		return nil
	}
	classes := []error{
		httpclient.ErrNetwork,
		httpclient.ErrUnauthorized,
		httpclient.ErrForbidden,
		httpclient.ErrNotFound,
		httpclient.ErrServer,
		httpclient.ErrUnavailable,
		httpclient.ErrApplication,
	}
	for _, class := range classes {
		if errors.Is(err, class) {
			return ErrAlreadyHandled
		}
	}
	return err
}

// pageFlags registers the standard pagination flags on a list command.
func pageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("page-size", 20, "Page size")
}

func pageQuery(cmd *cobra.Command) api.PageQuery {
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("page-size")
	return api.PageQuery{Page: page, PageSize: size}
}

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of billingctl",
		Run: func(cmd *cobra.Command, args []string) {
			sessionPath, err := session.DefaultSessionPath()
			if err != nil {
				sessionPath = "unknown"
			}
			if jsonOutput {
				kv := map[string]string{
					"version":      getCLIVersion(),
					"session_file": sessionPath,
				}
				printJSON(kv)
			} else {
				cmd.Printf("billingctl %s\n", getCLIVersion())
				cmd.Printf("Session file: %s\n", sessionPath)
			}
		},
	}
}

func getCLIVersion() string {
	return "0.1.0"
}

// printJSON prints the given value as JSON to stdout
func printJSON(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}
