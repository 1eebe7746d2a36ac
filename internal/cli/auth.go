package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpld3/matplotlylib/pkg/credentials"
)

// authCommand creates the auth command with subcommands.
func (c *CLI) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage plotly credentials",
		Long: `Store and inspect the plotly account used for publishing.

Credentials are stored in ~/.config/matplotly/credentials.toml. The
PLOTLY_USERNAME, PLOTLY_API_KEY, and PLOTLY_ENDPOINT environment
variables override the file when set.`,
	}

	cmd.AddCommand(c.authLoginCommand())
	cmd.AddCommand(c.authLogoutCommand())
	cmd.AddCommand(c.authWhoamiCommand())

	return cmd
}

// authLoginCommand creates the login subcommand.
func (c *CLI) authLoginCommand() *cobra.Command {
	var username, apiKey, endpoint string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store plotly credentials",
		Long: `Store your plotly username and API key.

The API key is found under your account settings on the plotly site.
Values not given as flags are prompted for interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newCredentialsStore()
			if err != nil {
				return fmt.Errorf("open credentials store: %w", err)
			}

			if existing, err := store.Load(); err == nil && username == "" && apiKey == "" {
				printInfo("Already logged in as %s", existing.Username)
				printDetail("Run 'matplotly auth logout' first to switch accounts")
				return nil
			}

			reader := bufio.NewReader(os.Stdin)
			if username == "" {
				username, err = prompt(reader, "Username")
				if err != nil {
					return err
				}
			}
			if apiKey == "" {
				apiKey, err = prompt(reader, "API key")
				if err != nil {
					return err
				}
			}

			creds := &credentials.Credentials{
				Username: username,
				APIKey:   apiKey,
				Endpoint: endpoint,
			}
			if err := store.Save(creds); err != nil {
				return fmt.Errorf("save credentials: %w", err)
			}

			printSuccess("Logged in as %s", username)
			printDetail("Credentials: %s", store.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "plotly username")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "plotly API key")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "override the service endpoint")

	return cmd
}

// authLogoutCommand creates the logout subcommand.
func (c *CLI) authLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored plotly credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newCredentialsStore()
			if err != nil {
				return fmt.Errorf("open credentials store: %w", err)
			}
			if err := store.Delete(); err != nil {
				return fmt.Errorf("delete credentials: %w", err)
			}
			printSuccess("Logged out")
			return nil
		},
	}
}

// authWhoamiCommand creates the whoami subcommand.
func (c *CLI) authWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently configured plotly account",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newCredentialsStore()
			if err != nil {
				return fmt.Errorf("open credentials store: %w", err)
			}
			creds, err := store.Resolve()
			if err != nil {
				return err
			}

			printSuccess("Plotly Account")
			printKeyValue("Username", creds.Username)
			printKeyValue("API key", maskKey(creds.APIKey))
			if creds.Endpoint != "" {
				printKeyValue("Endpoint", creds.Endpoint)
			}
			printKeyValue("File", store.Path())
			return nil
		},
	}
}

// prompt reads a single trimmed line from the reader.
func prompt(r *bufio.Reader, label string) (string, error) {
	fmt.Print(StyleDim.Render(label+": "))
	line, err := r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
