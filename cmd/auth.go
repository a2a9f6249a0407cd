package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"schedbot/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth [account...]",
		Short: "Authorize Google Calendar access for one or more accounts",
		Long: `Authorize schedbot to access Google Calendar for the given accounts.

For each account this prints an authorization URL, waits for the code
shown after granting access, and stores the resulting token under the
account name. With no arguments the account "default" is authorized.

GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set (a .env file in
the working directory is loaded automatically).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := args
			if len(accounts) == 0 {
				accounts = []string{"default"}
			}

			reader := bufio.NewReader(os.Stdin)
			for _, account := range accounts {
				if err := authorizeAccount(cmd, reader, account); err != nil {
					return fmt.Errorf("authorization failed for account %s: %w", account, err)
				}
				fmt.Printf("Token stored for account %q.\n", account)
			}
			return nil
		},
	}

	return cmd
}

func authorizeAccount(cmd *cobra.Command, reader *bufio.Reader, account string) error {
	fmt.Printf("Authorizing account %q.\n", account)
	fmt.Printf("Open this URL in your browser and grant calendar access:\n\n  %s\n\n", google.GetAuthURL())
	fmt.Print("Paste the authorization code here: ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	code := strings.TrimSpace(line)
	if code == "" {
		return fmt.Errorf("no authorization code entered")
	}

	return google.SaveTokenForAccount(cmd.Context(), account, code)
}
