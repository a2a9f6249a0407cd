package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"schedbot/internal/logging"
	"schedbot/internal/scheduler"
	"schedbot/internal/server"
)

func newAskCmd() *cobra.Command {
	var (
		accounts  []string
		logLevel  string
		schedOpts schedulerOptions
	)

	cmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Run a scheduling request, or an interactive session when no query is given",
		Long: `Run a single natural-language scheduling request against the configured
calendar roster, or start an interactive session when no query is given.

Examples:
  schedbot ask "schedule a meeting with akash at 3pm saturday"
  schedbot ask "when are we free this week?"
  schedbot ask

Accounts default to SCHEDBOT_ACCOUNTS (comma-separated) or "default".
Each account needs a stored OAuth token; run 'schedbot auth' first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup(logLevel)

			if len(accounts) == 0 {
				accounts = accountsFromEnv()
			}

			opts, err := schedOpts.build(logger)
			if err != nil {
				return err
			}
			serverContext, err := server.NewServerContext(cmd.Context(), accounts, opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = serverContext.Shutdown()
			}()

			session := &scheduler.Session{}

			if len(args) > 0 {
				query := strings.Join(args, " ")
				fmt.Println(serverContext.Assistant().Handle(cmd.Context(), session, query))
				return nil
			}

			return runInteractive(cmd, serverContext, session)
		},
	}

	cmd.Flags().StringSliceVar(&accounts, "accounts", nil, "Calendar accounts forming the roster. Can also use SCHEDBOT_ACCOUNTS env var.")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&schedOpts.contactsFile, "contacts", "", "JSON file mapping attendee names to email addresses (replaces the built-in directory)")
	cmd.Flags().IntVar(&schedOpts.lookaheadDays, "lookahead-days", 0, "Scheduling window in days (default 7)")
	cmd.Flags().IntVar(&schedOpts.slotMinutes, "slot-minutes", 0, "Minimum free slot length in minutes (default 60)")

	return cmd
}

// runInteractive reads requests line by line until EOF or an exit word.
// The session persists across requests so follow-ups like "whenever I'm
// free" can reuse a previously suggested slot.
func runInteractive(cmd *cobra.Command, serverContext *server.ServerContext, session *scheduler.Session) error {
	fmt.Printf("schedbot %s. Type a scheduling request, or 'quit' to leave.\n", version)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "quit" || query == "exit" {
			break
		}
		fmt.Println(serverContext.Assistant().Handle(cmd.Context(), session, query))
	}
	return scanner.Err()
}

// accountsFromEnv reads the roster from SCHEDBOT_ACCOUNTS, falling back
// to the single account "default".
func accountsFromEnv() []string {
	if accounts := parseCommaSeparatedList(os.Getenv("SCHEDBOT_ACCOUNTS")); len(accounts) > 0 {
		return accounts
	}
	return []string{"default"}
}
