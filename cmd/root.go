package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the schedbot application
var rootCmd = &cobra.Command{
	Use:   "schedbot",
	Short: "Natural-language scheduling assistant for Google Calendar",
	Long: `schedbot schedules, cancels and reschedules meetings across a roster of
Google calendars from plain-English requests like "schedule a meeting with
akash and eliana at 3pm saturday".

It can run as:
  - An interactive assistant or one-shot CLI (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "schedbot version %s\n" .Version}}`)

	// If no subcommand is provided, run the ask command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "ask")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
