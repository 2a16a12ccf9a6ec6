package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/leaders-st/helpdesk/internal/interfaces/cli/listen"
	"github.com/leaders-st/helpdesk/internal/interfaces/cli/migrate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "helpdesk",
		Short: "Helpdesk - email-driven support ticket engine",
		Long:  `Helpdesk watches a support mailbox, turns inbound emails into tickets, alerts admins, and enforces response-time SLAs.`,
	}

	rootCmd.AddCommand(
		listen.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
