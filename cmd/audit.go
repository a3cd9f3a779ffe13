package cmd

import (
	"github.com/spf13/cobra"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check the audit log and view active tokens",
	Long: `Commands that query the admin audit routes of a running server.
They require an admin session token (set TABSIGN_TOKEN).`,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
