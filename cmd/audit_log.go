package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/somechocolate/tableau-embedded-analytics/pkg/client"
)

var (
	auditLogSubject     string
	auditLogJTI         string
	auditLogFingerprint string
)

// auditLogCmd represents the audit log command
var auditLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Retrieve and display audit log entries",
	Example: `  tabsign audit log
  tabsign audit log --subject alice@example.com -n 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Info().Msg("Fetching audit log...")
		audits, correlation, err := cli.ListAudits(cmd.Context(), client.ListAuditsOpts{
			Limit:       uint(limit),
			Subject:     auditLogSubject,
			JTI:         auditLogJTI,
			Fingerprint: auditLogFingerprint,
		})
		if err != nil {
			return logError(err, correlation, "failed to retrieve audit log")
		}

		log.Info().Msgf("Retrieved %d audit entries", len(audits))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Time", "Action", "Subject", "Level", "Granted", "JTI", "Error",
		})

		for _, e := range audits {
			status := "YES"
			if !e.Granted {
				status = "NO"
			}

			sub := "(unknown)"
			if e.Subject != "" {
				sub = truncate(e.Subject, 35)
			}

			t.AppendRow(table.Row{
				e.Time.Format(time.RFC3339),
				e.Action,
				sub,
				e.Level,
				status,
				truncate(e.JTI, 12),
				e.Error,
			})
		}

		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditLogCmd)

	auditLogCmd.Flags().IntP("limit", "n", 25, "Number of audit entries to retrieve")
	auditLogCmd.Flags().StringVar(&auditLogSubject, "subject", "", "Filter by subject email")
	auditLogCmd.Flags().StringVar(&auditLogJTI, "jti", "", "Filter by token ID")
	auditLogCmd.Flags().StringVar(&auditLogFingerprint, "fingerprint", "", "Filter by token fingerprint")
}
