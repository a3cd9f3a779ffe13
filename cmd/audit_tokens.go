package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var auditTokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List currently active tokens",
	Long: `Retrieves a list of all currently active (non-expired) tokens issued by the server.
This includes the subject, authorization level, and expiration time of each token.

This command requires an admin session token (set TABSIGN_TOKEN).`,
	Example: `  tabsign audit tokens`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Debug().Msg("Fetching active tokens...")
		tokens, correlation, err := cli.ListActiveTokens(cmd.Context())
		if err != nil {
			return logError(err, correlation, "failed to retrieve active tokens")
		}

		if len(tokens) == 0 {
			log.Info().Msg("No active tokens found")
			return nil
		}
		log.Debug().Msgf("Retrieved %d active token(s)", len(tokens))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Issued", "Expires", "Subject", "Level", "Admin", "JTI",
		})

		for _, tok := range tokens {
			timeLeft := time.Until(tok.ExpiresAt).Round(time.Minute)

			adminStr := ""
			if tok.Admin {
				adminStr = "admin"
			}
			sub := truncate(tok.Subject, 64)
			t.AppendRow(table.Row{
				tok.IssuedAt.Format(time.RFC3339),
				fmt.Sprintf("%s (%s)", tok.ExpiresAt.Format("15:04"), faint(timeLeft.String())),
				bold(sub),
				tok.Level,
				adminStr,
				faint(truncate(tok.JTI, 12)),
			})
		}

		s := table.StyleRounded
		s.Format.Header = text.FormatDefault
		t.SetStyle(s)
		t.Render()
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditTokensCmd)
}
