package cmd

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/somechocolate/tableau-embedded-analytics/internal/audit"
	"github.com/somechocolate/tableau-embedded-analytics/internal/config"
	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
	"github.com/somechocolate/tableau-embedded-analytics/internal/keys"
	"github.com/somechocolate/tableau-embedded-analytics/internal/service"
	"github.com/somechocolate/tableau-embedded-analytics/internal/store"
	"github.com/somechocolate/tableau-embedded-analytics/pkg/client"
)

var (
	issueTargetFile string
	issueEmail      string
	issueLevel      string
	issueAdmin      bool
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Mint a Connected App token",
	Long: `Mints a signed Connected App token for embedding Tableau content.

Modes:
  1. Remote (Default): Requests the token from the configured tabsign server.
  2. Standalone (--config): Loads a local config file and signs the token locally.`,
	Example: `  # Remote issue (uses TABSIGN_ADDR)
  tabsign issue --email alice@example.com --level Full

  # Issue locally
  tabsign issue -f tabsign.yaml --email alice@example.com --admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if issueTargetFile != "" {
			// if -f is passed, handle it locally
			log.Debug().Msg("Running 'issue' command in local mode")
			return issueTokenLocally(cmd, args)
		}
		// otherwise, expect to issue from remote server
		log.Debug().Msg("Running 'issue' command in remote mode")
		return issueTokenRemote(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(issueCmd)

	issueCmd.Flags().StringVarP(&issueTargetFile, "config", "f", "", "Run locally using this config file")
	issueCmd.Flags().StringVar(&issueEmail, "email", "", "Email address to embed as the token subject")
	issueCmd.Flags().StringVar(&issueLevel, "level", "", "Authorization level to embed")
	issueCmd.Flags().BoolVar(&issueAdmin, "admin", false, "Request the admin flag")
}

func issueTokenRemote(cmd *cobra.Command, _ []string) error {
	cli, err := getClient()
	if err != nil {
		return err
	}

	log.Info().Msg("Requesting token from server...")
	tok, correlation, err := cli.RequestToken(cmd.Context(), client.RequestTokenOptions{
		Email:   issueEmail,
		Level:   issueLevel,
		IsAdmin: issueAdmin,
	})
	if err != nil {
		return logError(err, correlation, "failed to request token")
	}

	log.Info().Msgf("Token issued for '%s' (jti: %s)", tok.Subject, tok.JTI)
	return printToken(tok)
}

func issueTokenLocally(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(issueTargetFile)
	if err != nil {
		return err
	}

	keyProvider, err := keys.Build(cfg.Issuer)
	if err != nil {
		return err
	}
	log.Debug().Msgf("Using key provider: '%s'", keyProvider.Name())

	// local one-shot issuance needs neither auditing nor bookkeeping
	svc := service.NewTokenService(
		keyProvider,
		audit.NewNoopAuditor(),
		store.NewInMemoryTokenStore(),
	)

	req := core.IssuanceRequest{
		Email: issueEmail,
		Level: issueLevel,
	}
	if issueAdmin {
		req.IsAdmin = true
	}

	tok, err := svc.IssueToken(cmd.Context(), req)
	if err != nil {
		return err
	}

	log.Info().Msgf("Token issued for '%s' (jti: %s)", tok.Subject, tok.JTI)
	return printToken(tok)
}

func printToken(tok *core.IssuedToken) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(tok)
}
