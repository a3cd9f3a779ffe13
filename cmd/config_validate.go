package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/somechocolate/tableau-embedded-analytics/internal/config"
	"github.com/somechocolate/tableau-embedded-analytics/internal/keys"
)

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Checks that the configuration file parses, that required fields are set,
and that the configured signing key can actually be loaded and parsed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			log.Error().Err(err).Msg("Configuration is invalid.")
			return err
		}
		if _, err := keys.Build(cfg.Issuer); err != nil {
			log.Error().Err(err).Msg("Signing key configuration is invalid.")
			return err
		}
		log.Info().Msg("Configuration is valid.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
