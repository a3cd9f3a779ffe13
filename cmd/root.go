package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/somechocolate/tableau-embedded-analytics/internal/buildinfo"
	"github.com/somechocolate/tableau-embedded-analytics/internal/logging"
)

// global flags
var (
	cfgFile    string
	userConfig string
	serverAddr string
)

const ServerAddrKey = "addr"

var rootCmd = &cobra.Command{
	Use:   "tabsign",
	Short: fmt.Sprintf("tabsign token server (version: %s, commit: %s)", buildinfo.Version, buildinfo.CommitHash),
	Long: `tabsign issues signed authentication tokens for Tableau Connected Apps.
A client application embeds the token to prove identity and authorization
scope to Tableau Cloud, which verifies it against the Connected App's
registered public key.`,
	Version: buildinfo.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, configErr := initUserConfig()
		logging.Init(nil)
		if configErr != nil { // handle error after logging is initialized
			return configErr
		}
		if configPath != "" {
			log.Debug().Msgf("using user config file: %s", configPath)
		}
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal().Err(err).Msg("execution failed")
		os.Exit(1)
	}
}

func init() {
	// setup pre-flag logger
	logging.InitDefault()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "tabsign.yaml",
		"Service configuration file")

	rootCmd.PersistentFlags().StringVar(&userConfig, "user-config", "",
		"User configuration file for default values (default is $HOME/.tabsign.yaml)")

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag(logging.LevelKey, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")
	_ = viper.BindPFlag(logging.FormatKey, rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	_ = viper.BindPFlag(logging.NoColorKey, rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "Address of a remote tabsign server")
	_ = viper.BindPFlag(ServerAddrKey, rootCmd.PersistentFlags().Lookup("server"))

	viper.SetEnvPrefix("TABSIGN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))

	viper.AutomaticEnv()

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func initUserConfig() (string, error) {
	// reads in config file and ENV variables if set.
	if userConfig != "" {
		viper.SetConfigFile(userConfig)
	} else {
		// search order: current dir, $HOME, XDG config
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}

		config, err := os.UserConfigDir()
		if err == nil {
			viper.AddConfigPath(config + "/tabsign")
		}

		viper.SetConfigType("yaml")
		viper.SetConfigName(".tabsign")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundError) {
			return "", err
		}
	} else {
		return viper.ConfigFileUsed(), nil
	}

	return "", nil
}
