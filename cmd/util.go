package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/somechocolate/tableau-embedded-analytics/pkg/client"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

func getClient() (*client.Client, error) {
	// we need the user to provide some server address first
	server := viper.GetString(ServerAddrKey)
	if server == "" {
		return nil, fmt.Errorf("server address not configured (use --server or set TABSIGN_ADDR)")
	}

	var token string
	if envToken := os.Getenv("TABSIGN_TOKEN"); envToken != "" {
		token = envToken
	}

	return client.New(server, client.WithAuthToken(token)), nil
}

// logError logs the error together with the server-side correlation ID so
// failed requests can be matched against the audit log.
func logError(err error, correlation, msg string) error {
	evt := log.Error().Err(err)
	if correlation != "" {
		evt = evt.Str("correlation_id", correlation)
	}
	evt.Msg(msg)
	return err
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
