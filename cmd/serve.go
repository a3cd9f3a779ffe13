package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/somechocolate/tableau-embedded-analytics/internal/api"
	"github.com/somechocolate/tableau-embedded-analytics/internal/audit"
	"github.com/somechocolate/tableau-embedded-analytics/internal/config"
	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
	"github.com/somechocolate/tableau-embedded-analytics/internal/keys"
	"github.com/somechocolate/tableau-embedded-analytics/internal/service"
	"github.com/somechocolate/tableau-embedded-analytics/internal/store"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tabsign token server",
	Long: `Starts the HTTP server that mints Connected App tokens.
The signing key is checked on startup so a misconfigured key
fails the process immediately instead of on the first request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env is a convenience for local development, a missing file is fine
		if err := godotenv.Load(); err == nil {
			log.Debug().Msg("Loaded environment from .env file")
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		log.Info().Msg("Initializing signing key provider...")
		keyProvider, err := keys.Build(cfg.Issuer)
		if err != nil {
			return fmt.Errorf("building key provider: %w", err)
		}
		log.Info().Msgf("Using key provider '%s' for client '%s'",
			keyProvider.Name(), cfg.Issuer.ClientID)

		auditor, err := buildAuditor(cfg.Audit)
		if err != nil {
			return fmt.Errorf("building auditor: %w", err)
		}
		defer func() {
			if err := auditor.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close auditor")
			}
		}()

		tokenStore := store.NewInMemoryTokenStore()
		tokenService := service.NewTokenService(keyProvider, auditor, tokenStore)

		srv := api.NewServer(tokenService, auditor, tokenStore, cfg.Debug)

		var adminKey []byte
		if cfg.AdminKey != "" {
			adminKey = []byte(cfg.AdminKey)
			log.Info().Msg("Admin routes enabled")
		}

		addr := cfg.Server.Addr
		if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
			addr = flagAddr
		}

		server := &http.Server{
			Addr:    addr,
			Handler: srv.Routes(adminKey, cfg.Server.CORSOrigins),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func buildAuditor(cfg config.AuditConfig) (core.Auditor, error) {
	if !cfg.Enabled {
		return audit.NewNoopAuditor(), nil
	}
	switch cfg.Type {
	case "file":
		return audit.NewFileAuditor(cfg.Path)
	case "memory", "":
		return audit.NewInMemoryAuditor(), nil
	default:
		return nil, fmt.Errorf("unknown audit type '%s'", cfg.Type)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "address to listen on (overrides config)")
}
