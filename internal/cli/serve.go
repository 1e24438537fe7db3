package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/existflow/clientpulse/internal/auth"
	"github.com/existflow/clientpulse/internal/logger"
	"github.com/existflow/clientpulse/internal/service"
	"github.com/existflow/clientpulse/internal/store"
	"github.com/existflow/clientpulse/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.Close()
		logger.Info("Database closed")
	}()

	gate, err := auth.NewGate(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	if cfg.Auth.StubLogin {
		logger.Warn("Stub login enabled: any email and password will be accepted")
	}

	srv, err := server.New(server.Deps{
		Service:      service.New(st, nil),
		Accounts:     service.NewAccounts(st, gate, cfg.Auth.StubLogin),
		Gate:         gate,
		Health:       st.Ping,
		WebhookOwner: cfg.Webhook.Owner,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("ClientPulse server starting",
		logger.F("port", cfg.Port),
		logger.F("env", cfg.Env),
		logger.F("driver", cfg.Database.Driver))
	return srv.Start(ctx, ":"+cfg.Port)
}

func openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		logger.Error("Failed to open database", logger.F("driver", cfg.Database.Driver), logger.F("error", err.Error()))
		return nil, err
	}
	return st, nil
}
