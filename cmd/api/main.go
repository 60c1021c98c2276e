package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"patronage/internal/domain"
	"patronage/internal/http/handlers"
	"patronage/internal/http/httpapi"
	"patronage/internal/infra"
	"patronage/internal/ledger"
	"patronage/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	st, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer cleanup()

	core := ledger.New(st)
	if err := ensureInitialized(ctx, core, cfg); err != nil {
		logger.Fatal().Err(err).Msg("ledger initialization failed")
	}
	op, err := core.Operator(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read operator identity")
	}
	logger.Info().
		Str("backend", cfg.StoreBackend).
		Str("operator", op.String()).
		Msg("ledger ready")

	app := handlers.NewApp(core, logger)
	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func openStore(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		st, err := store.NewMemoryStore()
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case "graviton":
		st, err := store.NewDiskStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case "postgres":
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		st := store.NewPostgresStore(infra.NewSQLRunner(pool, logger))
		if err := st.Setup(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return st, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
}

// ensureInitialized refuses to serve against an uninitialized ledger unless
// an operator identity is configured, in which case it initializes one.
func ensureInitialized(ctx context.Context, core *ledger.Ledger, cfg *infra.Config) error {
	ok, err := core.Initialized(ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if cfg.OperatorAddress == "" {
		return fmt.Errorf("store is not initialized and OPERATOR_ADDRESS is not set")
	}
	return core.Init(ctx, domain.Address(cfg.OperatorAddress))
}
