// Command bootstrap initializes a ledger store with the platform operator
// identity. It runs once against a fresh store; re-running it fails.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"patronage/internal/domain"
	"patronage/internal/infra"
	"patronage/internal/ledger"
	"patronage/internal/store"
)

func main() {
	var operatorFlag string
	flag.StringVar(&operatorFlag, "operator", "", "identity receiving the platform fee share")
	flag.Parse()

	operator := strings.TrimSpace(operatorFlag)
	if operator == "" {
		exitWithError(errors.New("-operator is required"))
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var st store.Store
	switch cfg.StoreBackend {
	case "graviton":
		gs, err := store.NewDiskStore(cfg.DataDir)
		if err != nil {
			exitWithError(err)
		}
		st = gs
	case "postgres":
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			exitWithError(err)
		}
		defer pool.Close()
		pg := store.NewPostgresStore(infra.NewSQLRunner(pool, logger))
		if err := pg.Setup(ctx); err != nil {
			exitWithError(err)
		}
		st = pg
	default:
		exitWithError(fmt.Errorf("bootstrap supports graviton and postgres backends, not %q", cfg.StoreBackend))
	}
	defer st.Close()

	core := ledger.New(st)
	if err := core.Init(ctx, domain.Address(operator)); err != nil {
		exitWithError(err)
	}

	fmt.Printf("ledger initialized (backend=%s, operator=%s)\n", cfg.StoreBackend, operator)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
	os.Exit(1)
}
