package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/albahri/sarraf/infra"
	infrarepo "github.com/albahri/sarraf/infra/repository"
	"github.com/albahri/sarraf/pkg/config"
	"github.com/albahri/sarraf/pkg/provider/exchange"
	"github.com/albahri/sarraf/pkg/service/customer"
	"github.com/albahri/sarraf/pkg/service/movement"
	"github.com/albahri/sarraf/pkg/service/sequence"
	"github.com/albahri/sarraf/pkg/service/statement"
	"github.com/albahri/sarraf/pkg/service/transfer"
	"github.com/albahri/sarraf/webapi"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.Default()
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	numbers := sequence.NewULIDGenerator()

	app := webapi.NewApp(cfg, webapi.Deps{
		Customers:  customer.NewService(uow, logger),
		Movements:  movement.NewService(uow, numbers, logger),
		Transfers:  transfer.NewService(uow, numbers, cfg.Transfer.IdempotencyWindow, logger),
		Statements: statement.NewService(uow, logger),
		Rates:      exchange.NewStaticSource(),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return app.Listen(addr)
}
