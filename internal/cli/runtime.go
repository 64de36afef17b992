package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/J-mazz/URTledger/internal/config"
	"github.com/J-mazz/URTledger/internal/ledger"
	logpkg "github.com/J-mazz/URTledger/internal/log"
	"github.com/J-mazz/URTledger/internal/storage"
)

// defaultLedgerPath is the CLI's choice of ledger location when neither
// config, environment, nor flags name one. The storage layer itself has no
// default.
const defaultLedgerPath = "urt_ledger.db"

var loadConfigFn = config.Load

// withLedger loads config, sets up logging, opens the store, and hands a
// ready service to fn. The store is closed when fn returns.
func withLedger(cmdCtx context.Context, deps commandDeps, fn func(context.Context, *ledger.Service) error) error {
	loadOpts := config.LoadOptions{}
	if deps.globals != nil {
		if path := strings.TrimSpace(deps.globals.ConfigPath); path != "" {
			loadOpts.ConfigPath = path
		}
		if db := strings.TrimSpace(deps.globals.DBPath); db != "" {
			loadOpts.Flags.LedgerPath = &db
		}
		if level := strings.TrimSpace(deps.globals.LogLevel); level != "" {
			loadOpts.Flags.LogLevel = &level
		}
	}

	cfg, err := loadConfigFn(loadOpts)
	if err != nil {
		return mapCommandError(fmt.Errorf("load config: %w", err))
	}
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = defaultLedgerPath
	}

	logger, closeLog, err := logpkg.Setup(cfg.Logging)
	if err != nil {
		return mapCommandError(fmt.Errorf("setup logging: %w", err))
	}
	defer func() { _ = closeLog() }()

	store, err := storage.Open(cfg.Ledger.Path)
	if err != nil {
		return mapCommandError(fmt.Errorf("open ledger: %w", err))
	}
	defer func() { _ = store.Close() }()

	logger.Debug("ledger opened", "path", store.Path())
	return mapCommandError(fn(cmdCtx, ledger.NewService(store, logger)))
}
