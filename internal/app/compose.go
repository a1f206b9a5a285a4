// Package app wires configuration, storage and services into a cli.App.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/cadence/internal/cli"
	"github.com/alexanderramin/cadence/internal/config"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/logging"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// backend is the storage a set of services runs on.
type backend struct {
	tasks repository.TaskRepo
	todos repository.TodoRepo
	tx    repository.Transactor
	close func()
}

// Build loads configuration, opens the configured store and composes the
// services. The returned func closes the store and the log file.
func Build(ctx context.Context, opts cli.Options) (*cli.App, func(), error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if opts.Store != "" {
		cfg.Store = opts.Store
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid config: %w", err)
		}
	}

	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up logging: %w", err)
	}
	logging.SetDefault(logger)
	log := logging.Component("app")

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	app := compose(b, domain.NewID(cfg.DefaultTaskID), logging.Component("service"))
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	cleanup := func() {
		b.close()
		closeLog()
	}
	return app, cleanup, nil
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (backend, error) {
	switch cfg.Store {
	case config.StoreMemory:
		store := repository.NewStore()
		if cfg.Seed {
			if err := repository.SeedDemoData(ctx, store.Tasks(), store.Todos(), time.Now()); err != nil {
				return backend{}, fmt.Errorf("seeding demo data: %w", err)
			}
			log.Debug().Msg("seeded memory store with demo data")
		}
		log.Debug().Str("store", cfg.Store).Msg("store ready")
		return backend{tasks: store.Tasks(), todos: store.Todos(), tx: store, close: func() {}}, nil

	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return backend{}, fmt.Errorf("opening database: %w", err)
		}
		log.Debug().Str("store", cfg.Store).Str("path", cfg.DBPath).Msg("store ready")
		return sqliteBackend(database, log), nil
	}
}

func sqliteBackend(database *sql.DB, log zerolog.Logger) backend {
	return backend{
		tasks: repository.NewSQLiteTaskRepo(database),
		todos: repository.NewSQLiteTodoRepo(database),
		tx:    repository.NewSQLiteTransactor(db.NewSQLiteUnitOfWork(database)),
		close: func() {
			if err := database.Close(); err != nil {
				log.Warn().Err(err).Msg("closing database")
			}
		},
	}
}

func compose(b backend, defaultTaskID domain.ID, log zerolog.Logger) *cli.App {
	obs := service.NewLogUseCaseObserver(log)
	return &cli.App{
		Tasks:    service.NewTaskService(b.tasks, b.todos, b.tx, obs),
		TaskList: service.NewTaskRetrieveService(b.tasks, obs),
		Todos:    service.NewTodoService(b.tasks, b.todos, obs),
		TodoList: service.NewTodoRetrieveService(b.todos, defaultTaskID, obs),
		Import:   service.NewImportService(b.tx, obs),
	}
}
