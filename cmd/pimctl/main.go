// Command pimctl runs maintenance tasks against the Pimify database:
// migrations, staff and API key provisioning, rate syncs and CSV transfers.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	identityapp "github.com/pimify/backend/internal/application/identity"
	"github.com/pimify/backend/internal/infrastructure/auth"
	"github.com/pimify/backend/internal/infrastructure/bootstrap"
	"github.com/pimify/backend/internal/infrastructure/config"
	"github.com/pimify/backend/internal/infrastructure/migration"
	"github.com/pimify/backend/internal/infrastructure/persistence"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	cmd := &cli.Command{
		Name:  "pimctl",
		Usage: "Pimify maintenance commands",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "log level (debug, info, warn, error)"},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			{
				Name:  "create-staff",
				Usage: "Create a back-office user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.BoolFlag{Name: "superuser"},
				},
				Action: withServices(func(ctx context.Context, c *cli.Command, env *environment) error {
					user, err := env.services.Auth.CreateStaff(ctx, c.String("username"), c.String("password"), c.Bool("superuser"))
					if err != nil {
						return err
					}
					env.log.Info("Staff user created", zap.String("id", user.ID), zap.String("username", user.Username))
					return nil
				}),
			},
			{
				Name:  "create-api-key",
				Usage: "Issue a public API key and print it once",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "label shown in the back office"},
				},
				Action: withServices(func(ctx context.Context, c *cli.Command, env *environment) error {
					key, err := env.services.APIKeys.Create(ctx, identityapp.CreateAPIKeyRequest{Name: c.String("name")})
					if err != nil {
						return err
					}
					env.log.Info("API key created", zap.Uint("id", key.ID))
					fmt.Println(key.APIKey)
					return nil
				}),
			},
			{
				Name:  "sync-rates",
				Usage: "Fetch the latest exchange rates from the provider",
				Action: withServices(func(ctx context.Context, _ *cli.Command, env *environment) error {
					n, err := env.services.Rates.Sync(ctx)
					if err != nil {
						return err
					}
					env.services.Metrics.RatesSynced(ctx, n)
					env.log.Info("Exchange rates synced", zap.Int("rates", n))
					return nil
				}),
			},
			{
				Name:  "export-products",
				Usage: "Write the catalog as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: "-", Usage: "output file, - for stdout"},
				},
				Action: withServices(func(ctx context.Context, c *cli.Command, env *environment) error {
					out := os.Stdout
					if path := c.String("out"); path != "-" {
						f, err := os.Create(path)
						if err != nil {
							return err
						}
						defer f.Close()
						out = f
					}
					n, err := env.services.ProductCSV.Export(ctx, out)
					if err != nil {
						return err
					}
					env.services.Metrics.CSVRows(ctx, "export", n, 0)
					env.log.Info("Products exported", zap.Int("rows", n))
					return nil
				}),
			},
			{
				Name:  "import-products",
				Usage: "Create or update products from CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Required: true, Usage: "input file"},
				},
				Action: withServices(func(ctx context.Context, c *cli.Command, env *environment) error {
					f, err := os.Open(c.String("in"))
					if err != nil {
						return err
					}
					defer f.Close()

					report, err := env.services.ProductCSV.Import(ctx, f)
					if err != nil {
						return err
					}
					env.services.Metrics.CSVRows(ctx, "import", report.Created+report.Updated, len(report.Errors))
					for _, rowErr := range report.Errors {
						env.log.Warn("Row rejected", zap.Error(rowErr))
					}
					env.log.Info("Products imported",
						zap.Int("created", report.Created),
						zap.Int("updated", report.Updated),
						zap.Int("failed", len(report.Errors)),
					)
					return nil
				}),
			},
			{
				Name:  "generate-keys",
				Usage: "Generate session authentication and encryption keys for .env",
				Action: func(_ context.Context, _ *cli.Command) error {
					authKey, encKey, err := auth.GenerateKeys()
					if err != nil {
						return err
					}
					fmt.Printf("PIM_SESSION_AUTH_KEY=%s\nPIM_SESSION_ENC_KEY=%s\n", authKey, encKey)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pimctl:", err)
		os.Exit(1)
	}
}

type environment struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *persistence.Database
	services *bootstrap.Container
}

// open loads configuration and connects to the database
func open(c *cli.Command) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	logCfg := cfg.Log
	logCfg.Level = c.String("log-level")
	logCfg.Format = "console"
	logCfg.Output = "stderr"
	log, err := bootstrap.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	db, err := bootstrap.OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, log: log, db: db}, nil
}

func (e *environment) close() {
	if e.services != nil {
		if err := e.services.Close(); err != nil {
			e.log.Warn("Error closing services", zap.Error(err))
		}
	}
	if err := e.db.Close(); err != nil {
		e.log.Warn("Error closing database", zap.Error(err))
	}
	_ = e.log.Sync()
}

// withServices opens the database and service container around action
func withServices(action func(context.Context, *cli.Command, *environment) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		env, err := open(c)
		if err != nil {
			return err
		}
		defer env.close()

		env.services, err = bootstrap.NewContainer(ctx, env.cfg, env.db, env.log)
		if err != nil {
			return err
		}
		return action(ctx, c, env)
	}
}

func migrateCommand() *cli.Command {
	// run wraps a migrator action; sqlite and mysql only support "up"
	run := func(action func(*migration.Migrator, *cli.Command, *zap.Logger) error) cli.ActionFunc {
		return func(_ context.Context, c *cli.Command) error {
			env, err := open(c)
			if err != nil {
				return err
			}
			defer env.close()

			if env.db.Driver != config.DriverPostgres {
				return fmt.Errorf("versioned migrations require postgres, %s uses \"migrate up\"", env.db.Driver)
			}
			sqlDB, err := env.db.DB.DB()
			if err != nil {
				return err
			}
			m, err := migration.New(sqlDB, env.log)
			if err != nil {
				return err
			}
			return action(m, c, env.log)
		}
	}

	intArg := func(c *cli.Command, name string) (int, error) {
		raw := c.Args().First()
		if raw == "" {
			return 0, fmt.Errorf("%s required", name)
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q", name, raw)
		}
		return n, nil
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(_ context.Context, c *cli.Command) error {
					env, err := open(c)
					if err != nil {
						return err
					}
					defer env.close()
					if err := bootstrap.Migrate(env.db, env.log); err != nil {
						return err
					}
					env.log.Info("Migration complete")
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "Roll back all migrations",
				Action: run(func(m *migration.Migrator, _ *cli.Command, _ *zap.Logger) error {
					return m.Down()
				}),
			},
			{
				Name:      "steps",
				Usage:     "Apply (n > 0) or roll back (n < 0) n migrations",
				ArgsUsage: "<n>",
				Action: run(func(m *migration.Migrator, c *cli.Command, _ *zap.Logger) error {
					n, err := intArg(c, "step count")
					if err != nil {
						return err
					}
					return m.Steps(n)
				}),
			},
			{
				Name:  "version",
				Usage: "Print the applied schema version",
				Action: run(func(m *migration.Migrator, _ *cli.Command, log *zap.Logger) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					if version == 0 {
						log.Info("No migrations applied")
						return nil
					}
					log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
					return nil
				}),
			},
			{
				Name:      "force",
				Usage:     "Set the schema version without running migrations",
				ArgsUsage: "<version>",
				Action: run(func(m *migration.Migrator, c *cli.Command, _ *zap.Logger) error {
					v, err := intArg(c, "version")
					if err != nil {
						return err
					}
					if v < 0 {
						return errors.New("version must not be negative")
					}
					return m.Force(v)
				}),
			},
		},
	}
}
