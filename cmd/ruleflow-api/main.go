package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/medforge/ruleflow/pkg/cmd"
	"github.com/medforge/ruleflow/pkg/config"
	ruledir "github.com/medforge/ruleflow/pkg/directory"
	"github.com/medforge/ruleflow/pkg/eventbus"
	"github.com/medforge/ruleflow/pkg/log"
	"github.com/medforge/ruleflow/pkg/protocol"
	"github.com/medforge/ruleflow/pkg/registry"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "ruleflow-api",
		Usage:                 "Create and manage workflow rules",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (kafka, gochannel, none)",
				Value:   "none",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "users-url",
				Usage:   "User directory source (redis:// URL or JSON file path)",
				Value:   "./data/users.json",
				Sources: cli.EnvVars("USERS_URL"),
			},
			&cli.StringFlag{
				Name:    "seed-config",
				Usage:   "Optional YAML seed file with directory members and templates to instantiate",
				Value:   "",
				Sources: cli.EnvVars("SEED_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Ruleflow API")

			persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			var bus eventbus.EventBus

			if provider := command.String("event-bus"); provider != "none" {
				bus, err = cmd.NewEventBus(provider, "ruleflow-api", logger)
				if err != nil {
					return err
				}

				defer func() {
					if err := bus.Close(); err != nil {
						logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
					}
				}()
			}

			var seed *config.SeedConfig

			if path := command.String("seed-config"); path != "" {
				loaded, err := config.LoadSeedConfig(path)
				if err != nil {
					return err
				}

				seed = &loaded
			}

			var directory protocol.UserDirectory

			if seed != nil && len(seed.Users) > 0 {
				directory = ruledir.NewStatic(seed.DirectoryUsers())
			} else {
				directory, err = cmd.NewUserDirectory(command.String("users-url"))
				if err != nil {
					return err
				}
			}

			var publisher eventbus.EventPublisher
			if bus != nil {
				publisher = bus
			}

			notifier := cmd.NewNotifier(publisher, logger)

			reg := registry.NewRegistry(logger)
			reg.RegisterDefaultActions(notifier, directory)

			if seed != nil {
				if err := seedTemplates(ctx, persistence, seed, logger); err != nil {
					return err
				}
			}

			api := NewAPI(logger, persistence, reg, bus)

			return api.Start(command.Int("port"))
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
