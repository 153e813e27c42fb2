package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/medforge/ruleflow/pkg/cmd"
	"github.com/medforge/ruleflow/pkg/log"
	"github.com/medforge/ruleflow/pkg/otelhelper"
	"github.com/medforge/ruleflow/pkg/registry"
)

func main() {
	command := &cli.Command{
		Name:                  "ruleflow-dispatcher",
		Usage:                 "Start the Ruleflow dispatcher service",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dispatcher-id",
				Aliases: []string{"id"},
				Usage:   "Custom dispatcher ID (auto-generated if not provided)",
				Value:   "",
				Sources: cli.EnvVars("DISPATCHER_ID"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:     "event-bus",
				Usage:    "Event bus type (kafka, gochannel)",
				Required: true,
				Sources:  cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "users-url",
				Usage:   "User directory source (redis:// URL or JSON file path)",
				Value:   "./data/users.json",
				Sources: cli.EnvVars("USERS_URL"),
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

			dispatcherID := command.String("dispatcher-id")
			if dispatcherID == "" {
				dispatcherID = fmt.Sprintf("dispatcher-%s", uuid.New().String()[:8])
			}

			logger := log.WithModule("ruleflow-dispatcher").With("dispatcher_id", dispatcherID)
			logger.InfoContext(ctx, "Initializing Ruleflow Dispatcher")

			tracerProvider, err := otelhelper.NewTracerProvider(ctx, "ruleflow-dispatcher")
			if err != nil {
				return fmt.Errorf("failed to initialize tracer: %w", err)
			}

			defer func() {
				if err := tracerProvider.Shutdown(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
				}
			}()

			persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus, err := cmd.NewEventBus(command.String("event-bus"), "ruleflow-dispatcher", logger)
			if err != nil {
				return err
			}

			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			directory, err := cmd.NewUserDirectory(command.String("users-url"))
			if err != nil {
				return err
			}

			notifier := cmd.NewNotifier(eventBus, logger)

			reg := registry.NewRegistry(logger)
			reg.RegisterDefaultActions(notifier, directory)

			dispatcher := NewDispatcher(
				dispatcherID,
				persistence,
				reg,
				eventBus,
				tracerProvider.Tracer("ruleflow-dispatcher"),
				logger,
			)

			return dispatcher.Start(ctx)
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
