package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/stream-rota/cmd/cli/commands"
	"github.com/jakechorley/stream-rota/internal/config"
	"github.com/jakechorley/stream-rota/pkg/clients/daysoffclient"
	"github.com/jakechorley/stream-rota/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Stream Rota CLI - Plan weekly presenter and operator shifts",
		Long:  `A CLI tool for generating weekly hourly rotas for presenters and operators from their days off.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateWeekCmd(app))
	rootCmd.AddCommand(commands.ViewAvailabilityCmd(app))
	rootCmd.AddCommand(commands.ListRosterCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the days off client
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.Int("presenters", len(app.Cfg.Roles.Presenters.Pool)),
		zap.Int("operators", len(app.Cfg.Roles.Operators.Pool)))

	app.DaysOffClient = daysoffclient.NewClient(app.Cfg.DaysOffFile)
	app.Logger.Debug("Days off client initialized", zap.String("path", app.DaysOffClient.Path()))

	return nil
}
