package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/shopdata/config"
	"github.com/shashiranjanraj/shopdata/pkg/logger"
	"github.com/shashiranjanraj/shopdata/pkg/metrics"
	"github.com/shashiranjanraj/shopdata/pkg/output"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/shopdata/database/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if merr := metrics.WriteTextfile(config.MetricsFile()); merr != nil {
		output.Warning(os.Stderr, "%v", merr)
	}
	if err != nil {
		output.Error(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "shopdata",
	Short:         "Synthetic shop dataset pipeline",
	Long:          "Generate synthetic e-commerce CSV files, load them into SQLite and report the top customers by spend.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		logger.Configure(config.AppEnv(), config.LogLevel(), os.Stderr)
		ctx, _ := logger.WithRun(cmd.Context(), cmd.Name())
		cmd.SetContext(ctx)
		return nil
	},
}

func init() {
	// Pipeline
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(pipelineCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
}
