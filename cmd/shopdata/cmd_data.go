package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/shopdata/config"
	"github.com/shashiranjanraj/shopdata/internal/generator"
	"github.com/shashiranjanraj/shopdata/internal/ingest"
	"github.com/shashiranjanraj/shopdata/internal/report"
	"github.com/shashiranjanraj/shopdata/pkg/output"
	"github.com/shashiranjanraj/shopdata/pkg/storage"
)

// runFlags overrides config values for one invocation. Zero values mean
// "use the configured value".
type runFlags struct {
	rows     int
	seed     uint64
	dir      string
	dbPath   string
	reportDB string
}

func (f *runFlags) resolve(cmd *cobra.Command) runFlags {
	r := runFlags{
		rows:     config.RowCount(),
		seed:     config.Seed(),
		dir:      config.DataDir(),
		dbPath:   config.DatabasePath(),
		reportDB: config.ReportDatabasePath(),
	}
	fs := cmd.Flags()
	if fs.Changed("rows") {
		r.rows = f.rows
	}
	if fs.Changed("seed") {
		r.seed = f.seed
	}
	if fs.Changed("dir") {
		r.dir = f.dir
	}
	if fs.Changed("db") {
		r.dbPath = f.dbPath
		r.reportDB = f.dbPath
	}
	return r
}

var flags runFlags

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flags.rows, "rows", generator.DefaultRowCount, "rows per table (ROW_COUNT)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", generator.DefaultSeed, "random seed (SEED)")
}

func addDirFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.dir, "dir", ".", "CSV directory on the storage disk (DATA_DIR)")
}

func addDBFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.dbPath, "db", "ecommerce.db", "SQLite database file (DB_PATH)")
}

func doGenerate(ctx context.Context, w io.Writer, disk storage.Disk, r runFlags) error {
	_, err := generator.Run(ctx, disk, generator.Options{RowCount: r.rows, Seed: r.seed, Dir: r.dir})
	if err != nil {
		return err
	}
	output.Success(w, "CSV files generated in %s", disk.Location(r.dir))
	return nil
}

func doIngest(ctx context.Context, w io.Writer, disk storage.Disk, r runFlags) error {
	res, err := ingest.Run(ctx, disk, r.dir, r.dbPath)
	if err != nil {
		return err
	}
	output.Success(w, "Success: populated %s", res.DBPath)
	return nil
}

func doReport(ctx context.Context, w io.Writer, r runFlags) error {
	_, err := report.Run(ctx, w, r.reportDB)
	return err
}

// shopdata generate
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write synthetic categories, products, customers, orders and order_items CSV files",
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, err := storage.FromConfig(cmd.Context())
		if err != nil {
			return err
		}
		return doGenerate(cmd.Context(), cmd.OutOrStdout(), disk, flags.resolve(cmd))
	},
}

// shopdata ingest
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load the CSV files into a fresh SQLite database",
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, err := storage.FromConfig(cmd.Context())
		if err != nil {
			return err
		}
		return doIngest(cmd.Context(), cmd.OutOrStdout(), disk, flags.resolve(cmd))
	},
}

// shopdata report
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print customers ranked by total spend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return doReport(cmd.Context(), cmd.OutOrStdout(), flags.resolve(cmd))
	},
}

// shopdata pipeline
var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Generate, ingest and report in one run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, w := cmd.Context(), cmd.OutOrStdout()
		r := flags.resolve(cmd)
		r.reportDB = r.dbPath

		disk, err := storage.FromConfig(ctx)
		if err != nil {
			return err
		}

		output.Step(w, 1, "generate")
		if err := doGenerate(ctx, w, disk, r); err != nil {
			return err
		}
		output.Step(w, 2, "ingest")
		if err := doIngest(ctx, w, disk, r); err != nil {
			return err
		}
		output.Step(w, 3, "report")
		return doReport(ctx, w, r)
	},
}

func init() {
	addGenerateFlags(generateCmd)
	addDirFlag(generateCmd)

	addDirFlag(ingestCmd)
	addDBFlag(ingestCmd)

	addDBFlag(reportCmd)

	addGenerateFlags(pipelineCmd)
	addDirFlag(pipelineCmd)
	addDBFlag(pipelineCmd)
}
