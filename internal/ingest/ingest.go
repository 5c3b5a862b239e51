// Package ingest loads the five shop CSV files into a fresh SQLite
// database.
//
// A run either commits every row or none: the CSVs are decoded before the
// database is touched, the previous database file is replaced, the schema
// is rebuilt from the registered migrations and all inserts share one
// transaction.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdata/internal/dataset"
	"github.com/shashiranjanraj/shopdata/pkg/database"
	"github.com/shashiranjanraj/shopdata/pkg/logger"
	"github.com/shashiranjanraj/shopdata/pkg/metrics"
	"github.com/shashiranjanraj/shopdata/pkg/migration"
	"github.com/shashiranjanraj/shopdata/pkg/storage"

	// Registers the shop schema.
	_ "github.com/shashiranjanraj/shopdata/database/migrations"
)

// batchSize keeps each INSERT well below SQLite's bound-parameter limit.
const batchSize = 500

// ErrMissingFiles is matched by every MissingFilesError.
var ErrMissingFiles = errors.New("ingest: missing CSV files")

// MissingFilesError lists every expected CSV that was not found.
type MissingFilesError struct {
	Paths []string
}

func (e *MissingFilesError) Error() string {
	return fmt.Sprintf("ingest: missing CSV files: %s", strings.Join(e.Paths, ", "))
}

func (e *MissingFilesError) Is(target error) bool { return target == ErrMissingFiles }

// Result describes a committed load.
type Result struct {
	DBPath string
	Counts map[string]int
}

// Run reads dir/<table>.csv for every table from disk and loads them into
// a new database at dbPath.
func Run(ctx context.Context, disk storage.Disk, dir, dbPath string) (*Result, error) {
	defer metrics.ObserveStage("ingest", time.Now())
	log := logger.WithCtx(ctx)

	if err := checkFiles(ctx, disk, dir); err != nil {
		metrics.IngestFailures.WithLabelValues("files").Inc()
		return nil, err
	}

	d, err := dataset.Read(ctx, disk, dir)
	if err != nil {
		metrics.IngestFailures.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("ingest: %w", err)
	}

	if err := os.Remove(dbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		metrics.IngestFailures.WithLabelValues("schema").Inc()
		return nil, fmt.Errorf("ingest: remove old database: %w", err)
	}

	db, err := database.Open(dbPath)
	if err != nil {
		metrics.IngestFailures.WithLabelValues("schema").Inc()
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer func() {
		if cerr := database.Close(db); cerr != nil {
			log.Warn("ingest: close database", "error", cerr)
		}
	}()

	if err := migration.New(db).Fresh(ctx); err != nil {
		metrics.IngestFailures.WithLabelValues("schema").Inc()
		return nil, fmt.Errorf("ingest: build schema: %w", err)
	}

	if err := insert(ctx, db, d); err != nil {
		metrics.IngestFailures.WithLabelValues("insert").Inc()
		return nil, err
	}

	counts := d.Counts()
	for table, n := range counts {
		metrics.RowsIngested.WithLabelValues(table).Add(float64(n))
	}
	log.Info("ingest: database populated", "db", dbPath, "counts", counts)
	return &Result{DBPath: dbPath, Counts: counts}, nil
}

func checkFiles(ctx context.Context, disk storage.Disk, dir string) error {
	var missing []string
	for _, table := range dataset.Tables {
		p := dataset.FilePath(dir, table)
		ok, err := disk.Exists(ctx, p)
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}
		if !ok {
			missing = append(missing, disk.Location(p))
		}
	}
	if len(missing) > 0 {
		return &MissingFilesError{Paths: missing}
	}
	return nil
}

// insert writes every table in dependency order inside one transaction.
func insert(ctx context.Context, db *gorm.DB, d *dataset.Dataset) error {
	steps := []struct {
		table string
		n     int
		rows  any
	}{
		{dataset.Categories, len(d.Categories), &d.Categories},
		{dataset.Products, len(d.Products), &d.Products},
		{dataset.Customers, len(d.Customers), &d.Customers},
		{dataset.Orders, len(d.Orders), &d.Orders},
		{dataset.OrderItems, len(d.OrderItems), &d.OrderItems},
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range steps {
			if s.n == 0 {
				continue
			}
			if err := tx.CreateInBatches(s.rows, batchSize).Error; err != nil {
				return fmt.Errorf("ingest: insert %s: %w", s.table, err)
			}
		}
		return nil
	})
}
