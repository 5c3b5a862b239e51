// Package migration runs the schema migrations registered by
// database/migrations.
//
//	func init() {
//	    migration.Register("0001_create_categories_table", &CreateCategoriesTable{})
//	}
//
// From the CLI:
//
//	shopdata migrate             // run all pending
//	shopdata migrate:rollback    // rollback last batch
//	shopdata migrate:status
//
// The ingestor uses Fresh, which drops every registered table and rebuilds
// the schema from scratch.
package migration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdata/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// ErrNoMigrations is returned when the runner is asked to migrate but
// nothing is registered.
var ErrNoMigrations = errors.New("migration: no migrations registered")

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "shopdata_migrations" }

// ------------------- Registry -------------------

type registeredMigration struct {
	name string
	m    Migration
}

var registry []registeredMigration

// Register adds a migration to the global registry. Names sort in the order
// they must run, so prefix them with a sequence number.
func Register(name string, m Migration) {
	for _, reg := range registry {
		if reg.name == name {
			panic(fmt.Sprintf("migration: %s registered twice", name))
		}
	}
	registry = append(registry, registeredMigration{name: name, m: m})
	sort.SliceStable(registry, func(i, j int) bool {
		return registry[i].name < registry[j].name
	})
}

// Names returns the registered migration names in run order.
func Names() []string {
	names := make([]string, len(registry))
	for i, reg := range registry {
		names[i] = reg.name
	}
	return names
}

// ------------------- Runner -------------------

// Runner executes and tracks migrations.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&migrationRecord{})
}

// Pending returns the migrations that have not yet been run, in run order.
func (r *Runner) Pending(ctx context.Context) ([]registeredMigration, error) {
	var ran []migrationRecord
	if err := r.db.WithContext(ctx).Find(&ran).Error; err != nil {
		return nil, err
	}

	ranSet := make(map[string]bool, len(ran))
	for _, rec := range ran {
		ranSet[rec.Name] = true
	}

	var pending []registeredMigration
	for _, reg := range registry {
		if !ranSet[reg.name] {
			pending = append(pending, reg)
		}
	}
	return pending, nil
}

// Run executes all pending migrations as one batch. Each migration and its
// tracking row commit together.
func (r *Runner) Run(ctx context.Context) error {
	if len(registry) == 0 {
		return ErrNoMigrations
	}
	if err := r.EnsureTable(ctx); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.Pending(ctx)
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}

	log := logger.WithCtx(ctx)
	if len(pending) == 0 {
		log.Info("migration: nothing to migrate")
		return nil
	}

	batch, err := r.lastBatch(ctx)
	if err != nil {
		return err
	}
	batch++

	for _, reg := range pending {
		log.Debug("migration: running", "name", reg.name)

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := reg.m.Up(tx); err != nil {
				return fmt.Errorf("migration: %s up: %w", reg.name, err)
			}
			record := migrationRecord{Name: reg.name, Batch: batch}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("migration: record %s: %w", reg.name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	log.Info("migration: done", "ran", len(pending), "batch", batch)
	return nil
}

// Rollback reverses all migrations from the most recent batch, newest first.
func (r *Runner) Rollback(ctx context.Context) error {
	if err := r.EnsureTable(ctx); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	log := logger.WithCtx(ctx)
	batch, err := r.lastBatch(ctx)
	if err != nil {
		return err
	}
	if batch == 0 {
		log.Info("migration: nothing to roll back")
		return nil
	}

	var records []migrationRecord
	if err := r.db.WithContext(ctx).Where("batch = ?", batch).
		Order("id desc").
		Find(&records).Error; err != nil {
		return fmt.Errorf("migration: load batch %d: %w", batch, err)
	}

	regMap := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		regMap[reg.name] = reg.m
	}

	for _, rec := range records {
		m, ok := regMap[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot rollback %s: not registered", rec.Name)
		}

		log.Debug("migration: rolling back", "name", rec.Name)
		rec := rec
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return fmt.Errorf("migration: %s down: %w", rec.Name, err)
			}
			return tx.Delete(&rec).Error
		})
		if err != nil {
			return err
		}
	}

	log.Info("migration: rolled back", "batch", batch, "count", len(records))
	return nil
}

// Fresh drops every registered table, newest migration first, forgets all
// tracking rows and runs every migration again.
func (r *Runner) Fresh(ctx context.Context) error {
	if len(registry) == 0 {
		return ErrNoMigrations
	}

	for i := len(registry) - 1; i >= 0; i-- {
		reg := registry[i]
		if err := reg.m.Down(r.db.WithContext(ctx)); err != nil {
			return fmt.Errorf("migration: %s down: %w", reg.name, err)
		}
	}
	if err := r.db.WithContext(ctx).Migrator().DropTable(&migrationRecord{}); err != nil {
		return fmt.Errorf("migration: drop tracking table: %w", err)
	}

	return r.Run(ctx)
}

// Status writes every registered migration and whether it has run.
func (r *Runner) Status(ctx context.Context, w io.Writer) error {
	if err := r.EnsureTable(ctx); err != nil {
		return err
	}

	var ran []migrationRecord
	if err := r.db.WithContext(ctx).Find(&ran).Error; err != nil {
		return err
	}

	ranMap := make(map[string]migrationRecord, len(ran))
	for _, rec := range ran {
		ranMap[rec.Name] = rec
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Migration\tStatus\tBatch")
	for _, reg := range registry {
		if rec, ok := ranMap[reg.name]; ok {
			fmt.Fprintf(tw, "%s\tRan\t%d\n", reg.name, rec.Batch)
		} else {
			fmt.Fprintf(tw, "%s\tPending\t-\n", reg.name)
		}
	}
	return tw.Flush()
}

func (r *Runner) lastBatch(ctx context.Context) (int, error) {
	var maxBatch struct{ Max int }
	err := r.db.WithContext(ctx).Model(&migrationRecord{}).
		Select("COALESCE(MAX(batch), 0) as max").
		Scan(&maxBatch).Error
	if err != nil {
		return 0, fmt.Errorf("migration: read last batch: %w", err)
	}
	return maxBatch.Max, nil
}
