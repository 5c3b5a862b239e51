// Package report ranks customers by lifetime spend.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdata/pkg/database"
	"github.com/shashiranjanraj/shopdata/pkg/logger"
	"github.com/shashiranjanraj/shopdata/pkg/metrics"
)

// ErrDatabaseNotFound is returned when the database file does not exist.
var ErrDatabaseNotFound = errors.New("database not found")

const (
	title   = "Top Customers by Total Spend:"
	noData  = "No data found."
	divider = "-+-"
	sep     = " | "
)

// Customers without orders still appear, with a spend of zero. Ties are
// broken by name.
const topCustomersQuery = `
SELECT
    c.customer_id,
    c.first_name || ' ' || c.last_name AS customer_name,
    c.email,
    COALESCE(SUM(oi.line_total), 0) AS total_spend
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.customer_id
LEFT JOIN order_items oi ON oi.order_id = o.order_id
GROUP BY c.customer_id, c.first_name, c.last_name, c.email
ORDER BY total_spend DESC, customer_name ASC`

// CustomerSpend is one report row.
type CustomerSpend struct {
	CustomerID   int             `gorm:"column:customer_id"`
	CustomerName string          `gorm:"column:customer_name"`
	Email        string          `gorm:"column:email"`
	TotalSpend   decimal.Decimal `gorm:"column:total_spend"`
}

// TopCustomers returns every customer ordered by total spend, highest first.
func TopCustomers(ctx context.Context, db *gorm.DB) ([]CustomerSpend, error) {
	var rows []CustomerSpend
	if err := db.WithContext(ctx).Raw(topCustomersQuery).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("report: query top customers: %w", err)
	}
	return rows, nil
}

// Format renders rows as a plain-text table. Every cell, the last column
// included, is padded to its column's width.
func Format(rows []CustomerSpend) string {
	headers := []string{"Customer ID", "Name", "Email", "Total Spend"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			strconv.Itoa(r.CustomerID),
			r.CustomerName,
			r.Email,
			"$" + r.TotalSpend.StringFixed(2),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	line := func(items []string) string {
		padded := make([]string, len(items))
		for i, item := range items {
			padded[i] = runewidth.FillRight(item, widths[i])
		}
		return strings.Join(padded, sep)
	}

	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}

	lines := []string{line(headers), strings.Join(dashes, divider)}
	for _, row := range cells {
		lines = append(lines, line(row))
	}
	return strings.Join(lines, "\n")
}

// Run prints the top-customers table for the database at dbPath to w.
func Run(ctx context.Context, w io.Writer, dbPath string) ([]CustomerSpend, error) {
	defer metrics.ObserveStage("report", time.Now())
	log := logger.WithCtx(ctx)

	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		}
		return nil, fmt.Errorf("report: stat %s: %w", dbPath, err)
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	defer func() {
		if cerr := database.Close(db); cerr != nil {
			log.Warn("report: close database", "error", cerr)
		}
	}()

	rows, err := TopCustomers(ctx, db)
	if err != nil {
		return nil, err
	}
	metrics.ReportCustomers.Set(float64(len(rows)))
	log.Debug("report: customers ranked", "db", dbPath, "count", len(rows))

	if len(rows) == 0 {
		_, err = fmt.Fprintln(w, noData)
		return rows, err
	}
	_, err = fmt.Fprintf(w, "%s\n\n%s\n", title, Format(rows))
	return rows, err
}
