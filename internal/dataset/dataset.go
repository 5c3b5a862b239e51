// Package dataset holds the five shop tables in memory and moves them to
// and from CSV files on a storage disk.
package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path"

	"github.com/jszwec/csvutil"

	"github.com/shashiranjanraj/shopdata/app/models"
	"github.com/shashiranjanraj/shopdata/pkg/storage"
)

// Table names, in foreign-key dependency order.
const (
	Categories = "categories"
	Products   = "products"
	Customers  = "customers"
	Orders     = "orders"
	OrderItems = "order_items"
)

// Tables lists every table in the order it is written and loaded.
var Tables = []string{Categories, Products, Customers, Orders, OrderItems}

// FileName is the CSV file a table lives in.
func FileName(table string) string { return table + ".csv" }

// FilePath joins dir and the table's file name into a disk path.
func FilePath(dir, table string) string { return path.Join(dir, FileName(table)) }

// Dataset is one full set of shop rows.
type Dataset struct {
	Categories []models.Category
	Products   []models.Product
	Customers  []models.Customer
	Orders     []models.Order
	OrderItems []models.OrderItem
}

// Counts returns the number of rows per table.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		Categories: len(d.Categories),
		Products:   len(d.Products),
		Customers:  len(d.Customers),
		Orders:     len(d.Orders),
		OrderItems: len(d.OrderItems),
	}
}

func (d *Dataset) target(table string) (any, error) {
	switch table {
	case Categories:
		return &d.Categories, nil
	case Products:
		return &d.Products, nil
	case Customers:
		return &d.Customers, nil
	case Orders:
		return &d.Orders, nil
	case OrderItems:
		return &d.OrderItems, nil
	}
	return nil, fmt.Errorf("dataset: unknown table %q", table)
}

// ─── Encoding ────────────────────────────────────────────────────────────────

// Encode renders one table as CSV with a header row.
func (d *Dataset) Encode(table string) ([]byte, error) {
	var rows any
	switch table {
	case Categories:
		rows = d.Categories
	case Products:
		rows = d.Products
	case Customers:
		rows = d.Customers
	case Orders:
		rows = d.Orders
	case OrderItems:
		rows = d.OrderItems
	default:
		return nil, fmt.Errorf("dataset: unknown table %q", table)
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("dataset: encode %s: %w", table, err)
	}
	return data, nil
}

// Write stores every table as dir/<table>.csv on disk, in dependency order.
func (d *Dataset) Write(ctx context.Context, disk storage.Disk, dir string) error {
	for _, table := range Tables {
		data, err := d.Encode(table)
		if err != nil {
			return err
		}
		if err := disk.Put(ctx, FilePath(dir, table), data); err != nil {
			return fmt.Errorf("dataset: write %s: %w", table, err)
		}
	}
	return nil
}

// ─── Decoding ────────────────────────────────────────────────────────────────

// Decode parses one table's CSV into d. Every struct column must be present
// in the header.
func (d *Dataset) Decode(table string, data []byte) error {
	rows, err := d.target(table)
	if err != nil {
		return err
	}

	dec, err := csvutil.NewDecoder(csv.NewReader(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("dataset: read %s header: %w", table, err)
	}
	dec.DisallowMissingColumns = true

	if err := dec.Decode(rows); err != nil && err != io.EOF {
		return fmt.Errorf("dataset: decode %s: %w", table, err)
	}

	if table == Categories {
		for i := range d.Categories {
			if desc := d.Categories[i].Description; desc != nil && *desc == "" {
				d.Categories[i].Description = nil
			}
		}
	}
	return nil
}

// Read loads every table from dir/<table>.csv on disk.
func Read(ctx context.Context, disk storage.Disk, dir string) (*Dataset, error) {
	d := &Dataset{}
	for _, table := range Tables {
		data, err := readFile(ctx, disk, FilePath(dir, table))
		if err != nil {
			return nil, err
		}
		if err := d.Decode(table, data); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func readFile(ctx context.Context, disk storage.Disk, p string) ([]byte, error) {
	rc, err := disk.GetStream(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", p, err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", p, err)
	}
	return buf.Bytes(), nil
}
