package generator_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdata/app/models"
	"github.com/shashiranjanraj/shopdata/internal/dataset"
	"github.com/shashiranjanraj/shopdata/internal/generator"
	"github.com/shashiranjanraj/shopdata/pkg/storage"
)

func defaults() generator.Options {
	return generator.Options{RowCount: generator.DefaultRowCount, Seed: generator.DefaultSeed}
}

func TestRowCounts(t *testing.T) {
	d := generator.Generate(defaults())
	for _, table := range dataset.Tables {
		assert.Equal(t, 20, d.Counts()[table], table)
	}
}

func TestReferentialIntegrityAndTotals(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, 1234} {
		d := generator.Generate(generator.Options{RowCount: 20, Seed: seed})
		assert.NoError(t, d.Check(), "seed %d", seed)
	}
}

func TestFixedFields(t *testing.T) {
	d := generator.Generate(defaults())

	c := d.Categories[2]
	assert.Equal(t, 3, c.CategoryID)
	assert.Equal(t, "Category 3", c.Name)
	require.NotNil(t, c.Description)
	assert.Equal(t, "Description for category 3", *c.Description)

	cu := d.Customers[0]
	assert.Equal(t, "First1", cu.FirstName)
	assert.Equal(t, "Last1", cu.LastName)
	assert.Equal(t, "user1@example.com", cu.Email)
	assert.Equal(t, "2023-01-02", cu.SignupDate.String())
	assert.Equal(t, "2023-01-21", d.Customers[19].SignupDate.String())

	assert.Equal(t, "2023-02-02", d.Orders[0].OrderDate.String())
	assert.Equal(t, "2023-02-21", d.Orders[19].OrderDate.String())
}

func TestProductsCycleCategories(t *testing.T) {
	d := generator.Generate(generator.Options{RowCount: 5, Seed: 42})
	for i, p := range d.Products {
		assert.Equal(t, i+1, p.ProductID)
		assert.Equal(t, d.Categories[i%len(d.Categories)].CategoryID, p.CategoryID)
		assert.Equal(t, fmt.Sprintf("Product %d", i+1), p.Name)
	}
}

func TestRandomValuesStayInRange(t *testing.T) {
	d := generator.Generate(generator.Options{RowCount: 200, Seed: 7})
	lo, hi := decimal.NewFromInt(10), decimal.NewFromInt(200)

	for _, p := range d.Products {
		assert.True(t, p.Price.GreaterThanOrEqual(lo) && p.Price.LessThanOrEqual(hi), p.Price.String())
		assert.True(t, p.Price.Equal(p.Price.Round(2)), p.Price.String())
		assert.GreaterOrEqual(t, p.Stock, 5)
		assert.LessOrEqual(t, p.Stock, 50)
	}
	for _, o := range d.Orders {
		assert.True(t, o.Status.Valid())
	}
	for _, it := range d.OrderItems {
		assert.GreaterOrEqual(t, it.Quantity, 1)
		assert.LessOrEqual(t, it.Quantity, 3)
	}
}

func TestOneItemPerOrder(t *testing.T) {
	d := generator.Generate(defaults())
	require.Len(t, d.OrderItems, len(d.Orders))

	products := map[int]models.Product{}
	for _, p := range d.Products {
		products[p.ProductID] = p
	}

	for i, it := range d.OrderItems {
		assert.Equal(t, i+1, it.OrderItemID)
		assert.Equal(t, d.Orders[i].OrderID, it.OrderID)
		assert.True(t, it.UnitPrice.Equal(products[it.ProductID].Price))
		assert.True(t, it.LineTotal.Equal(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)))
		assert.True(t, d.Orders[i].Total.Equal(it.LineTotal))
	}
}

func TestSameSeedSameBytes(t *testing.T) {
	ctx := context.Background()
	dirA, dirB := t.TempDir(), t.TempDir()

	for _, dir := range []string{dirA, dirB} {
		disk, err := storage.NewLocal(dir)
		require.NoError(t, err)
		_, err = generator.Run(ctx, disk, defaults())
		require.NoError(t, err)
	}

	for _, table := range dataset.Tables {
		a, err := os.ReadFile(filepath.Join(dirA, dataset.FileName(table)))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, dataset.FileName(table)))
		require.NoError(t, err)
		assert.Equal(t, a, b, table)
	}
}

func TestSeedProducesKnownProducts(t *testing.T) {
	d := generator.Generate(defaults())

	data, err := d.Encode(dataset.Products)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data),
		"product_id,category_id,name,price,stock\n1,1,Product 1,67.95,22\n"), string(data))
}

func TestDifferentSeedDifferentData(t *testing.T) {
	a := generator.Generate(generator.Options{RowCount: 20, Seed: 42})
	b := generator.Generate(generator.Options{RowCount: 20, Seed: 43})

	pa, err := a.Encode(dataset.Products)
	require.NoError(t, err)
	pb, err := b.Encode(dataset.Products)
	require.NoError(t, err)
	assert.NotEqual(t, pa, pb)
}

func TestRunOverwritesFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	disk, err := storage.NewLocal(root)
	require.NoError(t, err)

	stale := filepath.Join(root, "csv", "orders.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	opts := defaults()
	opts.Dir = "csv"
	d, err := generator.Run(ctx, disk, opts)
	require.NoError(t, err)

	data, err := os.ReadFile(stale)
	require.NoError(t, err)
	want, err := d.Encode(dataset.Orders)
	require.NoError(t, err)
	assert.Equal(t, want, data)
}
