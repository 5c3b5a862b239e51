// Package generator produces the synthetic shop dataset.
//
// All randomness comes from one PCG stream seeded by Options.Seed, and the
// draws happen in a fixed order (per product: price then stock; per order:
// customer then status; per item: product then quantity), so a seed always
// yields the same files.
package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/shopdata/app/models"
	"github.com/shashiranjanraj/shopdata/internal/dataset"
	"github.com/shashiranjanraj/shopdata/pkg/logger"
	"github.com/shashiranjanraj/shopdata/pkg/metrics"
	"github.com/shashiranjanraj/shopdata/pkg/storage"
)

const (
	DefaultRowCount = 20
	DefaultSeed     = 42

	minPrice    = 10
	maxPrice    = 200
	minStock    = 5
	maxStock    = 50
	minQuantity = 1
	maxQuantity = 3
)

var (
	signupBase = models.NewDate(2023, time.January, 1)
	orderBase  = models.NewDate(2023, time.February, 1)
)

// Options controls a generation run.
type Options struct {
	RowCount int
	Seed     uint64
	Dir      string // directory on the disk the CSV files go to
}

func (o Options) withDefaults() Options {
	if o.RowCount <= 0 {
		o.RowCount = DefaultRowCount
	}
	if o.Dir == "" {
		o.Dir = "."
	}
	return o
}

// Generate builds the five tables in memory.
func Generate(opts Options) *dataset.Dataset {
	opts = opts.withDefaults()
	g := &generator{
		n:   opts.RowCount,
		rng: rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
	}

	d := &dataset.Dataset{}
	d.Categories = g.categories()
	d.Products = g.products(d.Categories)
	d.Customers = g.customers()
	d.Orders = g.orders(d.Customers)
	d.OrderItems = g.orderItems(d.Orders, d.Products)
	return d
}

// Run generates the dataset and writes it to disk, overwriting any
// previous files.
func Run(ctx context.Context, disk storage.Disk, opts Options) (*dataset.Dataset, error) {
	defer metrics.ObserveStage("generate", time.Now())
	opts = opts.withDefaults()
	log := logger.WithCtx(ctx)

	d := Generate(opts)
	if err := d.Check(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	if err := d.Write(ctx, disk, opts.Dir); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	for table, n := range d.Counts() {
		metrics.RowsGenerated.WithLabelValues(table).Add(float64(n))
	}
	log.Info("generator: csv files written", "dir", disk.Location(opts.Dir), "rows", opts.RowCount, "seed", opts.Seed)
	return d, nil
}

type generator struct {
	n   int
	rng *rand.Rand
}

// uniform returns a real in [lo, hi] rounded to cents.
func (g *generator) uniform(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(lo + (hi-lo)*g.rng.Float64()).Round(2)
}

// intBetween returns an integer in [lo, hi].
func (g *generator) intBetween(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *generator) categories() []models.Category {
	out := make([]models.Category, 0, g.n)
	for i := 1; i <= g.n; i++ {
		desc := fmt.Sprintf("Description for category %d", i)
		out = append(out, models.Category{
			CategoryID:  i,
			Name:        fmt.Sprintf("Category %d", i),
			Description: &desc,
		})
	}
	return out
}

// products assigns categories round-robin.
func (g *generator) products(categories []models.Category) []models.Product {
	out := make([]models.Product, 0, g.n)
	for i := 1; i <= g.n; i++ {
		p := models.Product{
			ProductID:  i,
			CategoryID: categories[(i-1)%len(categories)].CategoryID,
			Name:       fmt.Sprintf("Product %d", i),
		}
		p.Price = g.uniform(minPrice, maxPrice)
		p.Stock = g.intBetween(minStock, maxStock)
		out = append(out, p)
	}
	return out
}

func (g *generator) customers() []models.Customer {
	out := make([]models.Customer, 0, g.n)
	for i := 1; i <= g.n; i++ {
		out = append(out, models.Customer{
			CustomerID: i,
			FirstName:  fmt.Sprintf("First%d", i),
			LastName:   fmt.Sprintf("Last%d", i),
			Email:      fmt.Sprintf("user%d@example.com", i),
			SignupDate: signupBase.AddDays(i),
		})
	}
	return out
}

// orders picks customers with replacement. Totals start at zero and are
// filled in by orderItems.
func (g *generator) orders(customers []models.Customer) []models.Order {
	out := make([]models.Order, 0, g.n)
	for i := 1; i <= g.n; i++ {
		o := models.Order{
			OrderID:   i,
			OrderDate: orderBase.AddDays(i),
			Total:     decimal.Zero,
		}
		o.CustomerID = customers[g.rng.IntN(len(customers))].CustomerID
		o.Status = models.OrderStatuses[g.rng.IntN(len(models.OrderStatuses))]
		out = append(out, o)
	}
	return out
}

// orderItems gives every order exactly one item and sets the order total to
// that item's line total. With more than one item per order the total would
// have to become the sum over the order's items.
func (g *generator) orderItems(orders []models.Order, products []models.Product) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(orders))
	for i := range orders {
		product := products[g.rng.IntN(len(products))]
		quantity := g.intBetween(minQuantity, maxQuantity)
		lineTotal := models.LineTotal(product.Price, quantity)

		out = append(out, models.OrderItem{
			OrderItemID: len(out) + 1,
			OrderID:     orders[i].OrderID,
			ProductID:   product.ProductID,
			Quantity:    quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		})
		orders[i].Total = lineTotal
	}
	return out
}
