package dataset

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/shopdata/app/models"
)

// ErrInconsistent wraps every problem Check reports.
var ErrInconsistent = errors.New("dataset: inconsistent rows")

// Check verifies the relational invariants of d: dense 1-based ids, every
// foreign key resolving, line totals matching price times quantity and each
// order total matching its item. It returns all violations joined.
func (d *Dataset) Check() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInconsistent}, args...)...))
	}

	categories := make(map[int]bool, len(d.Categories))
	for i, c := range d.Categories {
		if c.CategoryID != i+1 {
			fail("categories row %d has id %d", i+1, c.CategoryID)
		}
		categories[c.CategoryID] = true
	}

	products := make(map[int]models.Product, len(d.Products))
	for i, p := range d.Products {
		if p.ProductID != i+1 {
			fail("products row %d has id %d", i+1, p.ProductID)
		}
		if !categories[p.CategoryID] {
			fail("product %d references missing category %d", p.ProductID, p.CategoryID)
		}
		products[p.ProductID] = p
	}

	customers := make(map[int]bool, len(d.Customers))
	for i, c := range d.Customers {
		if c.CustomerID != i+1 {
			fail("customers row %d has id %d", i+1, c.CustomerID)
		}
		if c.SignupDate.IsZero() {
			fail("customer %d has no signup_date", c.CustomerID)
		}
		customers[c.CustomerID] = true
	}

	orders := make(map[int]models.Order, len(d.Orders))
	for i, o := range d.Orders {
		if o.OrderID != i+1 {
			fail("orders row %d has id %d", i+1, o.OrderID)
		}
		if !customers[o.CustomerID] {
			fail("order %d references missing customer %d", o.OrderID, o.CustomerID)
		}
		if o.OrderDate.IsZero() {
			fail("order %d has no order_date", o.OrderID)
		}
		if !o.Status.Valid() {
			fail("order %d has status %q", o.OrderID, o.Status)
		}
		orders[o.OrderID] = o
	}

	itemTotals := make(map[int]decimal.Decimal, len(d.OrderItems))
	for i, it := range d.OrderItems {
		if it.OrderItemID != i+1 {
			fail("order_items row %d has id %d", i+1, it.OrderItemID)
		}
		if _, ok := orders[it.OrderID]; !ok {
			fail("order item %d references missing order %d", it.OrderItemID, it.OrderID)
		}
		if _, ok := products[it.ProductID]; !ok {
			fail("order item %d references missing product %d", it.OrderItemID, it.ProductID)
		}
		if want := models.LineTotal(it.UnitPrice, it.Quantity); !it.LineTotal.Equal(want) {
			fail("order item %d line_total %s, want %s", it.OrderItemID, it.LineTotal, want)
		}
		itemTotals[it.OrderID] = itemTotals[it.OrderID].Add(it.LineTotal)
	}

	for _, o := range d.Orders {
		if sum, ok := itemTotals[o.OrderID]; ok && !o.Total.Equal(sum) {
			fail("order %d total %s, want %s", o.OrderID, o.Total, sum)
		}
	}

	return errors.Join(errs...)
}
