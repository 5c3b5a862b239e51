package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every status in a stable order.
var OrderStatuses = []OrderStatus{StatusPending, StatusShipped, StatusDelivered}

func (s OrderStatus) String() string { return string(s) }

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

func (s *OrderStatus) UnmarshalText(b []byte) error {
	v := OrderStatus(b)
	if !v.Valid() {
		return fmt.Errorf("models: unknown order status %q", string(b))
	}
	*s = v
	return nil
}

// Order is placed by one customer. Total mirrors the line total of the
// order's single generated item.
type Order struct {
	OrderID    int             `gorm:"column:order_id;primaryKey"  csv:"order_id"`
	CustomerID int             `gorm:"column:customer_id;not null" csv:"customer_id"`
	OrderDate  Date            `gorm:"column:order_date;not null"  csv:"order_date"`
	Status     OrderStatus     `gorm:"column:status;not null"      csv:"status"`
	Total      decimal.Decimal `gorm:"column:total;not null"       csv:"total"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	OrderItemID int             `gorm:"column:order_item_id;primaryKey" csv:"order_item_id"`
	OrderID     int             `gorm:"column:order_id;not null"        csv:"order_id"`
	ProductID   int             `gorm:"column:product_id;not null"      csv:"product_id"`
	Quantity    int             `gorm:"column:quantity;not null"        csv:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;not null"      csv:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;not null"      csv:"line_total"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotal is unit price times quantity rounded to cents.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
