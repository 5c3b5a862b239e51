package models

import "github.com/shopspring/decimal"

// Category groups products. Description is NULL when empty.
type Category struct {
	CategoryID  int     `gorm:"column:category_id;primaryKey" csv:"category_id"`
	Name        string  `gorm:"column:name;not null"          csv:"name"`
	Description *string `gorm:"column:description"            csv:"description"`
}

func (Category) TableName() string { return "categories" }

// Product belongs to exactly one Category.
type Product struct {
	ProductID  int             `gorm:"column:product_id;primaryKey" csv:"product_id"`
	CategoryID int             `gorm:"column:category_id;not null"  csv:"category_id"`
	Name       string          `gorm:"column:name;not null"         csv:"name"`
	Price      decimal.Decimal `gorm:"column:price;not null"        csv:"price"`
	Stock      int             `gorm:"column:stock;not null"        csv:"stock"`
}

func (Product) TableName() string { return "products" }

// Customer places orders.
type Customer struct {
	CustomerID int    `gorm:"column:customer_id;primaryKey" csv:"customer_id"`
	FirstName  string `gorm:"column:first_name;not null"    csv:"first_name"`
	LastName   string `gorm:"column:last_name;not null"     csv:"last_name"`
	Email      string `gorm:"column:email;not null"         csv:"email"`
	SignupDate Date   `gorm:"column:signup_date;not null"   csv:"signup_date"`
}

func (Customer) TableName() string { return "customers" }

// FullName is first and last name joined by a single space.
func (c Customer) FullName() string { return c.FirstName + " " + c.LastName }
