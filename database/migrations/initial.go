package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdata/pkg/migration"
)

func init() {
	migration.Register("0001_create_categories_table", createTable{table: "categories", ddl: createCategories})
	migration.Register("0002_create_products_table", createTable{table: "products", ddl: createProducts})
	migration.Register("0003_create_customers_table", createTable{table: "customers", ddl: createCustomers})
	migration.Register("0004_create_orders_table", createTable{table: "orders", ddl: createOrders})
	migration.Register("0005_create_order_items_table", createTable{table: "order_items", ddl: createOrderItems})
}

// Tables lists the shop tables in foreign-key dependency order.
var Tables = []string{"categories", "products", "customers", "orders", "order_items"}

// createTable is a migration backed by one CREATE TABLE statement.
type createTable struct {
	table string
	ddl   string
}

func (m createTable) Up(db *gorm.DB) error {
	return db.Exec(m.ddl).Error
}

func (m createTable) Down(db *gorm.DB) error {
	return db.Exec("DROP TABLE IF EXISTS " + m.table).Error
}

const createCategories = `
CREATE TABLE categories (
    category_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT
)`

const createProducts = `
CREATE TABLE products (
    product_id INTEGER PRIMARY KEY,
    category_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    stock INTEGER NOT NULL,
    FOREIGN KEY (category_id) REFERENCES categories(category_id)
)`

const createCustomers = `
CREATE TABLE customers (
    customer_id INTEGER PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL,
    signup_date TEXT NOT NULL
)`

const createOrders = `
CREATE TABLE orders (
    order_id INTEGER PRIMARY KEY,
    customer_id INTEGER NOT NULL,
    order_date TEXT NOT NULL,
    status TEXT NOT NULL,
    total REAL NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
)`

const createOrderItems = `
CREATE TABLE order_items (
    order_item_id INTEGER PRIMARY KEY,
    order_id INTEGER NOT NULL,
    product_id INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    unit_price REAL NOT NULL,
    line_total REAL NOT NULL,
    FOREIGN KEY (order_id) REFERENCES orders(order_id),
    FOREIGN KEY (product_id) REFERENCES products(product_id)
)`
