package migrations_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdata/database/migrations"
	"github.com/shashiranjanraj/shopdata/pkg/database"
	"github.com/shashiranjanraj/shopdata/pkg/migration"
)

func TestSchemaBuildsInDependencyOrder(t *testing.T) {
	assert.Equal(t, []string{
		"0001_create_categories_table",
		"0002_create_products_table",
		"0003_create_customers_table",
		"0004_create_orders_table",
		"0005_create_order_items_table",
	}, migration.Names())

	db, err := database.Open(filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, migration.New(db).Fresh(context.Background()))

	for _, table := range migrations.Tables {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var fks []struct {
		Table string `gorm:"column:table"`
		From  string `gorm:"column:from"`
	}
	require.NoError(t, db.Raw("SELECT \"table\", \"from\" FROM pragma_foreign_key_list('order_items')").Scan(&fks).Error)
	require.Len(t, fks, 2)
	assert.ElementsMatch(t, []string{"orders", "products"}, []string{fks[0].Table, fks[1].Table})
}
