package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

func TestCreateTableStatementsHaveNoForeignKeys(t *testing.T) {
	// sql.OpenDB does not dial; statements are only rendered.
	bdb := bun.NewDB(sql.OpenDB(pgdriver.NewConnector()), pgdialect.New())
	defer bdb.Close()

	for _, model := range tables {
		stmt := bdb.NewCreateTable().Model(model).IfNotExists().String()
		assert.Contains(t, stmt, "CREATE TABLE IF NOT EXISTS", "%T", model)
		assert.NotContains(t, stmt, "FOREIGN KEY", "%T", model)
		assert.NotContains(t, stmt, "REFERENCES", "%T", model)
	}
}
