package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory SQLite connection used by the feature suite.
// The connection is opened once; scenarios call Reset to wipe all rows
// between runs.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared test database and migrates the given models.
// The models map is keyed by table name so steps can assert on tables
// generically.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps the shared in-memory database alive for
	// the whole suite.
	dbSQL.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}

	modelList := make([]any, 0, len(models))
	for _, m := range models {
		modelList = append(modelList, m)
	}
	if err := conn.AutoMigrate(modelList...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{DbConn: conn, models: models}
}

// Reset deletes every row from every registered table.
func (d *Db) Reset() error {
	for table := range d.models {
		if err := d.DbConn.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetModel returns the model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
