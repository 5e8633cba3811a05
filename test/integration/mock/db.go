package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database used by the feature suite.
type Db struct {
	DbConn *gorm.DB
	schema string
	tables []string
	models map[string]any
}

// NewDb opens the shared database once and migrates the given models.
// Models must be listed parents first; tables are cleared in reverse order.
func NewDb(schema string, models ...any) *Db {
	once.Do(func() {
		db = open(schema, models)
	})
	return db
}

func open(schema string, models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared&_pragma=foreign_keys(1)")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		schema: schema,
		models: make(map[string]any, len(models)),
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(model); err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", model, err.Error()))
		}
		newDbMock.tables = append(newDbMock.tables, stmt.Schema.Table)
		newDbMock.models[stmt.Schema.Table] = model
	}

	if err := newDbMock.init(models); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

func (d *Db) init(models []any) error {
	for i := len(d.tables) - 1; i >= 0; i-- {
		if err := d.DbConn.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", d.tables[i])).Error; err != nil {
			return err
		}
	}

	if err := d.DbConn.AutoMigrate(models...); err != nil {
		return err
	}

	return d.checkTables()
}

// ClearDB deletes every row and resets the autoincrement counters.
func (d *Db) ClearDB() error {
	for i := len(d.tables) - 1; i >= 0; i-- {
		table := d.tables[i]

		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(d.models[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}

		err = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}

	return nil
}

func (d *Db) checkTables() error {
	for _, table := range d.tables {
		if !d.DbConn.Migrator().HasTable(table) {
			return fmt.Errorf("table %s was not created in schema %s", table, d.schema)
		}
	}
	return nil
}

// GetModel returns the model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
