package persistence

import (
	"database/sql/driver"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
	"gorm.io/gorm"
)

// sqliteLower is a Unicode-aware replacement for SQLite's LOWER, which only folds ASCII.
// It is available on every SQLite connection opened after package initialization.
const sqliteLower = "unicode_lower"

func init() {
	gosqlite.MustRegisterDeterministicScalarFunction(sqliteLower, 1, foldCase)
}

func foldCase(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// lowerFunc names the SQL function that folds case the way strings.ToLower does.
func lowerFunc(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return sqliteLower
	}
	return "LOWER"
}
