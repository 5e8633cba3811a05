// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/controle-financeiro/api/internal/application/adapter"
)

// txKey is the context key under which the active *gorm.DB transaction is stored.
type txKey struct{}

// gormTransactor implements the adapter.Transactor interface.
type gormTransactor struct {
	db           *gorm.DB
	readOnlyOpts *sql.TxOptions
}

// NewTransactor creates a new transactor over db.
// SQLite does not accept read-only transaction options, so read-only units
// of work run as plain transactions there.
func NewTransactor(db *gorm.DB) adapter.Transactor {
	t := &gormTransactor{db: db}
	if db.Dialector.Name() != "sqlite" {
		t.readOnlyOpts = &sql.TxOptions{ReadOnly: true}
	}
	return t
}

// WithinTransaction runs fn in a read-write transaction, joining an already active one.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, fn, nil)
}

// WithinReadOnlyTransaction runs fn in a read-only transaction, joining an already active one.
func (t *gormTransactor) WithinReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, fn, t.readOnlyOpts)
}

func (t *gormTransactor) run(ctx context.Context, fn func(ctx context.Context) error, opts *sql.TxOptions) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	txFunc := func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}
	if opts != nil {
		return t.db.WithContext(ctx).Transaction(txFunc, opts)
	}
	return t.db.WithContext(ctx).Transaction(txFunc)
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
