package persistence

import (
	"context"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"gorm.io/gorm"
)

type txContextKey struct{}

// GormTxManager runs application-level units of work inside a single
// database transaction. The transaction handle travels in the context,
// so every repository call made within the function joins the same
// transaction without the repositories knowing about the manager.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// Do executes fn inside a transaction. A nested Do joins the transaction
// already carried by the context instead of opening a second one.
func (m *GormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// txFromContext returns the transaction carried by the context, or nil
// when the caller runs outside a managed transaction.
func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx
}

// dbForContext resolves the handle a repository should use: the managed
// transaction when one is in flight, the base connection otherwise.
func dbForContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// Ensure GormTxManager implements shared.TxManager
var _ shared.TxManager = (*GormTxManager)(nil)
