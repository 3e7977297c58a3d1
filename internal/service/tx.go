package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx wraps fn in a database transaction. When db is nil (unit tests run
// the services against in-memory repositories) fn is invoked directly with a
// nil tx, which the stub repositories ignore.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
