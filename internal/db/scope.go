package db

import (
	"context"

	"gorm.io/gorm"
)

type connKey struct{}

// WithConn returns a copy of ctx carrying conn as the request's database handle.
func WithConn(ctx context.Context, conn *gorm.DB) context.Context {
	return context.WithValue(ctx, connKey{}, conn)
}

// FromContext returns the scoped handle stored in ctx, or fallback when the
// caller runs outside a scope. The result is already bound to ctx.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if conn, ok := ctx.Value(connKey{}).(*gorm.DB); ok && conn != nil {
		return conn.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}

// Scope acquires one dedicated connection from the pool, runs fn with it
// attached to ctx and releases it when fn returns or panics.
func Scope(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(WithConn(ctx, conn))
	})
}
