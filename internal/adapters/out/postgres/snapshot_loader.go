// Package postgres loads pricing snapshots from PostgreSQL.
//
// The loader reads every pricing table inside one read-only transaction, so a
// snapshot never mixes rows from before and after a back-office update:
//
//	loader := postgres.NewSnapshotLoader(db)
//	snap, err := loader.Load(ctx)
//	if err != nil {
//	    return fmt.Errorf("load pricing snapshot: %w", err)
//	}
//	holder.Replace(snap)
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"pricing/internal/adapters/out/postgres/pricingrepo"
	"pricing/internal/adapters/out/snapshot"
	"pricing/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.SnapshotSource = (*SnapshotLoader)(nil)

// SnapshotLoader builds snapshots from the pricing tables.
type SnapshotLoader struct {
	db *gorm.DB
}

// NewSnapshotLoader creates a loader reading through db.
func NewSnapshotLoader(db *gorm.DB) *SnapshotLoader {
	return &SnapshotLoader{db: db}
}

// Load reads the tables and builds a snapshot. The version is a hash of the
// loaded content, so an unchanged database yields the same version.
func (l *SnapshotLoader) Load(ctx context.Context) (ports.Snapshot, error) {
	var doc snapshot.Document
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var readErr error
		doc, readErr = pricingrepo.NewGormPricingRepository(tx).Document(ctx)
		return readErr
	}, l.txOptions())
	if err != nil {
		return nil, fmt.Errorf("read pricing tables: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("hash pricing tables: %w", err)
	}
	snap, err := snapshot.Build(doc, snapshot.ContentVersion(raw))
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// txOptions asks PostgreSQL for a read-only repeatable-read transaction.
// Other dialects get their default transaction.
func (l *SnapshotLoader) txOptions() *sql.TxOptions {
	if l.db.Dialector.Name() != "postgres" {
		return nil
	}
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
}
