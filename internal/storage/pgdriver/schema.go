package pgdriver

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS receipts (
  id TEXT PRIMARY KEY,
  delivery_id TEXT NOT NULL,
  driver_id TEXT NOT NULL,
  receiver_name TEXT NOT NULL,
  receiver_doc TEXT NULL,
  signature TEXT NULL,
  notes TEXT NULL,
  photo TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  stored_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_delivery_id ON receipts(delivery_id, created_at DESC)`,
		`
CREATE TABLE IF NOT EXISTS occurrences (
  id TEXT PRIMARY KEY,
  delivery_id TEXT NOT NULL,
  driver_id TEXT NOT NULL,
  type TEXT NOT NULL,
  description TEXT NOT NULL,
  photos JSONB NOT NULL DEFAULT '[]'::jsonb,
  created_at TIMESTAMPTZ NOT NULL,
  stored_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_occurrences_delivery_id ON occurrences(delivery_id, created_at DESC)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
