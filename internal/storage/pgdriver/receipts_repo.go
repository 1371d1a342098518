package pgdriver

import (
	"context"

	"github.com/BearBump/DriverBox/internal/models"
	"github.com/pkg/errors"
)

// SaveReceipt stores r once. A redelivered message with the same id is a no-op
// and reports false.
func (s *Storage) SaveReceipt(ctx context.Context, driverID string, r models.Receipt) (bool, error) {
	tag, err := s.db.Exec(ctx, `
INSERT INTO receipts (id, delivery_id, driver_id, receiver_name, receiver_doc, signature, notes, photo, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO NOTHING
`, r.ID, r.DeliveryID, driverID, r.ReceiverName, r.ReceiverDoc, r.Signature, r.Notes, r.Photo, r.CreatedAt)
	if err != nil {
		return false, errors.Wrap(err, "insert receipt")
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Storage) ListReceiptsByDelivery(ctx context.Context, deliveryID string) ([]*models.Receipt, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, delivery_id, receiver_name, receiver_doc, signature, notes, photo, created_at
FROM receipts
WHERE delivery_id = $1
ORDER BY created_at DESC
`, deliveryID)
	if err != nil {
		return nil, errors.Wrap(err, "select receipts")
	}
	defer rows.Close()

	var out []*models.Receipt
	for rows.Next() {
		var r models.Receipt
		if err := rows.Scan(
			&r.ID, &r.DeliveryID, &r.ReceiverName, &r.ReceiverDoc,
			&r.Signature, &r.Notes, &r.Photo, &r.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan receipt")
		}
		out = append(out, &r)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
