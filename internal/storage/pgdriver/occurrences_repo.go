package pgdriver

import (
	"context"
	"encoding/json"

	"github.com/BearBump/DriverBox/internal/models"
	"github.com/pkg/errors"
)

func (s *Storage) SaveOccurrence(ctx context.Context, driverID string, o models.Occurrence) (bool, error) {
	photos := o.Photos
	if photos == nil {
		photos = []string{}
	}
	b, err := json.Marshal(photos)
	if err != nil {
		return false, errors.Wrap(err, "marshal photos")
	}

	tag, err := s.db.Exec(ctx, `
INSERT INTO occurrences (id, delivery_id, driver_id, type, description, photos, created_at)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)
ON CONFLICT (id) DO NOTHING
`, o.ID, o.DeliveryID, driverID, o.Type, o.Description, string(b), o.CreatedAt)
	if err != nil {
		return false, errors.Wrap(err, "insert occurrence")
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Storage) ListOccurrencesByDelivery(ctx context.Context, deliveryID string) ([]*models.Occurrence, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, delivery_id, type, description, photos, created_at
FROM occurrences
WHERE delivery_id = $1
ORDER BY created_at DESC
`, deliveryID)
	if err != nil {
		return nil, errors.Wrap(err, "select occurrences")
	}
	defer rows.Close()

	var out []*models.Occurrence
	for rows.Next() {
		var o models.Occurrence
		var photos []byte
		if err := rows.Scan(&o.ID, &o.DeliveryID, &o.Type, &o.Description, &photos, &o.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan occurrence")
		}
		if err := json.Unmarshal(photos, &o.Photos); err != nil {
			return nil, errors.Wrap(err, "decode photos")
		}
		out = append(out, &o)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
