package deliveries

import (
	"os"

	"github.com/BearBump/DriverBox/internal/models"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v4"
)

// Store is the read-only, ordered list of deliveries assigned to the driver.
type Store struct {
	items []models.Delivery
	byID  map[string]int
}

func New(items []models.Delivery) (*Store, error) {
	byID := make(map[string]int, len(items))
	for i, d := range items {
		if d.ID == "" {
			return nil, errors.Errorf("delivery #%d: id is required", i)
		}
		if _, ok := byID[d.ID]; ok {
			return nil, errors.Errorf("delivery %s: duplicate id", d.ID)
		}
		if !models.IsDeliveryStatus(d.Status) {
			return nil, errors.Errorf("delivery %s: unknown status %q", d.ID, d.Status)
		}
		if !models.IsPriority(d.Priority) {
			return nil, errors.Errorf("delivery %s: unknown priority %q", d.ID, d.Priority)
		}
		byID[d.ID] = i
	}
	cp := make([]models.Delivery, len(items))
	copy(cp, items)
	return &Store{items: cp, byID: byID}, nil
}

func NewDefault() *Store {
	s, err := New(Seed())
	if err != nil {
		panic(err)
	}
	return s
}

type seedFile struct {
	Deliveries []models.Delivery `yaml:"deliveries"`
}

// LoadFile reads a seed list in YAML (top-level key "deliveries").
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read seed file")
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse seed file")
	}
	return New(f.Deliveries)
}

// List returns a copy, callers may not mutate the store.
func (s *Store) List() []models.Delivery {
	out := make([]models.Delivery, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) ByID(id string) (models.Delivery, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Delivery{}, false
	}
	return s.items[i], true
}

// FirstUndelivered returns the first delivery in list order whose status is not delivered.
func (s *Store) FirstUndelivered() (models.Delivery, bool) {
	return FirstUndelivered(s.items)
}

func FirstUndelivered(list []models.Delivery) (models.Delivery, bool) {
	for _, d := range list {
		if d.Status != models.DeliveryStatusDelivered {
			return d, true
		}
	}
	return models.Delivery{}, false
}
