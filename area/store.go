package area

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/sectormap/config"
	"github.com/quasilyte/gdata"
)

// ErrNoSnapshot is returned when a snapshot was never saved.
var ErrNoSnapshot = errors.New("no such snapshot")

// ItemStore keeps named blobs. *gdata.Manager implements it.
type ItemStore interface {
	SaveItem(itemKey string, data []byte) error
	LoadItem(itemKey string) ([]byte, error)
}

// Store saves area snapshots, such as editor autosaves, by name.
type Store struct {
	items ItemStore
}

// OpenStore opens the per-user data directory of the configured app.
func OpenStore() (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: config.Store.AppName,
	})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", config.Store.AppName, err)
	}
	return NewStore(m), nil
}

// NewStore wraps any item store.
func NewStore(items ItemStore) *Store {
	return &Store{items: items}
}

func snapshotKey(name string) string {
	return "area_" + name
}

// SaveSnapshot writes the geometry of a under name.
func (s *Store) SaveSnapshot(name string, a *Area) error {
	data, err := a.Marshal()
	if err != nil {
		return err
	}
	if err := s.items.SaveItem(snapshotKey(name), data); err != nil {
		log.Printf("Warning: Could not save snapshot %s: %v", name, err)
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}

// LoadSnapshot reads back the snapshot saved under name.
func (s *Store) LoadSnapshot(name string, opts LoadOptions) (*Area, error) {
	data, err := s.items.LoadItem(snapshotKey(name))
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", name, err)
	}
	if data == nil {
		return nil, fmt.Errorf("load snapshot %s: %w", name, ErrNoSnapshot)
	}
	a, err := Unmarshal(data, opts)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", name, err)
	}
	return a, nil
}
