package market

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/khushi-labs/marketwallet/internal/storage"
	"github.com/khushi-labs/marketwallet/pkg/models"
)

// itemsKey is the single durable-KV key holding the serialized collection.
const itemsKey = "listedItems"

// Store is the CRUD layer over the persisted listed-items collection.
// All operations are synchronous read-modify-write over the full collection;
// the persisted value is the single source of truth, with no cache in front.
// The mutex serializes in-process writers; concurrent processes are
// last-writer-wins, which the storage substrate accepts.
type Store struct {
	kv     storage.KV
	mu     sync.Mutex
	logger *slog.Logger
}

func NewStore(kv storage.KV) *Store {
	return &Store{
		kv:     kv,
		logger: slog.Default().With("component", "item_store"),
	}
}

// List returns the full ordered collection. A missing or unreadable stored
// value reads as the empty collection, never an error.
func (s *Store) List() []models.Item {
	raw, ok := s.kv.Get(itemsKey)
	if !ok {
		return []models.Item{}
	}
	var items []models.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn("stored items unreadable, treating as empty", "error", err)
		return []models.Item{}
	}
	if items == nil {
		items = []models.Item{}
	}
	return items
}

// Add appends item to the collection and persists it. Items arriving without
// an id are assigned one. The stored item is returned.
func (s *Store) Add(item models.Item) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID() == "" {
		item = item.Merge(map[string]any{models.ItemIDField: uuid.NewString()})
	}
	items := append(s.List(), item)
	if err := s.save(items); err != nil {
		return nil, err
	}
	s.logger.Info("item added", "id", item.ID())
	return item, nil
}

// UpdateByID merges fields over the item with the matching id, leaving every
// other item untouched and order unchanged. An unknown id is a no-op, though
// the collection is still rewritten.
func (s *Store) UpdateByID(id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.List()
	for i, it := range items {
		if it.ID() == id {
			items[i] = it.Merge(fields)
		}
	}
	return s.save(items)
}

// DeleteByID removes the item with the matching id, preserving the order of
// the rest. An unknown id is a no-op.
func (s *Store) DeleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.List()
	kept := make([]models.Item, 0, len(items))
	for _, it := range items {
		if it.ID() != id {
			kept = append(kept, it)
		}
	}
	return s.save(kept)
}

func (s *Store) save(items []models.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	if err := s.kv.Set(itemsKey, string(data)); err != nil {
		return fmt.Errorf("persist items: %w", err)
	}
	return nil
}
