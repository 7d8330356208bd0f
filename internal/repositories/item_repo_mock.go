package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"costcompare/internal/models"

	"github.com/google/uuid"
)

// MockItemRepository is an in-memory implementation of ItemRepository.
type MockItemRepository struct {
	items map[string]models.Item
	mu    sync.RWMutex
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items: make(map[string]models.Item),
	}
}

// GetAll returns all items ordered by name.
func (r *MockItemRepository) GetAll() ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		itemList = append(itemList, item)
	}
	sort.SliceStable(itemList, func(i, j int) bool {
		if itemList[i].Name == itemList[j].Name {
			return itemList[i].ID < itemList[j].ID
		}
		return itemList[i].Name < itemList[j].Name
	})
	return itemList, nil
}

// GetByID returns an item by its ID.
func (r *MockItemRepository) GetByID(id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item with ID %s: %w", id, ErrItemNotFound)
	}
	return &item, nil
}

// Create adds a new item.
func (r *MockItemRepository) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insert(item)
	return nil
}

// Update modifies an existing item.
func (r *MockItemRepository) Update(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("item with ID %s for update: %w", item.ID, ErrItemNotFound)
	}
	stored.Name = item.Name
	stored.Price = item.Price
	stored.UpdatedAt = time.Now()
	r.items[item.ID] = stored
	*item = stored
	return nil
}

// Delete removes an item by its ID.
func (r *MockItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("item with ID %s for deletion: %w", id, ErrItemNotFound)
	}
	delete(r.items, id)
	return nil
}

// FirstOrCreateByName adds item unless one with the same name exists.
func (r *MockItemRepository) FirstOrCreateByName(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.items {
		if stored.Name == item.Name {
			*item = stored
			return nil
		}
	}
	r.insert(item)
	return nil
}

// insert stores item; callers hold the write lock.
func (r *MockItemRepository) insert(item *models.Item) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = *item
}
