package repositories

import (
	"errors"
	"fmt"

	"costcompare/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// GetAll retrieves all items ordered by name.
func (r *GORMItemRepository) GetAll() ([]models.Item, error) {
	items := []models.Item{}
	if err := r.db.Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single item by its ID.
func (r *GORMItemRepository) GetByID(id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item with ID %s: %w", id, ErrItemNotFound)
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Create inserts a new item, generating its ID when empty.
func (r *GORMItemRepository) Create(item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update writes the name and price of an existing item.
func (r *GORMItemRepository) Update(item *models.Item) error {
	res := r.db.Model(&models.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{"name": item.Name, "price": item.Price})
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	// Updates with a map never reports ErrRecordNotFound.
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s for update: %w", item.ID, ErrItemNotFound)
	}
	if err := r.db.First(item, "id = ?", item.ID).Error; err != nil {
		return fmt.Errorf("failed to reload item %s: %w", item.ID, err)
	}
	return nil
}

// Delete removes an item by its ID.
func (r *GORMItemRepository) Delete(id string) error {
	res := r.db.Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s for deletion: %w", id, ErrItemNotFound)
	}
	return nil
}

// FirstOrCreateByName loads the item stored under item.Name into item, or
// inserts item when there is none.
func (r *GORMItemRepository) FirstOrCreateByName(item *models.Item) error {
	id := item.ID
	if id == "" {
		id = uuid.New().String()
	}
	// The destination must not carry a primary key, or First would filter on it.
	var stored models.Item
	err := r.db.
		Where(models.Item{Name: item.Name}).
		Attrs(models.Item{ID: id, Price: item.Price}).
		FirstOrCreate(&stored).Error
	if err != nil {
		return fmt.Errorf("failed to seed item %s: %w", item.Name, err)
	}
	*item = stored
	return nil
}
