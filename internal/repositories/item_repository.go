package repositories

import (
	"errors"

	"costcompare/internal/models"
)

// ErrItemNotFound is returned when no item matches the requested ID.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository defines the interface for item data access.
type ItemRepository interface {
	// GetAll returns every item ordered by name.
	GetAll() ([]models.Item, error)
	GetByID(id string) (*models.Item, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
	Delete(id string) error
	// FirstOrCreateByName inserts item unless an item with the same name exists,
	// in which case item is filled with the stored row.
	FirstOrCreateByName(item *models.Item) error
}
