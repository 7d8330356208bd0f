package services

import (
	"log"

	"costcompare/internal/models"
	"costcompare/internal/repositories"
)

// EventPublisher delivers catalog change events to subscribers.
type EventPublisher interface {
	PublishItemEvent(event models.ItemEvent) error
}

// ItemService handles business logic related to catalog items.
type ItemService struct {
	repo      repositories.ItemRepository
	publisher EventPublisher
}

// NewItemService creates a new ItemService. publisher may be nil.
func NewItemService(repo repositories.ItemRepository, publisher EventPublisher) *ItemService {
	return &ItemService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllItems retrieves all items ordered by name.
func (s *ItemService) GetAllItems() ([]models.Item, error) {
	return s.repo.GetAll()
}

// GetItemByID retrieves a single item by its ID.
func (s *ItemService) GetItemByID(id string) (*models.Item, error) {
	return s.repo.GetByID(id)
}

// CreateItem creates a new item.
func (s *ItemService) CreateItem(item *models.Item) error {
	if err := s.repo.Create(item); err != nil {
		return err
	}
	s.publish(models.NewItemEvent(models.ItemCreated, *item))
	return nil
}

// UpdateItem updates an existing item.
func (s *ItemService) UpdateItem(item *models.Item) error {
	if err := s.repo.Update(item); err != nil {
		return err
	}
	s.publish(models.NewItemEvent(models.ItemUpdated, *item))
	return nil
}

// DeleteItem deletes an item by its ID.
func (s *ItemService) DeleteItem(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(models.NewItemEvent(models.ItemDeleted, models.Item{ID: id}))
	return nil
}

// publish hands event to the publisher. The mutation has already been
// committed, so a failure is only logged.
func (s *ItemService) publish(event models.ItemEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishItemEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for item %s: %v", event.Type, event.ItemID, err)
	}
}
