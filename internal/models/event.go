package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item event types published after a catalog mutation.
const (
	ItemCreated = "item.created"
	ItemUpdated = "item.updated"
	ItemDeleted = "item.deleted"
)

// ItemEvent describes a change to the catalog.
type ItemEvent struct {
	Type       string          `json:"type"`
	ItemID     string          `json:"item_id"`
	Name       string          `json:"name,omitempty"`
	Price      decimal.Decimal `json:"price"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewItemEvent builds an event of the given type for item.
func NewItemEvent(eventType string, item Item) ItemEvent {
	return ItemEvent{
		Type:       eventType,
		ItemID:     item.ID,
		Name:       item.Name,
		Price:      item.Price,
		OccurredAt: time.Now().UTC(),
	}
}
