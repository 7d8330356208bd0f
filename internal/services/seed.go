package services

import (
	"log"

	"costcompare/internal/models"
	"costcompare/internal/repositories"

	"github.com/shopspring/decimal"
)

// DefaultCatalog is the starter set of items loaded by SeedCatalog.
var DefaultCatalog = []models.Item{
	{Name: "🍌 Banana", Price: decimal.RequireFromString("1.50")},
	{Name: "☕ Coffee", Price: decimal.RequireFromString("4.00")},
	{Name: "🎬 Movie Ticket", Price: decimal.RequireFromString("12.00")},
	{Name: "🍕 Pizza Slice", Price: decimal.RequireFromString("3.50")},
	{Name: "🚌 Bus Ride", Price: decimal.RequireFromString("2.25")},
	{Name: "⚡ Energy Drink", Price: decimal.RequireFromString("2.99")},
	{Name: "🍔 Burger", Price: decimal.RequireFromString("8.50")},
	{Name: "🥤 Soda", Price: decimal.RequireFromString("1.99")},
	{Name: "📱 Phone Case", Price: decimal.RequireFromString("15.00")},
	{Name: "☂️ Umbrella", Price: decimal.RequireFromString("12.99")},
}

// SeedCatalog stores DefaultCatalog, leaving items that already exist by name.
// Running it again is a no-op.
func SeedCatalog(repo repositories.ItemRepository) error {
	for _, seed := range DefaultCatalog {
		item := seed
		if err := repo.FirstOrCreateByName(&item); err != nil {
			return err
		}
		log.Printf("Seeded item: %s (ID: %s)", item.Name, item.ID)
	}
	return nil
}
