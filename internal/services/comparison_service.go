package services

import (
	"fmt"

	"costcompare/internal/models"
	"costcompare/internal/repositories"
	"costcompare/pkg/money"

	"github.com/shopspring/decimal"
)

// MaxComparePrice is the largest target ParseComparePrice accepts.
var MaxComparePrice = decimal.RequireFromString("999999999.99")

// Compare reports, for each item in order, how many units targetPrice buys
// and what is left over. A non-positive targetPrice yields no comparisons.
// Items with a non-positive price, or whose quantity would not fit in an
// int64, are skipped.
func Compare(targetPrice decimal.Decimal, items []models.Item) []models.Comparison {
	comparisons := []models.Comparison{}
	if !targetPrice.IsPositive() {
		return comparisons
	}

	for _, item := range items {
		if !item.Price.IsPositive() {
			continue
		}
		// QuoRem at precision 0 keeps targetPrice == quantity*price + remaining exactly.
		quantity, remaining := targetPrice.QuoRem(item.Price, 0)
		if !quantity.BigInt().IsInt64() {
			continue
		}
		comparisons = append(comparisons, models.Comparison{
			ID:        item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  quantity.IntPart(),
			TotalCost: quantity.Mul(item.Price),
			Remaining: remaining,
		})
	}
	return comparisons
}

// ParseComparePrice maps the compare_price query value to a decimal.
// Missing, non-numeric or out of range input counts as zero.
func ParseComparePrice(raw string) decimal.Decimal {
	price, err := money.Parse(raw)
	if err != nil || price.GreaterThan(MaxComparePrice) {
		return decimal.Zero
	}
	return price
}

// ComparisonService computes comparisons against the stored catalog.
type ComparisonService struct {
	repo repositories.ItemRepository
}

// NewComparisonService creates a new ComparisonService.
func NewComparisonService(repo repositories.ItemRepository) *ComparisonService {
	return &ComparisonService{
		repo: repo,
	}
}

// CompareCatalog loads the catalog and compares every item against targetPrice.
func (s *ComparisonService) CompareCatalog(targetPrice decimal.Decimal) (*models.ComparisonPage, error) {
	items, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return &models.ComparisonPage{
		ComparePrice: targetPrice,
		Items:        items,
		Comparisons:  Compare(targetPrice, items),
	}, nil
}
