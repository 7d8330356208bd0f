package models

import "github.com/shopspring/decimal"

// Comparison shows how many units of an item a target price buys.
// It is derived on every request and never persisted.
type Comparison struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Remaining decimal.Decimal `json:"remaining"`
}

// ComparisonPage is the full set of props behind the comparison page.
type ComparisonPage struct {
	ComparePrice decimal.Decimal `json:"compare_price"`
	Items        []Item          `json:"items"`
	Comparisons  []Comparison    `json:"comparisons"`
}
