package handlers

import (
	"log"

	"costcompare/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ComparisonHandler serves the comparison page, as JSON and as HTML.
type ComparisonHandler struct {
	service *services.ComparisonService
}

// NewComparisonHandler creates a new ComparisonHandler.
func NewComparisonHandler(service *services.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{
		service: service,
	}
}

// RegisterRoutes registers the JSON comparison route with the Fiber router.
func (h *ComparisonHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/comparisons", h.HandleGetComparisons)
}

// HandleGetComparisons returns the catalog and its comparisons for ?compare_price=.
func (h *ComparisonHandler) HandleGetComparisons(c *fiber.Ctx) error {
	targetPrice := services.ParseComparePrice(c.Query("compare_price"))
	page, err := h.service.CompareCatalog(targetPrice)
	if err != nil {
		log.Printf("Error comparing catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compare items",
			"error":   err.Error(),
		})
	}
	return c.JSON(page)
}

// HandleIndex renders the cost comparison page.
func (h *ComparisonHandler) HandleIndex(c *fiber.Ctx) error {
	raw := c.Query("compare_price")
	page, err := h.service.CompareCatalog(services.ParseComparePrice(raw))
	if err != nil {
		log.Printf("Error rendering index: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Could not load items")
	}

	input := ""
	if page.ComparePrice.IsPositive() {
		input = page.ComparePrice.String()
	}
	return c.Render("index", fiber.Map{
		"ComparePrice":      page.ComparePrice,
		"ComparePriceInput": input,
		"Items":             page.Items,
		"Comparisons":       page.Comparisons,
	})
}
