package handlers

import (
	"errors"
	"fmt"
	"log"

	"costcompare/internal/models"
	"costcompare/internal/repositories"
	"costcompare/internal/services"
	"costcompare/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles HTTP requests for catalog items.
type ItemHandler struct {
	service *services.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{
		service: service,
	}
}

// RegisterRoutes registers the item routes with the Fiber router.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Get("/:id", h.HandleGetItemByID)
	itemRoutes.Post("/", h.HandleCreateItem)
	itemRoutes.Put("/:id", h.HandleUpdateItem)
	itemRoutes.Patch("/:id", h.HandleUpdateItem)
	itemRoutes.Delete("/:id", h.HandleDeleteItem)
}

// HandleGetItems lists the catalog ordered by name.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems()
	if err != nil {
		log.Printf("Error getting all items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve items",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleGetItemByID retrieves a single item by its ID.
func (h *ItemHandler) HandleGetItemByID(c *fiber.Ctx) error {
	itemID := c.Params("id")
	item, err := h.service.GetItemByID(itemID)
	if err != nil {
		return h.itemError(c, itemID, "Could not retrieve item", err)
	}
	return c.JSON(item)
}

// HandleCreateItem validates the body and adds a new item.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	input, resp := bindItemInput(c)
	if input == nil {
		return resp
	}

	item := input.Item()
	if err := h.service.CreateItem(&item); err != nil {
		log.Printf("Error creating item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create item",
			"error":   err.Error(),
		})
	}

	return h.respondWithCatalog(c, fiber.StatusCreated, "Item added successfully!", &item)
}

// HandleUpdateItem validates the body and replaces the name and price of an item.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	input, resp := bindItemInput(c)
	if input == nil {
		return resp
	}

	item := input.Item()
	item.ID = itemID
	if err := h.service.UpdateItem(&item); err != nil {
		return h.itemError(c, itemID, "Could not update item", err)
	}

	return h.respondWithCatalog(c, fiber.StatusOK, "Item updated successfully!", &item)
}

// HandleDeleteItem removes an item.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if err := h.service.DeleteItem(itemID); err != nil {
		return h.itemError(c, itemID, "Could not delete item", err)
	}
	return h.respondWithCatalog(c, fiber.StatusOK, "Item deleted successfully!", nil)
}

// respondWithCatalog answers a mutation with a message and the refreshed catalog.
func (h *ItemHandler) respondWithCatalog(c *fiber.Ctx, status int, message string, item *models.Item) error {
	items, err := h.service.GetAllItems()
	if err != nil {
		log.Printf("Error reloading items after mutation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve items",
			"error":   err.Error(),
		})
	}
	body := fiber.Map{
		"message": message,
		"items":   items,
	}
	if item != nil {
		body["item"] = item
	}
	return c.Status(status).JSON(body)
}

func (h *ItemHandler) itemError(c *fiber.Ctx, itemID, message string, err error) error {
	if errors.Is(err, repositories.ErrItemNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Item with ID %s not found", itemID),
		})
	}
	log.Printf("%s %s: %v", message, itemID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// bindItemInput parses and validates the request body. On failure it returns
// a nil input and the response already written to c.
func bindItemInput(c *fiber.Ctx) (*validation.ItemInput, error) {
	var input validation.ItemInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing item request body: %v", err)
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if errs := validation.Validate(&input); errs != nil {
		return nil, c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}
	return &input, nil
}
