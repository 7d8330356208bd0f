package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"costcompare/internal/handlers"
	"costcompare/internal/middleware"
	"costcompare/internal/models"
	"costcompare/internal/repositories"
	"costcompare/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// itemResponse mirrors the JSON body of a successful item mutation.
type itemResponse struct {
	Message string        `json:"message"`
	Item    models.Item   `json:"item"`
	Items   []models.Item `json:"items"`
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// setupApp sets up a Fiber app for testing with in-memory SQLite and all handlers/services.
func setupApp(t *testing.T) (*fiber.App, repositories.ItemRepository) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to connect to in-memory database")
	require.NoError(t, db.AutoMigrate(&models.Item{}), "failed to auto-migrate database")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	itemRepo := repositories.NewGORMItemRepository(db)

	itemHandler := handlers.NewItemHandler(services.NewItemService(itemRepo, nil))
	comparisonHandler := handlers.NewComparisonHandler(services.NewComparisonService(itemRepo))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	apiV1 := app.Group("/api/v1")
	itemHandler.RegisterRoutes(apiV1)
	comparisonHandler.RegisterRoutes(apiV1)

	return app, itemRepo
}

func seedItemsForTest(t *testing.T, repo repositories.ItemRepository) []models.Item {
	t.Helper()
	items := []models.Item{
		{Name: "🍌 Banana", Price: decimal.RequireFromString("1.50")},
		{Name: "☕ Coffee", Price: decimal.RequireFromString("4.00")},
	}
	for i := range items {
		require.NoError(t, repo.Create(&items[i]))
	}
	return items
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestItemCRUD(t *testing.T) {
	app, repo := setupApp(t)
	seedItemsForTest(t, repo)

	// --- GET /items ---
	resp := doJSON(t, app, http.MethodGet, "/api/v1/items", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var items []models.Item
	decode(t, resp, &items)
	require.Len(t, items, 2)
	assert.Equal(t, "☕ Coffee", items[0].Name, "ordered by name")
	assert.Equal(t, "🍌 Banana", items[1].Name)

	// --- POST /items ---
	resp = doJSON(t, app, http.MethodPost, "/api/v1/items", map[string]any{
		"name":  "🍕 Pizza Slice",
		"price": 3.5,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created itemResponse
	decode(t, resp, &created)
	assert.Equal(t, "Item added successfully!", created.Message)
	assert.NotEmpty(t, created.Item.ID)
	assert.Equal(t, "🍕 Pizza Slice", created.Item.Name)
	assert.True(t, created.Item.Price.Equal(decimal.RequireFromString("3.50")))
	assert.Len(t, created.Items, 3)

	// --- GET /items/:id ---
	resp = doJSON(t, app, http.MethodGet, "/api/v1/items/"+created.Item.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Item
	decode(t, resp, &fetched)
	assert.Equal(t, created.Item.ID, fetched.ID)

	// --- PUT /items/:id ---
	resp = doJSON(t, app, http.MethodPut, "/api/v1/items/"+created.Item.ID, map[string]any{
		"name":  "🍕 Large Pizza",
		"price": "12.00",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated itemResponse
	decode(t, resp, &updated)
	assert.Equal(t, "Item updated successfully!", updated.Message)
	assert.Equal(t, created.Item.ID, updated.Item.ID)
	assert.Equal(t, "🍕 Large Pizza", updated.Item.Name)
	assert.True(t, updated.Item.Price.Equal(decimal.RequireFromString("12")))

	// --- PATCH /items/:id ---
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/items/"+created.Item.ID, map[string]any{
		"name":  "🍕 Pizza",
		"price": 11.25,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &updated)
	assert.Equal(t, "🍕 Pizza", updated.Item.Name)

	// --- DELETE /items/:id ---
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/items/"+created.Item.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted itemResponse
	decode(t, resp, &deleted)
	assert.Equal(t, "Item deleted successfully!", deleted.Message)
	assert.Len(t, deleted.Items, 2)

	// Verify deletion
	resp = doJSON(t, app, http.MethodGet, "/api/v1/items/"+created.Item.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestItemNotFound(t *testing.T) {
	app, _ := setupApp(t)
	id := uuid.NewString()
	valid := map[string]any{"name": "Ghost", "price": 1}

	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPut, valid},
		{http.MethodPatch, valid},
		{http.MethodDelete, nil},
	} {
		resp := doJSON(t, app, tc.method, "/api/v1/items/"+id, tc.body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, tc.method)
		var body errorResponse
		decode(t, resp, &body)
		assert.Equal(t, fmt.Sprintf("Item with ID %s not found", id), body.Message, tc.method)
	}
}

func TestCreateItemValidation(t *testing.T) {
	app, repo := setupApp(t)

	tests := []struct {
		name  string
		body  map[string]any
		field string
		want  string
	}{
		{"missing name", map[string]any{"price": 10}, "name", "Item name is required."},
		{"name too long", map[string]any{"name": strings.Repeat("a", 256), "price": 10}, "name", "Item name cannot exceed 255 characters."},
		{"missing price", map[string]any{"name": "Test Item"}, "price", "Price is required."},
		{"non-numeric price", map[string]any{"name": "Test Item", "price": "not-a-number"}, "price", "Price must be a valid number."},
		{"price below minimum", map[string]any{"name": "Test Item", "price": 0}, "price", "Price must be at least $0.01."},
		{"price above maximum", map[string]any{"name": "Test Item", "price": 1000000}, "price", "Price cannot exceed $999,999.99."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/v1/items", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			var body errorResponse
			decode(t, resp, &body)
			assert.Equal(t, "Validation failed", body.Message)
			assert.Equal(t, tt.want, body.Errors[tt.field])
		})
	}

	items, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, items, "rejected requests must not write")
}

func TestUpdateItemValidationKeepsItem(t *testing.T) {
	app, repo := setupApp(t)
	items := seedItemsForTest(t, repo)

	resp := doJSON(t, app, http.MethodPut, "/api/v1/items/"+items[0].ID, map[string]any{"name": "", "price": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body errorResponse
	decode(t, resp, &body)
	assert.Len(t, body.Errors, 2)

	stored, err := repo.GetByID(items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "🍌 Banana", stored.Name)
}

func TestCreateItemInvalidBody(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorResponse
	decode(t, resp, &body)
	assert.Equal(t, "Invalid request body", body.Message)
}

func TestCreateItemFormEncoded(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader("name=%F0%9F%A5%A4+Soda&price=1.99"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var body itemResponse
	decode(t, resp, &body)
	assert.Equal(t, "🥤 Soda", body.Item.Name)
	assert.True(t, body.Item.Price.Equal(decimal.RequireFromString("1.99")))
}

func TestGetComparisons(t *testing.T) {
	app, repo := setupApp(t)
	seedItemsForTest(t, repo)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/comparisons?compare_price=10", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page models.ComparisonPage
	decode(t, resp, &page)

	assert.True(t, page.ComparePrice.Equal(decimal.NewFromInt(10)))
	assert.Len(t, page.Items, 2)
	require.Len(t, page.Comparisons, 2)

	// Ordered by name: Coffee sorts before Banana by its emoji prefix.
	coffee, banana := page.Comparisons[0], page.Comparisons[1]
	assert.Equal(t, int64(2), coffee.Quantity)
	assert.True(t, coffee.TotalCost.Equal(decimal.RequireFromString("8.00")))
	assert.True(t, coffee.Remaining.Equal(decimal.RequireFromString("2.00")))
	assert.Equal(t, int64(6), banana.Quantity)
	assert.True(t, banana.TotalCost.Equal(decimal.RequireFromString("9.00")))
	assert.True(t, banana.Remaining.Equal(decimal.RequireFromString("1.00")))
}

func TestGetComparisonsWithoutPrice(t *testing.T) {
	app, repo := setupApp(t)
	seedItemsForTest(t, repo)

	for _, query := range []string{"", "?compare_price=", "?compare_price=abc", "?compare_price=-4", "?compare_price=1e20", "?compare_price=1e2000000"} {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/comparisons"+query, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, query)
		var page models.ComparisonPage
		decode(t, resp, &page)
		assert.Len(t, page.Items, 2, query)
		assert.Empty(t, page.Comparisons, query)
	}
}

func TestGetComparisonsAtMaximum(t *testing.T) {
	app, repo := setupApp(t)
	require.NoError(t, repo.Create(&models.Item{Name: "Penny Candy", Price: decimal.RequireFromString("0.01")}))

	resp := doJSON(t, app, http.MethodGet, "/api/v1/comparisons?compare_price=999999999.99", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page models.ComparisonPage
	decode(t, resp, &page)

	require.Len(t, page.Comparisons, 1)
	c := page.Comparisons[0]
	assert.Equal(t, int64(99999999999), c.Quantity)
	assert.True(t, c.TotalCost.Equal(decimal.RequireFromString("999999999.99")))
	assert.True(t, c.Remaining.IsZero())
}

func TestHealth(t *testing.T) {
	ok := func() error { return nil }
	down := func() error { return errors.New("connection refused") }

	tests := []struct {
		name     string
		database handlers.CheckFunc
		events   handlers.CheckFunc
		code     int
		status   string
		eventsIs string
	}{
		{"healthy without broker", ok, nil, http.StatusOK, "healthy", "disabled"},
		{"healthy with broker", ok, ok, http.StatusOK, "healthy", "ok"},
		{"broker down", ok, down, http.StatusServiceUnavailable, "degraded", "unreachable"},
	}

	for _, tt := range tests {
		app := fiber.New()
		app.Get("/health", handlers.NewHealthHandler(tt.database, tt.events).HandleHealth)

		resp := doJSON(t, app, http.MethodGet, "/health", nil)
		assert.Equal(t, tt.code, resp.StatusCode, tt.name)
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, tt.status, body["status"], tt.name)
		assert.Equal(t, tt.eventsIs, body["events"], tt.name)
		assert.Equal(t, "ok", body["database"], tt.name)
		assert.NotEmpty(t, body["time"], tt.name)
	}
}
