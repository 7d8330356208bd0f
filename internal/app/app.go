package app

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"costcompare/internal/config"
	"costcompare/internal/database"
	"costcompare/internal/handlers"
	"costcompare/internal/middleware"
	"costcompare/internal/repositories"
	"costcompare/internal/services"
	"costcompare/pkg/money"
	"costcompare/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"
)

//go:embed views/*.html
var viewsFS embed.FS

// App bundles the Fiber application with the resources it owns.
type App struct {
	Fiber  *fiber.App
	DB     *gorm.DB // nil with the memory driver
	Events *rabbitmq.Client
	Items  *services.ItemService
}

// New wires repositories, services and handlers according to cfg.
func New(cfg config.Config) (*App, error) {
	a := &App{}

	// --- Repositories ---
	var itemRepo repositories.ItemRepository
	var dbCheck handlers.CheckFunc
	if cfg.DatabaseDriver == config.DriverMemory {
		itemRepo = repositories.NewMockItemRepository()
	} else {
		db, err := database.Open(cfg)
		if err != nil {
			return nil, err
		}
		a.DB = db
		itemRepo = repositories.NewGORMItemRepository(db)
		dbCheck = func() error { return database.Ping(db) }
	}

	if cfg.SeedCatalog {
		if err := services.SeedCatalog(itemRepo); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	// --- Catalog events ---
	var publisher services.EventPublisher
	var eventsCheck handlers.CheckFunc
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Events = mqClient
		publisher = mqClient
		eventsCheck = mqClient.Ping
	}

	// --- Services ---
	a.Items = services.NewItemService(itemRepo, publisher)
	comparisonService := services.NewComparisonService(itemRepo)

	// --- Handlers ---
	itemHandler := handlers.NewItemHandler(a.Items)
	comparisonHandler := handlers.NewComparisonHandler(comparisonService)
	healthHandler := handlers.NewHealthHandler(dbCheck, eventsCheck)

	engine, err := newViewEngine()
	if err != nil {
		a.Close()
		return nil, err
	}

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: middleware.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	app.Get("/", comparisonHandler.HandleIndex)
	app.Get("/health", healthHandler.HandleHealth)

	apiV1 := app.Group("/api/v1")
	itemHandler.RegisterRoutes(apiV1)
	comparisonHandler.RegisterRoutes(apiV1)

	a.Fiber = app
	return a, nil
}

func newViewEngine() (*html.Engine, error) {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, fmt.Errorf("failed to open views: %w", err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")
	engine.AddFunc("currency", money.FormatUSD)
	return engine, nil
}

// Close releases the database and the RabbitMQ connection.
func (a *App) Close() error {
	var errs []error
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		log.Printf("Errors while closing app: %v", errs)
		return fmt.Errorf("failed to close app: %v", errs)
	}
	return nil
}
