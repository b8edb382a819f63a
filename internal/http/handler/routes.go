package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/service"
)

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, stores service.StoreService, verif service.VerificationService, products service.ProductService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Store roster.
	app.Post("/stores", RegisterStore(stores))
	app.Get("/stores", ListStores(stores))
	app.Get("/stores/:id", GetStore(stores))

	// Verification workflow.
	app.Post("/stores/:id/documents", UploadDocument(verif))
	app.Post("/stores/:id/approve", ApproveStore(verif))
	app.Post("/stores/:id/reject", RejectStore(verif))
	app.Get("/stores/:id/verification", GetVerificationView(verif))
	app.Post("/documents/:id/approve", ApproveDocument(verif))
	app.Post("/documents/:id/reject", RejectDocument(verif))
	app.Delete("/documents/:id", RemoveDocument(verif))
	app.Get("/documents/:id/download", DownloadDocument(verif))

	// Inventory.
	app.Post("/stores/:id/products", CreateProduct(products))
	app.Get("/stores/:id/products", ListProducts(products))
	app.Get("/products/:id", GetProduct(products))
	app.Put("/products/:id", UpdateProduct(products))
	app.Delete("/products/:id", DeleteProduct(products))
}
