package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/service"
)

type registerStoreRequest struct {
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	Category string `json:"category"`
}

type reviewRequest struct {
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

// RegisterStore handles POST /stores.
func RegisterStore(stores service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerStoreRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		store, err := stores.Register(c.UserContext(), req.Name, req.Owner, req.Category)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(store)
	}
}

// ListStores handles GET /stores with limit & offset.
func ListStores(stores service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := stores.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetStore handles GET /stores/:id.
func GetStore(stores service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		store, err := stores.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(store)
	}
}

// ApproveStore handles POST /stores/:id/approve. Eligibility is re-checked
// by the service at call time.
func ApproveStore(verif service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req reviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		store, err := verif.ApproveStore(c.UserContext(), id, req.Actor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(store)
	}
}

// RejectStore handles POST /stores/:id/reject.
func RejectStore(verif service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req reviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		store, err := verif.RejectStore(c.UserContext(), id, req.Actor, req.Reason)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(store)
	}
}

// GetVerificationView handles GET /stores/:id/verification.
func GetVerificationView(verif service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		view, err := verif.View(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(view)
	}
}
