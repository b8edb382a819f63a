package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/model"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/service"
)

// downloadURLExpiry bounds how long a presigned document link stays valid.
const downloadURLExpiry = 15 * time.Minute

// UploadDocument handles POST /stores/:id/documents
// (multipart/form-data, fields: file, kind, actor).
func UploadDocument(verif service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("id")
		if _, err := uuid.Parse(storeID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		kind, err := model.ParseDocumentKind(c.FormValue("kind"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
		}

		actor := c.FormValue("actor")
		if actor == "" {
			actor = c.Get("X-Actor")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := verif.UploadDocument(c.UserContext(), storeID, kind, f, fh.Filename, ct, fh.Size, actor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ApproveDocument handles POST /documents/:id/approve.
func ApproveDocument(verif service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req reviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := verif.ApproveDocument(c.UserContext(), id, req.Actor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// RejectDocument handles POST /documents/:id/reject. The reason is optional
// free text stored on the record and in the audit trail.
func RejectDocument(verif service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req reviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := verif.RejectDocument(c.UserContext(), id, req.Actor, req.Reason)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// RemoveDocument handles DELETE /documents/:id. The actor comes from the
// X-Actor header or the actor query parameter.
func RemoveDocument(verif service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		actor := c.Get("X-Actor")
		if actor == "" {
			actor = c.Query("actor")
		}

		if err := verif.RemoveDocument(c.UserContext(), id, actor); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DownloadDocument handles GET /documents/:id/download by redirecting to a
// presigned URL.
func DownloadDocument(verif service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		u, err := verif.DocumentDownloadURL(c.UserContext(), id, downloadURLExpiry)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}
