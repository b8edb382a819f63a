package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/NoirPrimordial7/nearnest-sub000/internal/http/middleware"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Details carries structured context for recoverable errors, e.g. the
	// missing document kinds blocking a store approval.
	Details any `json:"details,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking
// internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorDetails(c, status, code, message, nil)
}

func writeErrorDetails(c *fiber.Ctx, status int, code, message string, details any) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates workflow errors into HTTP responses. State
// machine violations surface as conflicts the caller can recover from by
// refreshing; they are never silently absorbed.
func writeServiceError(c *fiber.Ctx, err error) error {
	var notEligible *service.NotEligibleError
	switch {
	case errors.Is(err, service.ErrStoreNotFound):
		return writeError(c, fiber.StatusNotFound, "STORE_NOT_FOUND", "store not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrProductNotFound):
		return writeError(c, fiber.StatusNotFound, "PRODUCT_NOT_FOUND", "product not found")
	case errors.Is(err, service.ErrDocumentLocked):
		return writeError(c, fiber.StatusConflict, "DOCUMENT_LOCKED", "document is under review or already approved")
	case errors.Is(err, service.ErrInvalidTransition):
		return writeError(c, fiber.StatusConflict, "INVALID_TRANSITION", "document or store already decided; refresh and retry")
	case errors.As(err, &notEligible):
		return writeErrorDetails(c, fiber.StatusUnprocessableEntity, "NOT_ELIGIBLE", "store is not eligible for approval", fiber.Map{"missing_kinds": notEligible.Missing})
	case errors.Is(err, service.ErrNotEligible):
		return writeError(c, fiber.StatusUnprocessableEntity, "NOT_ELIGIBLE", "store is not eligible for approval")
	case errors.Is(err, service.ErrIDRequired),
		errors.Is(err, service.ErrActorRequired),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
