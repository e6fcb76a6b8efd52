package Controllers

import (
	"github.com/gofiber/fiber/v2"
)

// Machine-readable error kinds returned to the client alongside the
// human-readable message.
const (
	KindValidation  = "validation_error"
	KindNotFound    = "not_found"
	KindAuth        = "auth_error"
	KindPersistence = "persistence_failure"
)

type apiError struct {
	Kind    string
	Message string
	// Committed reports whether the sale write reached storage before the
	// failure. Only meaningful for persistence failures, where the caller
	// needs it to decide whether a retry would double-count.
	Committed bool
}

func (e *apiError) Error() string {
	return e.Message
}

func validationError(message string) *apiError {
	return &apiError{Kind: KindValidation, Message: message}
}

func notFoundError(message string) *apiError {
	return &apiError{Kind: KindNotFound, Message: message}
}

func persistenceError(message string, committed bool) *apiError {
	return &apiError{Kind: KindPersistence, Message: message, Committed: committed}
}

func statusForKind(kind string) int {
	switch kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindAuth:
		return fiber.StatusForbidden
	case KindPersistence:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func respondError(ctx *fiber.Ctx, err *apiError) error {
	body := fiber.Map{
		"error":   err.Kind,
		"message": err.Message,
	}
	if err.Kind == KindPersistence {
		body["committed"] = err.Committed
	}
	return ctx.Status(statusForKind(err.Kind)).JSON(body)
}
