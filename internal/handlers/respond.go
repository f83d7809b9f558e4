package handlers

import (
	"log"

	"moviedb/internal/models"
	"moviedb/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a service failure kind onto an HTTP status.
func statusFor(err error) int {
	switch services.KindOf(err) {
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindDuplicateKey, services.KindAlreadyRated:
		return fiber.StatusConflict
	case services.KindForbidden:
		return fiber.StatusForbidden
	case services.KindInvalidInput:
		return fiber.StatusBadRequest
	case services.KindInvalidCredentials:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError logs the full error and sends only its user-facing message.
func respondError(c *fiber.Ctx, err error) error {
	log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(statusFor(err)).JSON(services.ResultOf[any](nil, err))
}

// respondMessage sends a failed result with a fixed message.
func respondMessage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(models.Fail[any](msg))
}

// respond sends a successful result.
func respond[T any](c *fiber.Ctx, status int, data T) error {
	return c.Status(status).JSON(models.OK(data))
}
