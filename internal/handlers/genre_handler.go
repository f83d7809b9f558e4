package handlers

import (
	"moviedb/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GenreHandler serves the genre list.
type GenreHandler struct {
	service *services.GenreService
}

// NewGenreHandler creates a new GenreHandler.
func NewGenreHandler(service *services.GenreService) *GenreHandler {
	return &GenreHandler{service: service}
}

// RegisterRoutes registers the genre routes with the Fiber app.
func (h *GenreHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/genres", h.HandleGetGenres)
}

// HandleGetGenres lists all genres sorted by name.
func (h *GenreHandler) HandleGetGenres(c *fiber.Ctx) error {
	genres, err := h.service.ListGenres(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, genres)
}
