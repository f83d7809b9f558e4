package handlers

import (
	"log"
	"time"

	"moviedb/internal/middleware"
	"moviedb/internal/models"
	"moviedb/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MovieHandler handles HTTP requests for movies and their ratings.
type MovieHandler struct {
	movies  *services.MovieService
	reviews *services.ReviewService
	genres  *services.GenreService
	auth    *services.AuthService
	now     func() time.Time
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(movies *services.MovieService, reviews *services.ReviewService, genres *services.GenreService, auth *services.AuthService) *MovieHandler {
	return &MovieHandler{
		movies:  movies,
		reviews: reviews,
		genres:  genres,
		auth:    auth,
		now:     time.Now,
	}
}

// RegisterRoutes registers the movie and rating routes with the Fiber app.
func (h *MovieHandler) RegisterRoutes(router fiber.Router) {
	movieRoutes := router.Group("/movies")
	movieRoutes.Get("/", h.HandleGetMovies)
	movieRoutes.Get("/search", h.HandleSearchMovies)
	movieRoutes.Get("/:id", h.HandleGetMovie)
	movieRoutes.Post("/", middleware.AuthRequired(), middleware.CSRFRequired(), h.HandleCreateMovie)
	movieRoutes.Put("/:id", middleware.AuthRequired(), middleware.CSRFRequired(), h.HandleUpdateMovie)
	movieRoutes.Delete("/:id", middleware.AuthRequired(), middleware.CSRFRequired(), h.HandleDeleteMovie)
	movieRoutes.Post("/:id/ratings", middleware.AuthRequired(), middleware.CSRFRequired(), h.HandleRateMovie)

	router.Delete("/ratings/:id", middleware.AuthRequired(), middleware.CSRFRequired(), h.HandleDeleteRating)
}

// movieView is a movie as shown to a particular visitor.
type movieView struct {
	models.MovieDetails
	Rated         bool   `json:"rated"`
	CreatedByUser string `json:"created_by_user,omitempty"`
}

func viewerID(c *fiber.Ctx) string {
	if session := middleware.SessionFrom(c); session != nil {
		return session.UserID
	}
	return ""
}

// currentActor re-reads the logged-in user so that authorization uses the
// stored admin flag rather than the one frozen into the session token.
func (h *MovieHandler) currentActor(c *fiber.Ctx) (models.Actor, error) {
	user, err := h.auth.GetUser(c.UserContext(), middleware.SessionFrom(c).UserID)
	if err != nil {
		return models.Actor{}, err
	}
	return models.Actor{UserID: user.ID, IsAdmin: user.IsAdmin}, nil
}

// HandleGetMovies lists all movies, flagging the ones the visitor rated.
func (h *MovieHandler) HandleGetMovies(c *fiber.Ctx) error {
	movies, err := h.movies.ListMovies(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, h.views(c, movies))
}

func (h *MovieHandler) views(c *fiber.Ctx, movies []models.MovieDetails) []movieView {
	viewer := viewerID(c)
	views := make([]movieView, 0, len(movies))
	for _, m := range movies {
		views = append(views, movieView{MovieDetails: m, Rated: m.RatedBy(viewer)})
	}
	return views
}

// HandleSearchMovies filters movies by ?title= and/or ?genre=.
func (h *MovieHandler) HandleSearchMovies(c *fiber.Ctx) error {
	movies, err := h.movies.SearchMovies(c.UserContext(), c.Query("title"), c.Query("genre"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, h.views(c, movies))
}

// HandleGetMovie returns one movie with its reviews and creator.
func (h *MovieHandler) HandleGetMovie(c *fiber.Ctx) error {
	movie, err := h.movies.GetMovie(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	view := movieView{MovieDetails: *movie, Rated: movie.RatedBy(viewerID(c)), CreatedByUser: "N/A"}
	if creator, err := h.auth.GetUser(c.UserContext(), movie.CreatedBy); err == nil {
		view.CreatedByUser = creator.Username
	}
	return respond(c, fiber.StatusOK, view)
}

// validMovie parses and validates a movie body against the known genres.
func (h *MovieHandler) validMovie(c *fiber.Ctx) (services.MovieInput, int, error) {
	var in services.MovieInput
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing movie request body: %v", err)
		return in, 0, services.ErrInvalidInput
	}
	genreIDs, err := h.genres.GenreIDs(c.UserContext())
	if err != nil {
		return in, 0, err
	}
	year, err := services.ValidateMovieFields(in, genreIDs, h.now())
	return in, year, err
}

// HandleCreateMovie adds a movie owned by the logged-in user.
func (h *MovieHandler) HandleCreateMovie(c *fiber.Ctx) error {
	in, year, err := h.validMovie(c)
	if err != nil {
		return respondError(c, err)
	}

	movie, err := h.movies.AddMovie(c.UserContext(), in.Title, in.GenreID, in.Description, year, middleware.SessionFrom(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, movie)
}

// HandleUpdateMovie edits a movie. Admins only.
func (h *MovieHandler) HandleUpdateMovie(c *fiber.Ctx) error {
	actor, err := h.currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	if !actor.IsAdmin {
		return respondMessage(c, fiber.StatusForbidden, "You are not allowed to edit movie details.")
	}

	in, year, err := h.validMovie(c)
	if err != nil {
		return respondError(c, err)
	}

	movie, err := h.movies.EditMovie(c.UserContext(), c.Params("id"), in.Title, in.GenreID, in.Description, year)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, movie)
}

// HandleDeleteMovie deletes a movie. Only its creator or an admin may
// ask; the review policy of MovieService.DeleteMovie then applies.
func (h *MovieHandler) HandleDeleteMovie(c *fiber.Ctx) error {
	actor, err := h.currentActor(c)
	if err != nil {
		return respondError(c, err)
	}

	movie, err := h.movies.GetMovie(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !services.CanManage(&movie.Movie, actor) {
		return respondMessage(c, fiber.StatusForbidden, "You are not allowed to delete this movie.")
	}

	if err := h.movies.DeleteMovie(c.UserContext(), movie.ID, actor); err != nil {
		return respondError(c, err)
	}
	return respond[any](c, fiber.StatusOK, nil)
}

// HandleRateMovie adds the logged-in user's rating to a movie.
func (h *MovieHandler) HandleRateMovie(c *fiber.Ctx) error {
	movie, err := h.movies.GetMovie(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var in services.RatingInput
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing rating request body: %v", err)
		return respondMessage(c, fiber.StatusBadRequest, "Rating and comment are required.")
	}
	rating, err := services.ValidateRatingFields(in)
	if err != nil {
		return respondError(c, err)
	}

	review, err := h.reviews.AddRating(c.UserContext(), movie.ID, rating, in.Comment, middleware.SessionFrom(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, review)
}

// HandleDeleteRating deletes a rating. Only its author or an admin may.
func (h *MovieHandler) HandleDeleteRating(c *fiber.Ctx) error {
	actor, err := h.currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.reviews.DeleteRating(c.UserContext(), c.Params("id"), actor); err != nil {
		return respondError(c, err)
	}
	return respond[any](c, fiber.StatusOK, nil)
}
