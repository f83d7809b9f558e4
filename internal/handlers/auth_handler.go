package handlers

import (
	"log"
	"time"

	"moviedb/internal/middleware"
	"moviedb/internal/models"
	"moviedb/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and sessions.
type AuthHandler struct {
	authService *services.AuthService
	sessionTTL  time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionTTL:  sessionTTL,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)

	router.Get("/profile", middleware.AuthRequired(), h.HandleProfile)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req services.CredentialsInput
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return respondMessage(c, fiber.StatusBadRequest, "Username and password are required.")
	}
	if err := services.ValidateRegistration(req); err != nil {
		return respondError(c, err)
	}

	user, err := h.authService.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, user)
}

// loginResponse is returned on a successful login. Browser clients use
// the cookie; API clients send Token as a bearer token.
type loginResponse struct {
	User      *models.User `json:"user"`
	CSRFToken string       `json:"csrf_token"`
	Token     string       `json:"token"`
}

// HandleLogin verifies credentials and starts a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req services.CredentialsInput
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return respondMessage(c, fiber.StatusBadRequest, "Username and password are required.")
	}
	if err := services.ValidateLogin(req); err != nil {
		return respondError(c, err)
	}

	user, session, err := h.authService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.IssueToken(session)
	if err != nil {
		return respondError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return respond(c, fiber.StatusOK, loginResponse{User: user, CSRFToken: session.CSRFToken, Token: token})
}

// HandleLogout ends the session. Logging out without a session succeeds.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.authService.ClearSession(middleware.SessionFrom(c))
	c.ClearCookie(middleware.SessionCookie)
	return respond[any](c, fiber.StatusOK, nil)
}

// HandleProfile returns the logged-in user.
func (h *AuthHandler) HandleProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(c.UserContext(), middleware.SessionFrom(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, user)
}
