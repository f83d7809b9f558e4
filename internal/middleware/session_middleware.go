package middleware

import (
	"crypto/subtle"
	"log"
	"strings"

	"moviedb/internal/models"
	"moviedb/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Names under which the session travels.
const (
	SessionCookie = "session"
	CSRFHeader    = "X-CSRF-Token"
	CSRFFormField = "csrf_token"
	sessionLocal  = "session"
)

// TokenValidator turns a session token back into its claims.
type TokenValidator interface {
	ValidateToken(token string) (*models.Session, error)
}

// LoadSession restores the session claims from the session cookie or an
// "Authorization: Bearer <token>" header. Requests without a valid token
// continue anonymously.
func LoadSession(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}
		if token == "" {
			return c.Next()
		}

		session, err := validator.ValidateToken(token)
		if err != nil {
			log.Printf("Session token rejected: %v", err)
			return c.Next()
		}
		c.Locals(sessionLocal, session)
		return c.Next()
	}
}

// SessionFrom returns the session of the request, nil when anonymous.
func SessionFrom(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals(sessionLocal).(*models.Session)
	if !session.Authenticated() {
		return nil
	}
	return session
}

// AuthRequired rejects requests that carry no session.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if SessionFrom(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.Fail[any]("No user logged in."))
		}
		return c.Next()
	}
}

// CSRFRequired rejects state-changing requests whose CSRF token does not
// match the one issued with the session. The token is read from the
// X-CSRF-Token header or the csrf_token form field.
func CSRFRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := SessionFrom(c)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.Fail[any]("Unauthorized. Log in again."))
		}

		token := c.Get(CSRFHeader)
		if token == "" {
			token = c.FormValue(CSRFFormField)
		}
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(session.CSRFToken)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(models.Fail[any]("CSRF token mismatch. You may have to login again."))
		}
		return c.Next()
	}
}

var _ TokenValidator = (*services.AuthService)(nil)
