package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"moviedb/internal/models"
	"moviedb/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// csrfTokenBytes is the amount of randomness in a CSRF token (128 bits).
const csrfTokenBytes = 16

// AuthService handles business logic for accounts and sessions.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which a session token is valid
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// GetUser returns the user with the given ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(KindNotFound, fmt.Sprintf("No user with id '%s'.", id), err)
	}
	if err != nil {
		log.Printf("Error getting user %s: %v", id, err)
		return nil, newError(KindStore, "Could not load user.", err)
	}
	user.Password = ""
	return user, nil
}

// Register hashes the password and stores a new account.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, newError(KindStore, "Registration failed. Please try again.", fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{Username: username, Password: string(hashedPassword)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, newError(KindDuplicateKey, "Registration failed. Username already exists.", err)
		}
		log.Printf("Error registering user %s: %v", username, err)
		return nil, newError(KindStore, "Registration failed. Please try again.", err)
	}
	user.Password = ""
	return user, nil
}

// Authenticate verifies the credentials and issues the session claims.
// An unknown username and a wrong password fail identically.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, *models.Session, error) {
	invalidCredentials := newError(KindInvalidCredentials, "Username or password incorrect.", nil)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, invalidCredentials
	}
	if err != nil {
		log.Printf("Error looking up user %s: %v", username, err)
		return nil, nil, newError(KindStore, "Login failed. Please try again.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, invalidCredentials
	}

	csrf, err := newCSRFToken()
	if err != nil {
		return nil, nil, newError(KindStore, "Login failed. Please try again.", err)
	}

	user.Password = ""
	session := &models.Session{
		CSRFToken: csrf,
		IsAdmin:   user.IsAdmin,
		UserID:    user.ID,
		Username:  user.Username,
	}
	return user, session, nil
}

// ClearSession removes every claim from session. Clearing an empty or
// nil session is a no-op.
func (s *AuthService) ClearSession(session *models.Session) {
	if session == nil {
		return
	}
	*session = models.Session{}
}

// IssueToken signs the session claims into a token the client presents on later requests.
func (s *AuthService) IssueToken(session *models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"csrf_token": session.CSRFToken,
		"is_admin":   session.IsAdmin,
		"user_id":    session.UserID,
		"username":   session.Username,
		"exp":        time.Now().Add(s.tokenDurat).Unix(),
		"iat":        time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a session token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	session := &models.Session{}
	session.UserID, _ = claims["user_id"].(string)
	session.Username, _ = claims["username"].(string)
	session.CSRFToken, _ = claims["csrf_token"].(string)
	session.IsAdmin, _ = claims["is_admin"].(bool)
	if session.UserID == "" {
		return nil, fmt.Errorf("invalid token: missing user_id")
	}
	return session, nil
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate csrf token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
