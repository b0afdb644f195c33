package server

import (
	"fmt"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Login handles POST /api/auth/login.
//
// The client never sends the password after account creation: it presents
// digest(stored_hash + timestamp) for a timestamp of its choosing, and the
// server recomputes the digest from the stored hash. The timestamp must fall
// inside the configured freshness window, which bounds replay of a captured
// digest. Unknown name, wrong digest and expired account all produce the same
// rejection.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		EncPassword string `json:"enc_password"`
		Timestamp   int64  `json:"timestamp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Name == "" || req.EncPassword == "" || req.Timestamp == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name, enc_password, and timestamp are required"))
	}

	info := requestInfo(c)

	// Freshness window for the timestamp-bound digest.
	window := time.Duration(s.config.LoginWindowSec) * time.Second
	drift := time.Since(time.Unix(req.Timestamp, 0))
	if drift > window || drift < -window {
		s.eventService.Record(c.Context(), models.EventLoginFailed,
			"stale login timestamp for "+req.Name, nil, info)
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication rejected"))
	}

	user, err := s.userRepo.GetByName(c.Context(), req.Name)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil || !user.CheckPassword(req.EncPassword, req.Timestamp) {
		s.eventService.Record(c.Context(), models.EventLoginFailed,
			"failed login for "+req.Name, nil, info)
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication rejected"))
	}

	user.LastLogin = time.Now().UTC()
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	s.eventService.Record(c.Context(), models.EventLogin, "login", &user.ID, info)

	token, err := s.generateToken(user.ID, user.Name)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.ToDict(true),
	})
}

// Logout handles POST /api/auth/logout. Sessions are stateless tokens, so
// logout only records the audit event; clients discard the token.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.eventService.Record(c.Context(), models.EventLogout, "logout",
		currentUserID(c), requestInfo(c))
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateToken creates a JWT token for the given user ID and name
func (s *Server) generateToken(userID, name string) (string, error) {
	// Validate secret exists
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,                         // Subject (user ID)
		"name": name,                           // Account name (cached in token)
		"iss":  "inkwell-api",                  // Issuer
		"aud":  "inkwell-client",               // Audience
		"exp":  now.Add(time.Hour * 24).Unix(), // Expiration (24 hours)
		"iat":  now.Unix(),                     // Issued at
		"nbf":  now.Unix(),                     // Not before
		"jti":  s.generateJTI(),                // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
