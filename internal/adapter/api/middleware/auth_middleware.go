package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"griyapasar/internal/domain/repository"
	"griyapasar/internal/rules"
)

type AuthMiddleware struct {
	authClient *auth.Client
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(authClient *auth.Client, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authClient: authClient,
		userRepo:   userRepo,
	}
}

// Authenticate verifies the bearer token and builds the request session:
// uid and role are resolved once here and reused by every handler below.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		idToken := parts[1]

		token, err := m.authClient.VerifyIDToken(c.Request().Context(), idToken)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", token.UID)

		user, err := m.userRepo.GetByID(c.Request().Context(), token.UID)
		if err == nil {
			c.Set("role", user.Role)
			c.Set("email_verified", user.EmailVerified)
		}

		return next(c)
	}
}

// ActorFrom extracts the session identity set by Authenticate.
func ActorFrom(c echo.Context) rules.Actor {
	actor := rules.Actor{}
	if uid, ok := c.Get("uid").(string); ok {
		actor.UID = uid
	}
	if role, ok := c.Get("role").(string); ok {
		actor.Role = role
	}
	return actor
}
