// Package middleware holds the HTTP middlewares of the delivery layer.
package middleware

import (
	"net/http"
	"strings"

	"supplylink/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Role claim values issued by the external account service.
const (
	RoleShopkeeper = "shopkeeper"
	RoleDealer     = "dealer"
)

const (
	contextKeySubjectID = "subjectID"
	contextKeyRole      = "role"
)

// AuthMiddleware validates bearer tokens issued by the account service.
// Tokens are only verified here; issuance and refresh live outside this
// service.
type AuthMiddleware struct {
	cfg *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return []byte(m.cfg.SecretKey.Access), nil
		})
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Failed to parse token claims"})
		}

		subjectStr, ok := claims["sub"].(string)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Subject missing from token"})
		}
		subjectID, err := uuid.Parse(subjectStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid subject format in token"})
		}

		role, _ := claims["role"].(string)

		c.Set(contextKeySubjectID, subjectID)
		c.Set(contextKeyRole, role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller's role claim.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := GetRole(c)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: role information missing"})
			}

			if role != requiredRole {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require '" + requiredRole + "' role"})
			}

			return next(c)
		}
	}
}

// GetSubjectID returns the authenticated caller's ID from the context.
func GetSubjectID(c echo.Context) (uuid.UUID, bool) {
	subjectID, ok := c.Get(contextKeySubjectID).(uuid.UUID)

	return subjectID, ok
}

// GetRole returns the authenticated caller's role from the context.
func GetRole(c echo.Context) (string, bool) {
	role, ok := c.Get(contextKeyRole).(string)
	if role == "" {
		return "", false
	}

	return role, ok
}
