package middleware

import (
	"net/http"
	"strings"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userContextKey = "current_user"

type AuthMiddleware struct {
	secret []byte
	users  repository.UserRepository
}

func NewAuthMiddleware(secret string, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret), users: users}
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}

		user, err := m.users.FindByID(c.Request().Context(), uint64(sub))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

// CurrentUser returns the authenticated user placed in the context by
// RequireAuth, or nil on unauthenticated routes.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(userContextKey).(*model.User)
	return u
}
