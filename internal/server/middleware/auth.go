package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var allPermissions = []string{
	"project.create",
	"project.delete",
	"project.view:all",
	"codex.create",
	"codex.update",
	"codex.delete",
	"relationship.create",
	"relationship.delete",
}

func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c)
		}

		token := strings.Split(authHeader, " ")[1]
		app := c.(*AppContext).App

		// Master API key bypass
		if app.MasterAPIKey != "" && app.MasterUserID != 0 && app.MasterUserRole != "" && token == app.MasterAPIKey {
			c.(*AppContext).User = &AppUser{
				UserID:      app.MasterUserID,
				Role:        app.MasterUserRole,
				Permissions: allPermissions,
			}
			return next(c)
		}

		k := *app.Key
		parsed, err := jwt.Parse(token, k.Keyfunc)
		if err != nil || !parsed.Valid {
			return unauthorized(c)
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c)
		}

		var userID int64
		switch idClaim := claims["id"].(type) {
		case string:
			userID, err = strconv.ParseInt(idClaim, 10, 64)
			if err != nil {
				return unauthorized(c)
			}
		case float64:
			userID = int64(idClaim)
		default:
			return unauthorized(c)
		}

		role := "user"
		if roleClaim, ok := claims["role"].(string); ok {
			role = roleClaim
		}

		var permissions []string
		if permsClaim, ok := claims["permissions"].([]any); ok {
			for _, p := range permsClaim {
				if pStr, ok := p.(string); ok {
					permissions = append(permissions, pStr)
				}
			}
		}

		if role == "admin" && len(permissions) == 0 {
			permissions = allPermissions
		}

		c.(*AppContext).User = &AppUser{
			UserID:      userID,
			Role:        role,
			Permissions: permissions,
		}

		return next(c)
	}
}

func HasPermission(user *AppUser, permission string) bool {
	if user == nil {
		return false
	}
	for _, p := range user.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func IsAdmin(user *AppUser) bool {
	return user != nil && user.Role == "admin"
}

// RequirePermission rejects callers missing the named permission.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := c.(*AppContext).User
			if user == nil {
				return unauthorized(c)
			}
			if !HasPermission(user, permission) {
				return c.JSON(http.StatusForbidden, map[string]any{
					"success": false,
					"message": "Forbidden: missing permission " + permission,
				})
			}
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]any{
		"success": false,
		"message": "Unauthorized",
	})
}
