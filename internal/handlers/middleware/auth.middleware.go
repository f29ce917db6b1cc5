package middleware

import (
	"fmt"
	"strings"

	"kintai/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserKeyFiber = "User" // Fiber locals key
)

// RequireAuth validates a platform-issued bearer token and resolves the
// local user shadow row, creating it from the verified claims on first sight.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.Function("RequireAuth")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
				"code":  "UNAUTHORIZED",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
				"code":  "UNAUTHORIZED",
			})
		}

		claims, err := m.verifyToken(tokenParts[1])
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
				"code":  "UNAUTHORIZED",
			})
		}

		subject, err := claims.GetSubject()
		if err != nil || subject == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token missing subject",
				"code":  "UNAUTHORIZED",
			})
		}

		user, err := m.resolveUser(c, subject, claims)
		if err != nil {
			log.Info("failed to resolve user", "subject", subject, "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
				"code":  "UNAUTHORIZED",
			})
		}

		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is inactive",
				"code":  "FORBIDDEN",
			})
		}

		c.Locals(UserKeyFiber, user)
		return c.Next()
	}
}

// RequireManager gates manager-only routes. Must run after RequireAuth.
func (m *Middleware) RequireManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
				"code":  "UNAUTHORIZED",
			})
		}

		if !user.IsManager() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Manager role required",
				"code":  "FORBIDDEN",
			})
		}

		return c.Next()
	}
}

func (m *Middleware) verifyToken(tokenString string) (jwt.MapClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if m.Config.AuthIssuer != "" {
		options = append(options, jwt.WithIssuer(m.Config.AuthIssuer))
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(m.Config.AuthJWTSecret), nil
	}, options...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	return claims, nil
}

func (m *Middleware) resolveUser(
	c *fiber.Ctx,
	subject string,
	claims jwt.MapClaims,
) (*models.User, error) {
	log := m.log.Function("resolveUser")

	displayName, _ := claims["name"].(string)
	role := models.RoleStaff
	if claimedRole, _ := claims["role"].(string); claimedRole == string(models.RoleManager) {
		role = models.RoleManager
	}

	var email *string
	if claimedEmail, _ := claims["email"].(string); claimedEmail != "" {
		email = &claimedEmail
	}

	user, err := m.userRepo.FindOrCreateByAuthUserID(c.Context(), &models.User{
		AuthUserID:  subject,
		DisplayName: displayName,
		Email:       email,
		Role:        role,
		IsActive:    true,
	})
	if err != nil {
		return nil, err
	}

	// Refresh the shadow row from claims; an update failure only leaves it stale.
	user.UpdateFromClaims(displayName, email)
	if err := m.userRepo.Update(c.Context(), user); err != nil {
		log.Warn("failed to refresh user from claims", "userID", user.ID, "error", err)
	}

	return user, nil
}

// GetUser extracts the authenticated user from Fiber context.
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}
