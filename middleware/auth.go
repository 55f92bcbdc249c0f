// middleware/auth.go
package middleware

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminSessionTTL bounds how long an issued admin token stays valid.
const AdminSessionTTL = 24 * time.Hour

// IssueAdminToken signs a session token for a logged-in admin. Tokens are
// server-issued and validated on every request; nothing is trusted from
// client storage.
func IssueAdminToken(userID string) (string, error) {
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("ADMIN_JWT_SECRET environment variable not set")
	}

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(AdminSessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// AdminAuthMiddleware validates the Bearer session token on /api/admin
// routes.
func AdminAuthMiddleware() fiber.Handler {
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		log.Fatal("❌ ADMIN_JWT_SECRET is not set — admin routes cannot be protected")
	}

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Printf("🚫 [ADMIN_AUTH] Missing Authorization header for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "admin session token missing",
			})
		}

		// Parse "Bearer <token>"
		raw := strings.TrimPrefix(authHeader, "Bearer ")
		if raw == authHeader {
			raw = authHeader
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Printf("❌ [ADMIN_AUTH] Invalid session token for %s: %v", c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "invalid or expired admin session token",
			})
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, _ := claims["sub"].(string); sub != "" {
				c.Locals("admin_user", sub)
			}
		}

		return c.Next()
	}
}
