package middleware

import (
	"PAM/Models"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SecretKey returns the JWT signing key. Falls back to a development default
// when JWT_SECRET is not set.
func SecretKey() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("secret")
}

// Verify guards admin endpoints. The token is read from the Authorization
// header (with or without the Bearer prefix); anything missing or invalid is
// a 403, distinct from business errors.
func Verify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Get("Authorization")
		tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")
		if tokenStr == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "auth_error",
				"message": "Token missing",
			})
		}

		token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			return SecretKey(), nil
		})
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "auth_error",
				"message": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "auth_error",
				"message": "Invalid token claims",
			})
		}

		var admin Models.Admin
		if result := Models.DB.Where("id = ?", claims.Issuer).First(&admin); result.Error != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "auth_error",
				"message": "Admin not found",
			})
		}

		c.Locals("admin", admin)
		return c.Next()
	}
}
