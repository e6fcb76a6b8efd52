package Controllers

import (
	"strconv"
	"time"

	"PAM/Models"
	"PAM/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates an admin by mobile number and password and returns a
// signed JWT. The token carries the admin ID as issuer, which Verify uses to
// load the admin on every request.
func Login(ctx *fiber.Ctx) error {
	var req LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondError(ctx, validationError(err.Error()))
	}
	if apiErr := validateStruct(&req); apiErr != nil {
		return respondError(ctx, apiErr)
	}

	var admin Models.Admin
	if err := Models.DB.Where("mobile = ?", req.Mobile).First(&admin).Error; err != nil {
		return respondError(ctx, notFoundError("Admin not found"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   KindAuth,
			"message": "Invalid credentials",
		})
	}

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(admin.ID)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.SecretKey())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "server_error",
			"message": "Could not sign token",
		})
	}

	return ctx.JSON(fiber.Map{"token": token})
}

// ValidateToken runs behind the auth middleware, so reaching it means the
// token checked out.
func ValidateToken(ctx *fiber.Ctx) error {
	admin, ok := ctx.Locals("admin").(Models.Admin)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   KindAuth,
			"message": "Not logged in",
		})
	}
	return ctx.JSON(fiber.Map{
		"valid": true,
		"admin": fiber.Map{"id": admin.ID, "mobile": admin.Mobile},
	})
}
