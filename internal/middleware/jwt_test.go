package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sekolah-admin-api/internal/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newProtectedApp(capture *map[string]interface{}) *fiber.App {
	app := fiber.New()
	app.Get("/secure", middleware.JWTProtected(testSecret), func(c *fiber.Ctx) error {
		*capture = map[string]interface{}{
			"user_id":   c.Locals("user_id"),
			"user_role": c.Locals("user_role"),
			"campus_id": c.Locals("campus_id"),
		}
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestJWTProtected_ValidTokenExposesLocals(t *testing.T) {
	var locals map[string]interface{}
	app := newProtectedApp(&locals)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":       float64(42),
		"role":      "Staff",
		"campus_id": float64(3),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, uint(42), locals["user_id"])
	require.Equal(t, "staff", locals["user_role"], "roles normalize to lower case")
	require.Equal(t, uint(3), locals["campus_id"])
}

func TestJWTProtected_NoCampusClaimLeavesLocalUnset(t *testing.T) {
	var locals map[string]interface{}
	app := newProtectedApp(&locals)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(1),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Nil(t, locals["campus_id"])
}

func TestJWTProtected_MissingHeader(t *testing.T) {
	var locals map[string]interface{}
	app := newProtectedApp(&locals)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/secure", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtected_WrongSecret(t *testing.T) {
	var locals map[string]interface{}
	app := newProtectedApp(&locals)

	token := signToken(t, "other-secret", jwt.MapClaims{"sub": float64(1)})
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtected_ExpiredToken(t *testing.T) {
	var locals map[string]interface{}
	app := newProtectedApp(&locals)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
