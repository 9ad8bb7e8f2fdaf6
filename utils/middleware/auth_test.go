package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hackagra/mindverse-api/utils/auth"
)

// The DB is only consulted after a token passes signature and expiry checks,
// so rejection paths are testable without one.
func testApp() *fiber.App {
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "mindverse-test",
	})
	m := NewAuthMiddleware(jwtManager, nil)

	app := fiber.New()
	app.Get("/protected", m.Required(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequiredMissingHeader(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequiredMalformedHeader(t *testing.T) {
	app := testApp()

	for _, header := range []string{"token-without-scheme", "Basic abc123", "Bearer"} {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, resp.StatusCode)
		}
	}
}

func TestRequiredInvalidToken(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequiredExpiredToken(t *testing.T) {
	expired := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret",
		Expiry: -time.Minute,
		Issuer: "mindverse-test",
	})
	token, err := expired.GenerateToken(1, "a@b.com", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	app := testApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", resp.StatusCode)
	}
}

func TestRequireRole(t *testing.T) {
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "mindverse-test",
	})
	m := NewAuthMiddleware(jwtManager, nil)

	app := fiber.New()
	app.Get("/admin", func(c *fiber.Ctx) error {
		// Simulate an authenticated non-admin
		c.Locals("user_role", "user")
		return c.Next()
	}, m.RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("expected 403 for wrong role, got %d", resp.StatusCode)
	}
}
