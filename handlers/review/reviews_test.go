package review

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/hackagra/mindverse-api/services"
)

// Validation failures surface before any database access, so the rejection
// paths are testable against a nil DB.
func testApp(userID uint) *fiber.App {
	handler := NewReviewHandler(nil, services.NewReviewService(nil), nil)

	app := fiber.New()
	app.Post("/reviews", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}, handler.Submit)
	return app
}

func submit(t *testing.T, app *fiber.App, body string) int {
	t.Helper()

	req := httptest.NewRequest("POST", "/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	return resp.StatusCode
}

// Reviewing your own profile is a validation failure, not a permission one
func TestSubmitSelfReviewIsBadRequest(t *testing.T) {
	app := testApp(7)

	status := submit(t, app, `{"senior_id": 7, "rating": 4, "comment": "reviewing myself"}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400 for self-review, got %d", status)
	}
}

func TestSubmitInvalidPayloads(t *testing.T) {
	app := testApp(3)

	cases := []struct {
		name string
		body string
	}{
		{"missing senior", `{"rating": 4, "comment": "ok"}`},
		{"rating too low", `{"senior_id": 7, "rating": 0, "comment": "ok"}`},
		{"rating too high", `{"senior_id": 7, "rating": 6, "comment": "ok"}`},
		{"missing comment", `{"senior_id": 7, "rating": 4}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if status := submit(t, app, tc.body); status != fiber.StatusBadRequest {
				t.Errorf("expected 400, got %d", status)
			}
		})
	}
}

func TestSubmitCommentTooLongIsBadRequest(t *testing.T) {
	app := testApp(3)

	payload, _ := json.Marshal(map[string]interface{}{
		"senior_id": 7,
		"rating":    4,
		"comment":   strings.Repeat("x", services.MaxCommentLength+1),
	})

	if status := submit(t, app, string(payload)); status != fiber.StatusBadRequest {
		t.Errorf("expected 400 for oversized comment, got %d", status)
	}
}
