package middleware

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func cronTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/internal/sweep", CronAuthorized(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func TestCronAuthorized(t *testing.T) {
	os.Setenv("CRON_SECRET", "sweep-secret")
	app := cronTestApp()

	req := httptest.NewRequest("POST", "/internal/sweep", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("missing header should be 401, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/internal/sweep", nil)
	req.Header.Set("Authorization", "Bearer wrong-secret")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("wrong secret should be 401, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/internal/sweep", nil)
	req.Header.Set("Authorization", "Bearer sweep-secret")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("correct secret should be 200, got %d", resp.StatusCode)
	}
}

func TestCronAuthorized_NoSecretConfigured(t *testing.T) {
	os.Setenv("CRON_SECRET", "")
	app := cronTestApp()

	// An unset secret must not make the endpoint public.
	req := httptest.NewRequest("POST", "/internal/sweep", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("unconfigured secret should reject everything, got %d", resp.StatusCode)
	}
}
