package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestMetrics_CountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMetrics())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(http.StatusTeapot, "nope") })

	ok := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "200")
	teapot := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/boom", "418")
	okBefore, teapotBefore := testutil.ToFloat64(ok), testutil.ToFloat64(teapot)

	for _, target := range []string{"/items/1", "/items/2", "/boom"} {
		if _, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil)); err != nil {
			t.Fatalf("app.Test error: %v", err)
		}
	}

	if got := testutil.ToFloat64(ok) - okBefore; got != 2 {
		t.Fatalf("expected 2 requests on the parameterized route, got %v", got)
	}
	if got := testutil.ToFloat64(teapot) - teapotBefore; got != 1 {
		t.Fatalf("expected fiber.Error status to be recorded, got %v", got)
	}
}
