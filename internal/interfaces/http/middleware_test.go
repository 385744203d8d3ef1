package http_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/inventario-movimientos/internal/interfaces/http"
)

type observed struct {
	method, route string
	status        int
}

type fakeObserver struct {
	mu   sync.Mutex
	seen []observed
}

func (o *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, observed{method, route, status})
}

func TestRequestLogger_ReportaPatronDeRuta(t *testing.T) {
	obs := &fakeObserver{}
	app := fiber.New()
	app.Use(apphttp.RequestLogger(obs))
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "tetera")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/42", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	require.Len(t, obs.seen, 2)
	assert.Equal(t, observed{"GET", "/items/:id", http.StatusNoContent}, obs.seen[0])
	assert.Equal(t, observed{"GET", "/boom", http.StatusTeapot}, obs.seen[1])
}

func TestIdempotency_SinStorePasaDirecto(t *testing.T) {
	calls := 0
	app := fiber.New()
	app.Post("/x", apphttp.Idempotency(nil), func(c *fiber.Ctx) error {
		calls++
		return c.SendString("ok")
	})
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(apphttp.HeaderIdempotencyKey, "k")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 2, calls)
}
