package requestlogger

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/pkg/errorhandler"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(logs *bytes.Buffer, config Config) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		log := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		c.SetUserContext(logger.NewContext(c.UserContext(), log))
		return c.Next()
	})
	app.Use(New(config))
	return app
}

func TestRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	app := newApp(&logs, Config{WithRequestHeader: true, SkipPaths: []string{"/"}})
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/nodes", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(*fiber.Ctx) error { return errors.Wrap(errs.NotFound, "node 9") })

	testCases := []struct {
		path   string
		status int
		level  string
	}{
		{path: "/", status: http.StatusOK},
		{path: "/nodes", status: http.StatusOK, level: "INFO"},
		{path: "/missing", status: http.StatusNotFound, level: "WARN"},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			logs.Reset()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.Header.Set("Authorization", "Bearer secret")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			out := logs.String()
			if tc.level == "" {
				assert.Empty(t, out)
				return
			}
			assert.Contains(t, out, fmt.Sprintf(`"level":%q`, tc.level))
			assert.Contains(t, out, fmt.Sprintf(`"status":%d`, tc.status))
			assert.NotContains(t, out, "secret")
		})
	}
}

func TestRequestLoggerDisable(t *testing.T) {
	var logs bytes.Buffer
	app := newApp(&logs, Config{Disable: true})
	app.Get("/nodes", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(*fiber.Ctx) error { return errors.New("boom") })

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/nodes", nil))
	require.NoError(t, err)
	assert.Empty(t, logs.String())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
}
