package requestlogger

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/pkg/errorhandler"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/middleware/requestcontext"
	"github.com/gofiber/fiber/v2"
)

// alwaysHiddenHeaders carry admin credentials and are never logged.
var alwaysHiddenHeaders = []string{fiber.HeaderAuthorization, fiber.HeaderCookie}

type Config struct {
	WithRequestHeader    bool     `mapstructure:"request_header"`
	WithRequestQuery     bool     `mapstructure:"request_query"`
	Disable              bool     `mapstructure:"disable"` // Disable logger level `INFO`
	HiddenRequestHeaders []string `mapstructure:"hidden_request_headers"`
	SkipPaths            []string `mapstructure:"skip_paths"` // Paths never logged on success, e.g. health checks
}

// New logs every completed request. Requests failing with a client error are logged
// at WARN, server errors at ERROR.
func New(config Config) fiber.Handler {
	hiddenRequestHeaders := make(map[string]struct{}, len(config.HiddenRequestHeaders)+len(alwaysHiddenHeaders))
	for _, header := range slices.Concat(config.HiddenRequestHeaders, alwaysHiddenHeaders) {
		hiddenRequestHeaders[strings.TrimSpace(strings.ToLower(header))] = struct{}{}
	}
	skipPaths := make(map[string]struct{}, len(config.SkipPaths))
	for _, path := range config.SkipPaths {
		skipPaths[path] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continue stack
		err := c.Next()

		end := time.Now()
		latency := end.Sub(start)
		status := responseStatus(c, err)

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		if level == slog.LevelInfo {
			if _, skip := skipPaths[c.Path()]; skip || config.Disable {
				return errors.WithStack(err)
			}
		}

		baseAttrs := []slog.Attr{
			slog.String("event", "api_request"),
			slog.Int64("latency", latency.Milliseconds()),
			slog.String("latencyHuman", latency.String()),
		}
		if err != nil {
			baseAttrs = append(baseAttrs, slog.String("error", err.Error()))
		}

		// prep request attributes
		requestAttributes := []slog.Attr{
			slog.Time("time", start),
			slog.String("method", c.Method()),
			slog.String("host", c.Hostname()),
			slog.String("path", c.Path()),
			slog.String("route", c.Route().Path),
			slog.String("ip", requestcontext.GetClientIP(c.UserContext())),
			slog.String("remoteIP", c.Context().RemoteIP().String()),
			slog.Any("x-forwarded-for", c.IPs()),
			slog.String("user-agent", string(c.Context().UserAgent())),
			slog.Any("params", c.AllParams()),
			slog.Int("length", len((c.Body()))),
		}

		// prep response attributes
		responseAttributes := []slog.Attr{
			slog.Time("time", end),
			slog.Int("status", status),
			slog.Int("length", len(c.Response().Body())),
		}

		// request query
		if config.WithRequestQuery {
			requestAttributes = append(requestAttributes, slog.String("query", string(c.Request().URI().QueryString())))
		}

		// request headers
		if config.WithRequestHeader {
			kv := []any{}
			for k, v := range c.GetReqHeaders() {
				if _, found := hiddenRequestHeaders[strings.ToLower(k)]; found {
					continue
				}
				kv = append(kv, slog.Any(k, v))
			}
			requestAttributes = append(requestAttributes, slog.Group("header", kv...))
		}

		logger.LogAttrs(c.UserContext(), level, "Request Completed", append([]slog.Attr{
			{
				Key:   "request",
				Value: slog.GroupValue(requestAttributes...),
			},
			{
				Key:   "response",
				Value: slog.GroupValue(responseAttributes...),
			},
		}, baseAttrs...)...,
		)

		return errors.WithStack(err)
	}
}

// responseStatus resolves the status the error handler will write for err,
// which runs after the middleware chain returns.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	return errorhandler.Status(err)
}
