package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

// kindStatuses maps error kinds to HTTP statuses, first match wins.
var kindStatuses = []struct {
	kind   errs.ErrorKind
	status int
}{
	{errs.NotFound, http.StatusNotFound},
	{errs.IndexOutOfRange, http.StatusNotFound},
	{errs.DuplicateKey, http.StatusConflict},
	{errs.AlreadyMigrated, http.StatusConflict},
	{errs.NotOwner, http.StatusForbidden},
	{errs.InsufficientFunds, http.StatusUnprocessableEntity},
	{errs.InsufficientNodes, http.StatusUnprocessableEntity},
	{errs.TerminalTier, http.StatusUnprocessableEntity},
	{errs.OverflowUint64, http.StatusUnprocessableEntity},
	{errs.OverflowUint128, http.StatusUnprocessableEntity},
	{errs.InvalidArgument, http.StatusBadRequest},
	{errs.TransferRejected, http.StatusBadGateway},
	{errs.Timeout, http.StatusGatewayTimeout},
	{errs.Unsupported, http.StatusNotImplemented},
}

// StatusOf returns the HTTP status for a known error kind.
func StatusOf(err error) (int, errs.ErrorKind, bool) {
	for _, ks := range kindStatuses {
		if errors.Is(err, ks.kind) {
			return ks.status, ks.kind, true
		}
	}
	return 0, "", false
}

// Status returns the HTTP status the error handler responds with for err.
func Status(err error) int {
	if status, _, ok := StatusOf(err); ok {
		return status
	}
	if e := new(errs.PublicError); errors.As(err, &e) {
		return http.StatusBadRequest
	}
	if e := new(fiber.Error); errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		if e := new(errs.PublicError); errors.As(err, &e) {
			status := http.StatusBadRequest
			if s, _, ok := StatusOf(err); ok {
				status = s
			}
			return errors.WithStack(ctx.Status(status).JSON(map[string]any{
				"error": e.Message(),
			}))
		}
		if status, kind, ok := StatusOf(err); ok {
			if status >= http.StatusInternalServerError {
				logger.WarnContext(ctx.UserContext(), "Upstream failure during api request",
					slogx.String("event", "api_upstream_error"),
					slogx.Error(err),
				)
			}
			return errors.WithStack(ctx.Status(status).JSON(map[string]any{
				"error": kind.Error(),
			}))
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(e.Code).JSON(map[string]any{
				"error": e.Message,
			}))
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error", err,
			slogx.String("event", "api_unhandled_error"),
		)

		return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(map[string]any{
			"error": "Internal Server Error",
		}))
	}
}
