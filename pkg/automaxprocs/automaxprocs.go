// Package automaxprocs sets GOMAXPROCS to the container CPU quota and logs the change.
package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

// Init is a no-op outside Linux or without a configured CPU quota.
// A GOMAXPROCS environment variable always wins.
func Init() error {
	prev := runtime.GOMAXPROCS(0)
	_, err := maxprocs.Set(maxprocs.Logger(newLogger(prev)), maxprocs.Min(1))
	return errors.WithStack(err)
}

func newLogger(prev int) func(format string, v ...any) {
	return func(format string, v ...any) {
		attrs := []slog.Attr{
			slogx.String("package", "automaxprocs"),
			slogx.Int("prev_maxprocs", prev),
		}
		// maxprocs passes the resulting value as the only argument
		if val, ok := utils.Optional(v); ok {
			if _, exists := os.LookupEnv("GOMAXPROCS"); exists {
				val = runtime.GOMAXPROCS(0)
			}
			if set, ok := val.(int); ok {
				attrs = append(attrs, slogx.Int("set_maxprocs", set))
			}
		}
		logger.LogAttrs(context.Background(), slog.LevelInfo, fmt.Sprintf(format, v...), attrs...)
	}
}
