package server

import (
	"context"

	"github.com/ciphron/scdl/internal/logger"
	"github.com/ciphron/scdl/internal/server/router"
)

type (
	EngineOptions struct {
		Debug           bool
		CORSAllowOrigin string
	}

	Server interface {
		Listen(port int, localOnly bool) error
		Shutdown(ctx context.Context) error
	}
)

// NewLoggerAndRouter builds the logger and router shared by the HTTP server.
func NewLoggerAndRouter(options EngineOptions) (l *logger.Logger, r *router.Router) {
	l = logger.NewLogger(logger.LoggerOptions{
		Debug: options.Debug,
	}).SpawnForComponent("server")
	r = router.NewRouter(router.RouterOptions{
		Logger:          l,
		CORSAllowOrigin: options.CORSAllowOrigin,
	})
	return
}
