package app

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/ciphron/scdl/internal/config"
	"github.com/ciphron/scdl/internal/logger"
	"github.com/ciphron/scdl/internal/runner"
	"github.com/ciphron/scdl/internal/server"
	"github.com/ciphron/scdl/internal/server/router"
	"github.com/ciphron/scdl/internal/store"
	"github.com/ciphron/scdl/internal/varview"
)

type (
	ServerOptions struct {
		C       *config.Config
		Version string
	}

	appServer struct {
		logger  *logger.Logger
		router  *router.Router
		store   store.ProgramStore
		runner  *runner.Runner
		views   *viewStore
		version string
	}

	appServerOptions struct {
		logger  *logger.Logger
		router  *router.Router
		store   store.ProgramStore
		runner  *runner.Runner
		version string
	}
)

// newAppServer creates a new appServer.
func newAppServer(options appServerOptions) *appServer {
	a := &appServer{
		logger:  options.logger,
		router:  options.router,
		store:   options.store,
		runner:  options.runner,
		views:   newViewStore(),
		version: options.version,
	}
	a.router.SetRoutes(a.routes())
	return a
}

// Listen implements server.Server.
func (a *appServer) Listen(port int, localOnly bool) error {
	a.logger.Debug().Str("version", a.version).Msg("debug scdl compiler server")
	a.logger.Info().
		Int("port", port).
		Bool("localOnly", localOnly).
		Msg("starting scdl compiler service")
	return a.router.Start(port, localOnly)
}

// Shutdown implements server.Server.
func (a *appServer) Shutdown(ctx context.Context) error {
	return a.router.Shutdown(ctx)
}

// NewServer wires the HTTP API together from config: a compiled-program
// registry, a batch-evaluation worker pool, and the request router.
func NewServer(options ServerOptions) (server.Server, error) {
	l, r := server.NewLoggerAndRouter(server.EngineOptions{
		Debug:           options.C.Debug(),
		CORSAllowOrigin: options.C.CORSAllowOrigin(),
	})

	runOpts := runner.Options{Workers: options.C.RunnerWorkers()}

	app := newAppServer(appServerOptions{
		logger:  l,
		router:  r,
		store:   store.New(),
		runner:  runner.New(runOpts),
		version: options.Version,
	})

	return app, nil
}

func (a *appServer) getLoggerFromContext(c *gin.Context) (*logger.Logger, error) {
	if loggerInstance, ok := c.Get("logger"); ok {
		if loggerInstance, ok := loggerInstance.(*logger.Logger); ok {
			return loggerInstance, nil
		}
	}
	err := errors.New("logger not found in context")
	a.logger.Error().Err(err).Send()
	c.String(http.StatusInternalServerError, internalServerErrorMsg)
	return nil, err
}

// viewStore is a tiny in-memory map from a compiled program's ID to the
// variable view registered for it, so a client can upload the view once
// at compile time and reuse it across later /eval calls.
type viewStore struct {
	sync.RWMutex
	views map[string]*varview.View
}

func newViewStore() *viewStore {
	return &viewStore{views: make(map[string]*varview.View)}
}

func (s *viewStore) set(id string, v *varview.View) {
	s.Lock()
	s.views[id] = v
	s.Unlock()
}

func (s *viewStore) get(id string) (*varview.View, bool) {
	s.RLock()
	v, ok := s.views[id]
	s.RUnlock()
	return v, ok
}
