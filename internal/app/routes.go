package app

import (
	"net/http"

	"github.com/ciphron/scdl/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "root",
			Method:      http.MethodGet,
			Pattern:     "/",
			HandlerFunc: a.RootHandler,
		},
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "api.programs.compile",
			Method:      http.MethodPost,
			Pattern:     "/api/programs",
			HandlerFunc: a.CompileProgram,
		},
		{
			Name:        "api.programs.get",
			Method:      http.MethodGet,
			Pattern:     "/api/programs/:id",
			HandlerFunc: a.GetProgram,
		},
		{
			Name:        "api.programs.run",
			Method:      http.MethodPost,
			Pattern:     "/api/programs/:id/run",
			HandlerFunc: a.RunCircuit,
		},
		{
			Name:        "api.programs.eval",
			Method:      http.MethodPost,
			Pattern:     "/api/programs/:id/eval",
			HandlerFunc: a.RunEval,
		},
		{
			Name:        "api.programs.batch",
			Method:      http.MethodPost,
			Pattern:     "/api/programs/:id/batch",
			HandlerFunc: a.RunBatch,
		},
	}
}
