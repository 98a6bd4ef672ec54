package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/hrgate/hrgate/pkg/configuration"
	"github.com/hrgate/hrgate/pkg/httpapi"
	"github.com/hrgate/hrgate/pkg/middleware"
	"github.com/hrgate/hrgate/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Pool          *pgxpool.Pool
	Controllers   []server.Controller
}

// Default assembles the standard middleware chain around the given
// controllers: request logging, pool injection, tenant resolution.
func Default(options *DefaultOptions) *server.HTTPServer {
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, options.Configuration),
		middleware.ProvidePool(options.Pool),
		middleware.RequireTenantFromHeader(options.Configuration.TenantIDHeader),
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no such endpoint", nil)
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	return server.NewHTTPServer(options.Controllers, middlewares, notFound, methodNotAllowed)
}
