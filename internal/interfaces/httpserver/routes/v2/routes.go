// Package v2 exposes the second API version. Handlers are thin adapters
// over the same version-agnostic services used by v1; the difference is the
// response envelope, which wraps payloads in a data field and adds list
// totals. Changes here must never alter v1 behavior.
package v2

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"user-api/internal/config"
	"user-api/internal/infrastructure/auth"
	"user-api/internal/interfaces/httpserver/handlers"
	"user-api/internal/interfaces/httpserver/routes"
)

// Routes builds the static v2 route table.
type Routes struct {
	handlers *handlers.Provider
	tokens   *auth.TokenManager
	log      zerolog.Logger
}

// NewRoutes builds the v2 route registrar.
func NewRoutes(handlerProvider *handlers.Provider, tokens *auth.TokenManager, log zerolog.Logger) *Routes {
	return &Routes{
		handlers: handlerProvider,
		tokens:   tokens,
		log:      log,
	}
}

// Groups returns every v2 route group.
func (r *Routes) Groups() []routes.Group {
	authed := r.tokens.Middleware()

	return []routes.Group{
		{
			Version: "v2",
			Routes: []routes.Route{
				{Method: http.MethodGet, Path: "/healthz", Handlers: gin.HandlersChain{getHealthz}},
				{Method: http.MethodGet, Path: "/version", Handlers: gin.HandlersChain{getVersion}},
			},
		},
		{
			Version: "v2",
			Prefix:  "/auth",
			Routes: []routes.Route{
				{Method: http.MethodPost, Path: "/register", Handlers: gin.HandlersChain{r.register}},
				{Method: http.MethodPost, Path: "/login", Handlers: gin.HandlersChain{r.login}},
				{Method: http.MethodGet, Path: "/me", Handlers: gin.HandlersChain{authed, auth.RequireScope("profile.read"), r.me}},
			},
		},
		{
			Version: "v2",
			Prefix:  "/users",
			Routes: []routes.Route{
				{Method: http.MethodPost, Path: "", Handlers: gin.HandlersChain{authed, auth.RequireScope("users.manage"), r.createUser}},
				{Method: http.MethodGet, Path: "", Handlers: gin.HandlersChain{authed, auth.RequireScope("data.view"), r.listUsers}},
				{Method: http.MethodGet, Path: "/:id", Handlers: gin.HandlersChain{authed, auth.RequireScope("data.view"), r.getUser}},
			},
		},
	}
}

func getHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, envelope{Data: gin.H{"status": "ok"}})
}

func getVersion(c *gin.Context) {
	c.JSON(http.StatusOK, envelope{Data: gin.H{"version": config.Version}})
}
