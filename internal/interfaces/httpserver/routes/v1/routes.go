package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"user-api/internal/config"
	"user-api/internal/infrastructure/auth"
	"user-api/internal/interfaces/httpserver/handlers"
	"user-api/internal/interfaces/httpserver/routes"
)

// Routes builds the static v1 route table.
type Routes struct {
	handlers *handlers.Provider
	tokens   *auth.TokenManager
	log      zerolog.Logger
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider, tokens *auth.TokenManager, log zerolog.Logger) *Routes {
	return &Routes{
		handlers: handlerProvider,
		tokens:   tokens,
		log:      log,
	}
}

// Groups returns every v1 route group. The table is declared once here;
// nothing registers v1 routes anywhere else.
func (r *Routes) Groups() []routes.Group {
	authed := r.tokens.Middleware()

	return []routes.Group{
		{
			Version: "v1",
			Routes: []routes.Route{
				{Method: http.MethodGet, Path: "/healthz", Handlers: gin.HandlersChain{getHealthz}},
				{Method: http.MethodGet, Path: "/version", Handlers: gin.HandlersChain{getVersion}},
			},
		},
		{
			Version: "v1",
			Prefix:  "/auth",
			Routes: []routes.Route{
				{Method: http.MethodPost, Path: "/register", Handlers: gin.HandlersChain{r.register}},
				{Method: http.MethodPost, Path: "/login", Handlers: gin.HandlersChain{r.login}},
				{Method: http.MethodGet, Path: "/me", Handlers: gin.HandlersChain{authed, auth.RequireScope("profile.read"), r.me}},
			},
		},
		{
			Version: "v1",
			Prefix:  "/users",
			Routes: []routes.Route{
				{Method: http.MethodPost, Path: "", Handlers: gin.HandlersChain{authed, auth.RequireScope("users.manage"), r.createUser}},
				{Method: http.MethodGet, Path: "", Handlers: gin.HandlersChain{authed, auth.RequireScope("data.view"), r.listUsers}},
				{Method: http.MethodGet, Path: "/:id", Handlers: gin.HandlersChain{authed, auth.RequireScope("data.view"), r.getUser}},
			},
		},
	}
}

// getHealthz godoc
// @Summary Health check endpoint
// @Produce json
// @Success 200 {object} map[string]string
// @Router /v1/healthz [get]
func getHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getVersion godoc
// @Summary Get API build version
// @Produce json
// @Success 200 {object} map[string]string
// @Router /v1/version [get]
func getVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": config.Version})
}
