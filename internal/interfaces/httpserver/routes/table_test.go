package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestMountRejectsDuplicateRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	err := Mount(engine,
		Group{Version: "v1", Prefix: "/users", Routes: []Route{
			{Method: http.MethodGet, Path: "", Handlers: gin.HandlersChain{ok}},
		}},
		Group{Version: "v1", Prefix: "/users", Routes: []Route{
			{Method: http.MethodGet, Path: "", Handlers: gin.HandlersChain{ok}},
		}},
	)
	if err == nil {
		t.Fatal("expected duplicate registration to be rejected")
	}
}

func TestMountAllowsSamePathAcrossVersions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	err := Mount(engine,
		Group{Version: "v1", Prefix: "/users", Routes: []Route{
			{Method: http.MethodGet, Path: "", Handlers: gin.HandlersChain{ok}},
		}},
		Group{Version: "v2", Prefix: "/users", Routes: []Route{
			{Method: http.MethodGet, Path: "", Handlers: gin.HandlersChain{ok}},
		}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, path := range []string{"/v1/users", "/v2/users"} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, rec.Code)
		}
	}
}

func TestUnknownVersionIs404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	err := Mount(engine,
		Group{Version: "v1", Prefix: "/users", Routes: []Route{
			{Method: http.MethodGet, Path: "", Handlers: gin.HandlersChain{ok}},
		}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v3/users", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown version, got %d", rec.Code)
	}
}
