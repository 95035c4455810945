// Package routes defines the statically declared, versioned route table.
// Versions are independent: every group is mounted under its own version
// segment and nothing falls through between versions.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Route is one statically declared endpoint. Handlers is the full chain for
// the route, including any per-route middleware such as auth.
type Route struct {
	Method   string
	Path     string
	Handlers gin.HandlersChain
}

// Group is an immutable set of routes sharing an API version and a path
// prefix. Groups are built once at startup.
type Group struct {
	Version string
	Prefix  string
	Routes  []Route
}

// Mount validates all accumulated groups for duplicate (method, path)
// collisions and then registers them on the serving surface. Registration is
// all-or-nothing: a collision aborts startup before anything is mounted.
func Mount(engine gin.IRouter, groups ...Group) error {
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, route := range group.Routes {
			key := route.Method + " /" + group.Version + group.Prefix + route.Path
			if _, dup := seen[key]; dup {
				return fmt.Errorf("duplicate route registration: %s", key)
			}
			seen[key] = struct{}{}
		}
	}

	for _, group := range groups {
		ginGroup := engine.Group("/" + group.Version + group.Prefix)
		for _, route := range group.Routes {
			ginGroup.Handle(route.Method, route.Path, route.Handlers...)
		}
	}
	return nil
}
