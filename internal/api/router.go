package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "relay-core/docs"
	"relay-core/internal/api/handler"
	"relay-core/pkg/router"
)

// RegisterRoutes wires the registry API and the swagger UI onto the router.
func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/specs", handler.CreateSpec)
	r.POST("/api/v1/validate", handler.ValidateSpec)
	r.GET("/api/v1/specs", handler.ListSpecs)
	// More specific routes first
	r.GET("/api/v1/specs/*/errors", handler.GetSpecErrors)
	r.GET("/api/v1/specs/*", handler.GetSpec)
	r.DELETE("/api/v1/specs/*", handler.DeleteSpec)

	r.Handle("GET", "/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
