package api

import (
	"log/slog"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/jack-dao/team-management/internal/api/handler"
	"github.com/jack-dao/team-management/internal/api/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger       handler.DBPinger
	Version        string
	Members        handler.MemberService
	AllowedOrigins []string
	OpenAPISpec    []byte
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	if len(deps.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(deps.AllowedOrigins))
	}

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler, err := handler.NewOpenAPIHandler(deps.OpenAPISpec)
		if err != nil {
			slog.Error("OpenAPI document not served", "error", err)
		} else {
			r.Get("/openapi.json", openapiHandler.ServeHTTP)
		}
	}

	if deps.Members != nil {
		memberHandler := handler.NewMemberHandler(deps.Members)
		r.Route("/team-members", func(r chi.Router) {
			r.Get("/", memberHandler.List)
			r.Post("/", memberHandler.Create)
			r.Get("/{id}", memberHandler.GetByID)
			r.Put("/{id}", memberHandler.Update)
			r.Delete("/{id}", memberHandler.Delete)
		})
	}

	return r
}
