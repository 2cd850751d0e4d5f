package docs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la documentación: /docs redirige a /docs/ (Swagger UI)
// y /docs/openapi.yaml sirve la especificación que consume la UI.
func RegisterRoutes(router chi.Router) {
	router.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusMovedPermanently)
	})
	router.Get("/docs/", SwaggerUIHandler())
	router.Get("/docs/openapi.yaml", OpenAPIHandler())
}
