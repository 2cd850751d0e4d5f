// Package docs sirve la documentación de la API: el OpenAPI embebido y una Swagger UI que lo consume.
package docs

import (
	"embed"
	"net/http"
)

//go:embed openapi.yaml swagger.html
var assets embed.FS

// asset devuelve un handler que sirve un archivo embebido con el content type dado.
func asset(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := assets.ReadFile(name)
		if err != nil {
			http.Error(w, name+" not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// OpenAPIHandler sirve la especificación OpenAPI.
func OpenAPIHandler() http.HandlerFunc {
	return asset("openapi.yaml", "application/yaml; charset=utf-8")
}

// SwaggerUIHandler sirve la página de Swagger UI.
func SwaggerUIHandler() http.HandlerFunc {
	return asset("swagger.html", "text/html; charset=utf-8")
}
