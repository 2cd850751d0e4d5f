package beers

import "github.com/go-chi/chi/v5"

// APIPrefixes son las versiones publicadas. Ambas comparten handlers.
var APIPrefixes = []string{"/api/v1", "/api/v2"}

// RegisterRoutes registra las rutas de cervezas bajo cada prefijo de versión.
func RegisterRoutes(route chi.Router, handler *Handler) {
	for _, prefix := range APIPrefixes {
		route.Route(prefix, func(route chi.Router) {
			route.Get("/beer", handler.List)
			route.Post("/beer", handler.Create)
			route.Get("/beer/{id}", handler.GetByID)
			route.Put("/beer/{id}", handler.Update)
			route.Delete("/beer/{id}", handler.Delete)
			route.Get("/beerUpc/{upc}", handler.GetByUPC)
		})
	}
}
