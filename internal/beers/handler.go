package beers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/Lelo88/brewery-api-golang/internal/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	List(ctx context.Context, query ListQuery) (Page, error)
	Get(ctx context.Context, id uuid.UUID, showInventory bool) (Beer, error)
	GetByUPC(ctx context.Context, upc string) (Beer, error)
	Create(ctx context.Context, input BeerInput) (Beer, error)
	Update(ctx context.Context, id uuid.UUID, input BeerInput) (Beer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Handler HTTP para cervezas.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service   ServiceAPI
	validator *Validator
}

// NewHandler crea un handler de cervezas.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service, validator: NewValidator()}
}

// fail es el único lugar donde un error de dominio se vuelve status code.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	var validationError *ValidationError
	switch {
	case errors.As(err, &validationError):
		fields := make([]httpx.FieldError, 0, len(validationError.Violations))
		for _, violation := range validationError.Violations {
			fields = append(fields, httpx.FieldError{Field: violation.Field, Error: violation.Message})
		}
		httpx.FailFields(writer, request, http.StatusBadRequest, "validation_failed", validationError.Error(), fields)
	case errors.Is(err, ErrorInvalidStyle):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_style", "beerStyle is not a known style")
	case errors.Is(err, ErrorInvalidInput):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data")
	case errors.Is(err, ErrorNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, "not_found", "beer not found")
	case errors.Is(err, ErrorDuplicateUPC):
		httpx.Fail(writer, request, http.StatusConflict, "conflict", "a beer with this upc already exists")
	default:
		// No filtramos detalles internos.
		zerolog.Ctx(request.Context()).Error().Err(err).Msg("beer request failed")
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

// parseID valida que el id del path sea UUID porque en DB es uuid.
func parseID(writer http.ResponseWriter, request *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// parseFlag lee un booleano opcional del query string.
func parseFlag(request *http.Request, name string) (bool, error) {
	value := strings.TrimSpace(request.URL.Query().Get(name))
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}

// parsePagination lee pageNumber y pageSize. Valores fuera de rango caen a default;
// valores que no son enteros son error.
func parsePagination(request *http.Request) (PageRequest, error) {
	query := request.URL.Query()

	number := DefaultPageNumber
	size := DefaultPageSize

	if value := strings.TrimSpace(query.Get("pageNumber")); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return PageRequest{}, err
		}
		number = parsed
	}

	if value := strings.TrimSpace(query.Get("pageSize")); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return PageRequest{}, err
		}
		size = parsed
	}

	return NewPageRequest(number, size), nil
}

// decodeInput lee y valida el payload de alta/modificación.
// Escribe la respuesta de error y devuelve false si no sirve.
func (handler *Handler) decodeInput(writer http.ResponseWriter, request *http.Request) (BeerInput, bool) {
	var input BeerInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return BeerInput{}, false
	}

	if err := handler.validator.Validate(input); err != nil {
		handler.fail(writer, request, err)
		return BeerInput{}, false
	}

	return input, true
}

// List maneja GET /beer con filtros y paginación.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	page, err := parsePagination(request)
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_pagination", "pageNumber and pageSize must be integers")
		return
	}

	showInventory, err := parseFlag(request, "showInventoryOnHand")
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_query", "showInventoryOnHand must be a boolean")
		return
	}

	query := ListQuery{
		Name:          strings.TrimSpace(request.URL.Query().Get("beerName")),
		Page:          page,
		ShowInventory: showInventory,
	}

	if value := request.URL.Query().Get("beerStyle"); strings.TrimSpace(value) != "" {
		style, err := ParseStyle(value)
		if err != nil {
			handler.fail(writer, request, err)
			return
		}
		query.Style = style
	}

	result, err := handler.service.List(request.Context(), query)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.JSON(writer, http.StatusOK, result)
}

// GetByID maneja GET /beer/{id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	id, ok := parseID(writer, request)
	if !ok {
		return
	}

	showInventory, err := parseFlag(request, "showInventoryOnHand")
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_query", "showInventoryOnHand must be a boolean")
		return
	}

	beer, err := handler.service.Get(request.Context(), id, showInventory)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.JSON(writer, http.StatusOK, beer)
}

// GetByUPC maneja GET /beerUpc/{upc}. El UPC pasa tal cual, sin normalizar.
func (handler *Handler) GetByUPC(writer http.ResponseWriter, request *http.Request) {
	beer, err := handler.service.GetByUPC(request.Context(), chi.URLParam(request, "upc"))
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.JSON(writer, http.StatusOK, beer)
}

// Create maneja POST /beer.
// Responde 201 recién cuando el insert terminó, con Location bajo el mismo prefijo de versión.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	input, ok := handler.decodeInput(writer, request)
	if !ok {
		return
	}

	beer, err := handler.service.Create(request.Context(), input)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	writer.Header().Set("Location", path.Join(request.URL.Path, beer.ID.String()))
	httpx.JSON(writer, http.StatusCreated, beer)
}

// Update maneja PUT /beer/{id}. Reemplazo completo, sin cuerpo en la respuesta.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id, ok := parseID(writer, request)
	if !ok {
		return
	}

	input, ok := handler.decodeInput(writer, request)
	if !ok {
		return
	}

	beer, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrorNotFound) {
			zerolog.Ctx(request.Context()).Debug().Str("beer_id", id.String()).Msg("beer not found for update")
		}
		handler.fail(writer, request, err)
		return
	}

	zerolog.Ctx(request.Context()).Debug().Str("beer_id", beer.ID.String()).Msg("beer updated")
	writer.WriteHeader(http.StatusNoContent)
}

// Delete maneja DELETE /beer/{id}. Si no existe responde 404.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id, ok := parseID(writer, request)
	if !ok {
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		handler.fail(writer, request, err)
		return
	}

	// 204 No Content: respuesta vacía.
	writer.WriteHeader(http.StatusNoContent)
}
