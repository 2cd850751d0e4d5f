package beers

import (
	"context"
	"errors"
	"strings"

	"github.com/Lelo88/brewery-api-golang/internal/events"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput = errors.New("invalid input")
	ErrorInvalidStyle = errors.New("invalid beer style")
	ErrorDuplicateUPC = errors.New("duplicate beer upc")
	ErrorNotFound     = errors.New("beer not found")
)

// RepositoryAPI es lo que el service necesita de la persistencia.
type RepositoryAPI interface {
	Insert(ctx context.Context, input BeerInput) (Beer, error)
	List(ctx context.Context, query ListQuery, limit, offset int) ([]Beer, error)
	Count(ctx context.Context, query ListQuery) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (Beer, error)
	GetByUPC(ctx context.Context, upc string) (Beer, error)
	Update(ctx context.Context, id uuid.UUID, input BeerInput) (Beer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service contiene las reglas de negocio de cervezas.
type Service struct {
	repository RepositoryAPI
	publisher  events.Publisher
}

// NewService crea un service. Con publisher nil no se emiten eventos.
func NewService(repository RepositoryAPI, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{repository: repository, publisher: publisher}
}

// normalize recorta espacios del nombre. El UPC se guarda tal cual llega,
// igual que se busca en GetByUPC.
func normalize(input BeerInput) BeerInput {
	input.Name = strings.TrimSpace(input.Name)
	return input
}

// List devuelve una página con los filtros aplicados. Cero resultados no es error.
func (service *Service) List(ctx context.Context, query ListQuery) (Page, error) {
	query.Page = NewPageRequest(query.Page.Number, query.Page.Size)
	query.Name = strings.TrimSpace(query.Name)

	if query.Style != "" && !query.Style.Valid() {
		return Page{}, ErrorInvalidStyle
	}

	beers, err := service.repository.List(ctx, query, query.Page.Size, query.Page.Offset())
	if err != nil {
		return Page{}, err
	}

	total, err := service.repository.Count(ctx, query)
	if err != nil {
		return Page{}, err
	}

	if !query.ShowInventory {
		for i := range beers {
			beers[i] = beers[i].withoutInventory()
		}
	}

	return NewPage(beers, query.Page, total), nil
}

// Get obtiene una cerveza por id. La cantidad en stock solo se incluye si se pide.
func (service *Service) Get(ctx context.Context, id uuid.UUID, showInventory bool) (Beer, error) {
	beer, err := service.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Beer{}, ErrorNotFound
		}
		return Beer{}, err
	}

	if !showInventory {
		beer = beer.withoutInventory()
	}
	return beer, nil
}

// GetByUPC obtiene una cerveza por UPC exacto, sin inventario.
func (service *Service) GetByUPC(ctx context.Context, upc string) (Beer, error) {
	beer, err := service.repository.GetByUPC(ctx, upc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Beer{}, ErrorNotFound
		}
		return Beer{}, err
	}
	return beer.withoutInventory(), nil
}

// Create persiste la cerveza y espera el resultado antes de devolver.
// La respuesta no incluye inventario: en el alta no hay forma de pedirlo.
func (service *Service) Create(ctx context.Context, input BeerInput) (Beer, error) {
	input = normalize(input)
	if input.Name == "" || input.UPC == "" || !input.Style.Valid() {
		return Beer{}, ErrorInvalidInput
	}

	beer, err := service.repository.Insert(ctx, input)
	if err != nil {
		return Beer{}, err
	}

	service.publish(ctx, events.BeerCreated, beer)
	return beer.withoutInventory(), nil
}

// Update reemplaza el registro completo. Si el id no existe devuelve ErrorNotFound.
func (service *Service) Update(ctx context.Context, id uuid.UUID, input BeerInput) (Beer, error) {
	input = normalize(input)
	if input.Name == "" || input.UPC == "" || !input.Style.Valid() {
		return Beer{}, ErrorInvalidInput
	}

	beer, err := service.repository.Update(ctx, id, input)
	if err != nil {
		return Beer{}, err
	}

	service.publish(ctx, events.BeerUpdated, beer)
	return beer.withoutInventory(), nil
}

// Delete elimina por id. Borrar algo inexistente es ErrorNotFound.
func (service *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		return err
	}

	service.publish(ctx, events.BeerDeleted, Beer{ID: id})
	return nil
}

// publish notifica el cambio. La escritura ya se confirmó, así que un fallo acá solo se loguea.
func (service *Service) publish(ctx context.Context, eventType events.Type, beer Beer) {
	event := events.New(eventType, beer.ID, beer.UPC)
	if err := service.publisher.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("event_type", string(eventType)).
			Str("beer_id", beer.ID.String()).
			Msg("publish beer event")
	}
}
