package beers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Beer es el registro persistido y también el DTO que viaja en las respuestas.
// QuantityOnHand es puntero: solo se serializa cuando el cliente pidió ver inventario.
type Beer struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"beerName"`
	Style          Style           `json:"beerStyle"`
	UPC            string          `json:"upc"`
	Price          decimal.Decimal `json:"price"`
	QuantityOnHand *int            `json:"quantityOnHand,omitempty"`
	CreatedAt      time.Time       `json:"createdDate"`
	UpdatedAt      time.Time       `json:"lastUpdatedDate"`
}

// withoutInventory devuelve una copia sin cantidad en stock.
func (beer Beer) withoutInventory() Beer {
	beer.QuantityOnHand = nil
	return beer
}

// BeerInput es el payload de alta y de reemplazo completo (PUT).
// Campos como id o fechas que mande el cliente se ignoran.
type BeerInput struct {
	Name           string           `json:"beerName" validate:"required,notblank"`
	Style          Style            `json:"beerStyle" validate:"required,beerstyle"`
	UPC            string           `json:"upc" validate:"required,notblank,trimmed"`
	Price          *decimal.Decimal `json:"price" validate:"required,gte=0"`
	QuantityOnHand *int             `json:"quantityOnHand" validate:"omitempty,gte=0,lte=2147483647"`
}

// ListQuery agrupa filtros y paginación del listado.
type ListQuery struct {
	Name          string
	Style         Style
	Page          PageRequest
	ShowInventory bool
}
