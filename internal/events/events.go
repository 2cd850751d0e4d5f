// Package events publica cambios del catálogo para otros servicios.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type identifica el tipo de cambio.
type Type string

const (
	BeerCreated Type = "beer.created"
	BeerUpdated Type = "beer.updated"
	BeerDeleted Type = "beer.deleted"
)

// Event es el mensaje que viaja al broker.
type Event struct {
	ID         string    `json:"event_id"`
	Type       Type      `json:"event_type"`
	BeerID     string    `json:"beer_id"`
	UPC        string    `json:"upc,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New arma un evento con id y timestamp propios.
func New(eventType Type, beerID uuid.UUID, upc string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		BeerID:     beerID.String(),
		UPC:        upc,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher entrega eventos. Las implementaciones deben ser seguras para uso concurrente.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher descarta todo. Se usa cuando no hay brokers configurados.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
