package beers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Database es lo mínimo de pgxpool.Pool que usa el repositorio.
// En tests se reemplaza por un fake que devuelve filas armadas a mano.
type Database interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository accede a la tabla beers.
// Contiene SQL y mapeo DB → modelo.
type Repository struct {
	database Database
}

// NewRepository crea un repositorio de cervezas.
func NewRepository(database Database) *Repository {
	return &Repository{database: database}
}

// Códigos SQLSTATE de Postgres.
const (
	uniqueViolation   = "23505"
	numericOutOfRange = "22003"
)

const beerColumns = `id, beer_name, beer_style, upc, price::text, quantity_on_hand, created_at, updated_at`

// scanBeer lee una fila con el orden de beerColumns.
// Price viaja como texto para no perder precisión en numeric(10,2).
func scanBeer(row pgx.Row) (Beer, error) {
	var (
		beer     Beer
		price    string
		quantity int
	)
	if err := row.Scan(&beer.ID, &beer.Name, &beer.Style, &beer.UPC, &price, &quantity, &beer.CreatedAt, &beer.UpdatedAt); err != nil {
		return Beer{}, err
	}

	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return Beer{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	beer.Price = parsed
	beer.QuantityOnHand = &quantity

	return beer, nil
}

// mapWriteError traduce errores de escritura a errores de dominio.
func mapWriteError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}
	var postgresError *pgconn.PgError
	if errors.As(err, &postgresError) {
		switch postgresError.Code {
		case uniqueViolation:
			return ErrorDuplicateUPC
		case numericOutOfRange:
			return fmt.Errorf("%w: %s", ErrorInvalidInput, postgresError.Message)
		}
	}
	return err
}

func quantityOf(input BeerInput) int {
	if input.QuantityOnHand == nil {
		return 0
	}
	return *input.QuantityOnHand
}

func priceOf(input BeerInput) string {
	if input.Price == nil {
		return "0"
	}
	return input.Price.String()
}

// Insert crea una cerveza y devuelve el registro persistido.
// Usamos RETURNING para obtener id y timestamps generados por DB.
func (repository *Repository) Insert(ctx context.Context, input BeerInput) (Beer, error) {
	const query = `
		INSERT INTO beers (beer_name, beer_style, upc, price, quantity_on_hand)
		VALUES ($1, $2, $3, $4::numeric, $5)
		RETURNING ` + beerColumns + `;
	`

	beer, err := scanBeer(repository.database.QueryRow(ctx, query, input.Name, string(input.Style), input.UPC, priceOf(input), quantityOf(input)))
	if err != nil {
		return Beer{}, mapWriteError(err)
	}
	return beer, nil
}

// whereClause arma el filtro del listado. Devuelve el SQL y los args a partir de $start.
func whereClause(query ListQuery, start int) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if query.Name != "" {
		args = append(args, query.Name)
		conditions = append(conditions, fmt.Sprintf("beer_name = $%d", start+len(args)-1))
	}
	if query.Style != "" {
		args = append(args, string(query.Style))
		conditions = append(conditions, fmt.Sprintf("beer_style = $%d", start+len(args)-1))
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List devuelve una página de cervezas ordenadas por nombre y luego id.
func (repository *Repository) List(ctx context.Context, query ListQuery, limit, offset int) ([]Beer, error) {
	where, filterArgs := whereClause(query, 3)
	sql := `SELECT ` + beerColumns + ` FROM beers` + where + ` ORDER BY beer_name, id LIMIT $1 OFFSET $2`

	args := append([]any{limit, offset}, filterArgs...)
	rows, err := repository.database.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	beers := []Beer{}
	for rows.Next() {
		beer, err := scanBeer(rows)
		if err != nil {
			return nil, err
		}
		beers = append(beers, beer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return beers, nil
}

// Count cuenta las cervezas que cumplen los filtros del listado.
func (repository *Repository) Count(ctx context.Context, query ListQuery) (int, error) {
	where, args := whereClause(query, 1)
	sql := `SELECT count(*) FROM beers` + where

	var total int
	if err := repository.database.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// GetByID busca por clave primaria. Devuelve pgx.ErrNoRows si no existe.
func (repository *Repository) GetByID(ctx context.Context, id uuid.UUID) (Beer, error) {
	const query = `SELECT ` + beerColumns + ` FROM beers WHERE id = $1;`

	return scanBeer(repository.database.QueryRow(ctx, query, id))
}

// GetByUPC busca por UPC exacto. Devuelve pgx.ErrNoRows si no existe.
func (repository *Repository) GetByUPC(ctx context.Context, upc string) (Beer, error) {
	const query = `SELECT ` + beerColumns + ` FROM beers WHERE upc = $1;`

	return scanBeer(repository.database.QueryRow(ctx, query, upc))
}

// Update reemplaza el registro completo y refresca updated_at.
func (repository *Repository) Update(ctx context.Context, id uuid.UUID, input BeerInput) (Beer, error) {
	const query = `
		UPDATE beers
		SET beer_name = $1, beer_style = $2, upc = $3, price = $4::numeric, quantity_on_hand = $5, updated_at = now()
		WHERE id = $6
		RETURNING ` + beerColumns + `;
	`

	beer, err := scanBeer(repository.database.QueryRow(ctx, query, input.Name, string(input.Style), input.UPC, priceOf(input), quantityOf(input), id))
	if err != nil {
		return Beer{}, mapWriteError(err)
	}
	return beer, nil
}

// Delete borra por id. Si no había fila devuelve ErrorNotFound.
func (repository *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM beers WHERE id = $1 RETURNING id;`

	var deleted uuid.UUID
	if err := repository.database.QueryRow(ctx, query, id).Scan(&deleted); err != nil {
		return mapWriteError(err)
	}
	return nil
}
