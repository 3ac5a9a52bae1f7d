package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"venue-scout/internal/domain"
)

// SavedVenueRepository persiste los lugares que el usuario decide guardar.
type SavedVenueRepository interface {
	Save(ctx context.Context, venue domain.Venue) (domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
}

const savedVenuesSchema = `
	CREATE TABLE IF NOT EXISTS saved_venues (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		address    TEXT NOT NULL DEFAULT '',
		payload    JSONB NOT NULL,
		saved_at   TIMESTAMPTZ NOT NULL
	)
`

type PgSavedVenueRepository struct {
	pool *pgxpool.Pool
}

func NewPgSavedVenueRepository(pool *pgxpool.Pool) *PgSavedVenueRepository {
	return &PgSavedVenueRepository{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (r *PgSavedVenueRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, savedVenuesSchema)
	return err
}

func (r *PgSavedVenueRepository) Save(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	const query = `
		INSERT INTO saved_venues (id, name, address, payload, saved_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	venue.ID = savedVenueID(venue.ID)
	now := time.Now().UTC()
	venue.SavedAt = &now

	payload, err := json.Marshal(venue)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("marshal venue: %w", err)
	}
	_, err = r.pool.Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Address,
		payload,
		now,
	)
	if err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

func (r *PgSavedVenueRepository) List(ctx context.Context) ([]domain.Venue, error) {
	const query = `
		SELECT id::text, payload, saved_at
		FROM saved_venues
		ORDER BY saved_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := []domain.Venue{}
	for rows.Next() {
		var (
			id      string
			payload []byte
			savedAt time.Time
		)
		if err := rows.Scan(&id, &payload, &savedAt); err != nil {
			return nil, err
		}
		var v domain.Venue
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, fmt.Errorf("unmarshal venue %s: %w", id, err)
		}
		v.ID = id
		v.SavedAt = &savedAt
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}

// savedVenueID conserva un UUID valido; cualquier otro id se reemplaza.
func savedVenueID(id string) string {
	if _, err := uuid.Parse(id); err != nil {
		return uuid.NewString()
	}
	return id
}
