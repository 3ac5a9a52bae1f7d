package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"venue-scout/internal/domain"
)

// SavedVenuesClient persiste lugares en el backend remoto (/api/save-venue, /api/saved-venues).
type SavedVenuesClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewSavedVenuesClient(baseURL string, timeout time.Duration, logger *zap.Logger) *SavedVenuesClient {
	inner := NewHTTPClient(baseURL, timeout, logger)
	return &SavedVenuesClient{
		baseURL: strings.TrimRight(inner.baseURL, "/"),
		client:  inner.client,
		logger:  inner.logger,
	}
}

// Save devuelve el mismo lugar: el backend remoto solo informa exito o fallo.
func (c *SavedVenuesClient) Save(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	if _, err := doJSON(ctx, c.client, c.logger, http.MethodPost, c.baseURL+"/api/save-venue", venue); err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

// List acepta {venues: [...]} o un arreglo directo.
func (c *SavedVenuesClient) List(ctx context.Context) ([]domain.Venue, error) {
	body, err := doJSON(ctx, c.client, c.logger, http.MethodGet, c.baseURL+"/api/saved-venues", nil)
	if err != nil {
		return nil, err
	}
	return decodeSavedVenues(body)
}

func decodeSavedVenues(body []byte) ([]domain.Venue, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		return decodeVenues(json.RawMessage(trimmed)), nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: saved venues: %w", ErrMalformedReply, err)
	}
	return decodeVenues(wrapper["venues"]), nil
}
