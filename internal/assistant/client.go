package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"venue-scout/internal/domain"
)

var (
	// ErrTransportFailure cubre errores de red y respuestas no 2xx.
	ErrTransportFailure = errors.New("assistant transport failure")
	// ErrMalformedReply indica un cuerpo que no se pudo decodificar.
	ErrMalformedReply = errors.New("assistant malformed reply")
)

// Client envia mensajes de una conversacion al servicio asistente.
type Client interface {
	SendMessage(ctx context.Context, conversationID domain.ConversationID, text string) (domain.AssistantReply, error)
}

// PlacesClient obtiene lugares al azar para un tipo de evento.
type PlacesClient interface {
	RandomPlaces(ctx context.Context, eventType string) ([]domain.Venue, error)
}

// HTTPClient implementa Client y PlacesClient contra la API JSON del asistente.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye el cliente; timeout <= 0 usa 60s.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPClient) SendMessage(ctx context.Context, conversationID domain.ConversationID, text string) (domain.AssistantReply, error) {
	reqBody := messageRequest{
		Message:        text,
		ConversationID: conversationID.String(),
	}
	body, err := c.doJSON(ctx, http.MethodPost, "/api/ai_message", reqBody)
	if err != nil {
		return nil, err
	}
	return DecodeReply(body)
}

func (c *HTTPClient) RandomPlaces(ctx context.Context, eventType string) ([]domain.Venue, error) {
	path := "/generate-random-places?event_type=" + url.QueryEscape(eventType)
	body, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: places: %w", ErrMalformedReply, err)
	}
	return decodeVenues(resp["places"]), nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	return doJSON(ctx, c.client, c.logger, method, c.baseURL+path, payload)
}

func doJSON(ctx context.Context, client *http.Client, logger *zap.Logger, method, target string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		bodyBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %w", ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransportFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("assistant error status",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(respBody, 512)),
		)
		return nil, fmt.Errorf("%w: status=%d", ErrTransportFailure, resp.StatusCode)
	}
	return respBody, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

type messageRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}
