package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"venue-scout/internal/assistant"
	"venue-scout/internal/domain"
	"venue-scout/internal/repository"
	"venue-scout/internal/service"
	"venue-scout/internal/synthesis"
)

type testEnv struct {
	client   *assistant.MockClient
	sessions *service.SessionRegistry
	results  service.VenueResultStore
	saved    *memorySavedRepo
	router   *gin.Engine
}

type memorySavedRepo struct {
	venues []domain.Venue
}

func (m *memorySavedRepo) Save(_ context.Context, venue domain.Venue) (domain.Venue, error) {
	now := time.Now().UTC()
	venue.ID = "v" + strconv.Itoa(len(m.venues)+1)
	venue.SavedAt = &now
	m.venues = append([]domain.Venue{venue}, m.venues...)
	return venue, nil
}

func (m *memorySavedRepo) List(context.Context) ([]domain.Venue, error) {
	return m.venues, nil
}

var _ repository.SavedVenueRepository = (*memorySavedRepo)(nil)

func newTestEnv(t *testing.T, verifier *service.TokenVerifier) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client := &assistant.MockClient{Reply: domain.PlainReply{Message: "What type of event are you planning?"}}
	results := service.NewMemoryVenueResultStore(time.Minute)
	saved := &memorySavedRepo{}
	sessions := service.NewSessionRegistry(client, results, service.NewNoticeBoard(0), time.Minute, zap.NewNop())
	venues := service.NewVenueService(client, saved, results, service.NewVenueDecorator(synthesis.SeededSource), zap.NewNop())

	r := NewRouter(
		zap.NewNop(),
		[]string{"http://localhost:3000"},
		verifier,
		NewSessionHandler(zap.NewNop(), sessions, venues),
		NewVenueHandler(zap.NewNop(), venues),
	)
	return &testEnv{client: client, sessions: sessions, results: results, saved: saved, router: r}
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

type sessionEnvelope struct {
	Session struct {
		ID            string                `json:"id"`
		State         string                `json:"state"`
		History       []domain.Message      `json:"history"`
		Notifications []domain.Notification `json:"notifications"`
	} `json:"session"`
	Reply struct {
		Kind    string             `json:"kind"`
		Message string             `json:"message"`
		Venues  []domain.VenueView `json:"venues"`
	} `json:"reply"`
	Error string `json:"error"`
}

func createSession(t *testing.T, env *testEnv) sessionEnvelope {
	t.Helper()
	rec := performRequest(env.router, http.MethodPost, "/sessions", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	var body sessionEnvelope
	decodeBody(t, rec, &body)
	return body
}
