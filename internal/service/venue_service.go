package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"venue-scout/internal/assistant"
	"venue-scout/internal/domain"
	"venue-scout/internal/repository"
)

var (
	ErrVenueServiceNotConfigured = errors.New("venue service not configured")
	ErrVenueInvalidInput         = errors.New("venue invalid input")
)

// VenueService expone los lugares decorados: al azar, por conversacion y guardados.
type VenueService struct {
	places    assistant.PlacesClient
	saved     repository.SavedVenueRepository
	results   VenueResultStore
	decorator *VenueDecorator
	logger    *zap.Logger
}

func NewVenueService(
	places assistant.PlacesClient,
	saved repository.SavedVenueRepository,
	results VenueResultStore,
	decorator *VenueDecorator,
	logger *zap.Logger,
) *VenueService {
	if decorator == nil {
		decorator = NewVenueDecorator(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VenueService{
		places:    places,
		saved:     saved,
		results:   results,
		decorator: decorator,
		logger:    logger,
	}
}

func (s *VenueService) Decorator() *VenueDecorator { return s.decorator }

func (s *VenueService) RandomPlaces(ctx context.Context, eventType string) ([]domain.VenueView, error) {
	if s == nil || s.places == nil {
		return nil, ErrVenueServiceNotConfigured
	}
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return nil, ErrVenueInvalidInput
	}
	venues, err := s.places.RandomPlaces(ctx, eventType)
	if err != nil {
		return nil, err
	}
	return s.decorator.DecorateAll(venues), nil
}

// SessionVenues devuelve el ultimo resultado enrutado para la conversacion.
func (s *VenueService) SessionVenues(ctx context.Context, id domain.ConversationID) ([]domain.VenueView, bool, error) {
	if s == nil || s.results == nil {
		return nil, false, ErrVenueServiceNotConfigured
	}
	venues, ok, err := s.results.Get(ctx, id)
	if err != nil || !ok {
		return nil, ok, err
	}
	return s.decorator.DecorateAll(venues), true, nil
}

func (s *VenueService) Save(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	if s == nil || s.saved == nil {
		return domain.Venue{}, ErrVenueServiceNotConfigured
	}
	venue.Name = strings.TrimSpace(venue.Name)
	venue.Address = strings.TrimSpace(venue.Address)
	if venue.Name == "" {
		return domain.Venue{}, ErrVenueInvalidInput
	}
	saved, err := s.saved.Save(ctx, venue)
	if err != nil {
		s.logger.Warn("save venue failed", zap.String("venue", venue.Name), zap.Error(err))
		return domain.Venue{}, err
	}
	return saved, nil
}

func (s *VenueService) ListSaved(ctx context.Context) ([]domain.VenueView, error) {
	if s == nil || s.saved == nil {
		return nil, ErrVenueServiceNotConfigured
	}
	venues, err := s.saved.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorator.DecorateAll(venues), nil
}
