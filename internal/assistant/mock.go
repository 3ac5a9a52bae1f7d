package assistant

import (
	"context"

	"venue-scout/internal/domain"
)

// MockClient permite tests sin llamar al asistente real.
type MockClient struct {
	Reply  domain.AssistantReply
	Places []domain.Venue
	Err    error
}

func (m *MockClient) SendMessage(ctx context.Context, conversationID domain.ConversationID, text string) (domain.AssistantReply, error) {
	return m.Reply, m.Err
}

func (m *MockClient) RandomPlaces(ctx context.Context, eventType string) ([]domain.Venue, error) {
	return m.Places, m.Err
}
