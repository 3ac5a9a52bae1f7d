package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"venue-scout/internal/assistant"
	"venue-scout/internal/domain"
)

const (
	startMessage      = "start"
	sendFailureNotice = "Failed to send message. Please try again."
)

var (
	ErrSessionNotConfigured = errors.New("conversation session not configured")
	ErrEmptyMessage         = errors.New("empty message")
	ErrSessionDisposed      = errors.New("session disposed")
)

// ConversationSession es duena de la identidad de la conversacion y de su historial.
// Los envios se serializan en orden de llegada: cada turno espera a que termine el anterior.
type ConversationSession struct {
	id       domain.ConversationID
	client   assistant.Client
	router   ResultRouter
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	history  []domain.Message
	state    domain.SessionState
	started  bool
	disposed bool
	tail     chan struct{}
}

func NewConversationSession(client assistant.Client, router ResultRouter, notifier Notifier, logger *zap.Logger) *ConversationSession {
	if router == nil {
		router = discardRouter{}
	}
	if notifier == nil {
		notifier = discardNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	tail := make(chan struct{})
	close(tail)
	return &ConversationSession{
		id:       domain.ConversationID(uuid.NewString()),
		client:   client,
		router:   router,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		history:  []domain.Message{},
		state:    domain.SessionIdle,
		tail:     tail,
	}
}

func (s *ConversationSession) ID() domain.ConversationID { return s.id }

func (s *ConversationSession) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History devuelve una copia del historial en orden de insercion.
func (s *ConversationSession) History() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Start envia el mensaje centinela "start" una sola vez. Un fallo de transporte se
// registra y se descarta: la sesion queda sin saludo.
func (s *ConversationSession) Start(ctx context.Context) {
	if s == nil || s.client == nil {
		return
	}
	s.mu.Lock()
	if s.started || s.disposed {
		s.mu.Unlock()
		return
	}
	s.started = true
	turn := s.enqueueLocked()
	s.mu.Unlock()

	reply, release, err := s.exchange(ctx, turn, startMessage)
	defer release()
	if err != nil {
		if !errors.Is(err, ErrSessionDisposed) {
			s.logger.Warn("start conversation failed", zap.String("conversation_id", s.id.String()), zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.appendLocked(domain.RoleAssistant, reply.Text())
}

// Send agrega el mensaje del usuario de inmediato y espera la respuesta del asistente.
// Texto vacio no hace nada. Ante un fallo de transporte se publica una notificacion y el
// mensaje del usuario queda sin respuesta.
func (s *ConversationSession) Send(ctx context.Context, text string) (domain.AssistantReply, error) {
	if s == nil || s.client == nil {
		return nil, ErrSessionNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil, ErrSessionDisposed
	}
	s.appendLocked(domain.RoleUser, text)
	turn := s.enqueueLocked()
	s.mu.Unlock()

	reply, release, err := s.exchange(ctx, turn, text)
	defer release()
	if err != nil {
		if errors.Is(err, ErrSessionDisposed) || ctx.Err() != nil {
			return nil, err
		}
		s.logger.Warn("send message failed", zap.String("conversation_id", s.id.String()), zap.Error(err))
		s.notifier.Notify(ctx, domain.Notification{
			ID:          uuid.NewString(),
			SessionID:   s.id.String(),
			Description: sendFailureNotice,
			CreatedAt:   s.now().UTC(),
		})
		return nil, fmt.Errorf("send message: %w", err)
	}

	// Se enruta con el lock tomado: Dispose no puede colarse entre el chequeo y la escritura.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil, ErrSessionDisposed
	}
	if venues, ok := reply.(domain.VenueReply); ok {
		if err := s.router.Route(ctx, s.id, venues); err != nil {
			s.logger.Warn("route venue results failed", zap.String("conversation_id", s.id.String()), zap.Error(err))
		}
	}
	s.appendLocked(domain.RoleAssistant, reply.Text())
	return reply, nil
}

// Dispose cancela lo que este en vuelo; las respuestas tardias ya no tocan el historial.
func (s *ConversationSession) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	s.state = domain.SessionDisposed
	s.cancel()
}

type sessionTurn struct {
	prev <-chan struct{}
	done chan struct{}
}

func (s *ConversationSession) enqueueLocked() sessionTurn {
	turn := sessionTurn{prev: s.tail, done: make(chan struct{})}
	s.tail = turn.done
	return turn
}

// exchange espera su turno y hace el viaje de ida y vuelta. El turno sigue tomado hasta
// que se llame a release, asi la respuesta se agrega antes de que avance el siguiente.
func (s *ConversationSession) exchange(ctx context.Context, turn sessionTurn, text string) (domain.AssistantReply, func(), error) {
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	select {
	case <-turn.prev:
	case <-reqCtx.Done():
		go func() {
			<-turn.prev
			close(turn.done)
		}()
		return nil, func() {}, s.abortErr(ctx)
	}
	release := func() { close(turn.done) }

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil, release, ErrSessionDisposed
	}
	s.state = domain.SessionAwaitingReply
	s.mu.Unlock()

	reply, err := s.client.SendMessage(reqCtx, s.id, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil, release, ErrSessionDisposed
	}
	s.state = domain.SessionIdle
	if err != nil {
		return nil, release, err
	}
	if reply == nil {
		reply = domain.PlainReply{}
	}
	return reply, release, nil
}

func (s *ConversationSession) abortErr(ctx context.Context) error {
	if s.ctx.Err() != nil {
		return ErrSessionDisposed
	}
	return ctx.Err()
}

func (s *ConversationSession) appendLocked(role domain.Role, content string) {
	s.history = append(s.history, domain.Message{
		Seq:       len(s.history) + 1,
		Role:      role,
		Content:   content,
		Timestamp: s.now().UTC(),
	})
}
