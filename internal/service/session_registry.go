package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"venue-scout/internal/assistant"
	"venue-scout/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

const defaultSessionIdleTTL = 30 * time.Minute

// SessionRegistry indexa las sesiones vivas por id para la capa HTTP.
// Cada sesion sigue siendo duena exclusiva de su historial. Las sesiones sin
// actividad durante idleTTL se descartan.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[domain.ConversationID]*registryEntry
	idleTTL  time.Duration
	now      func() time.Time

	client  assistant.Client
	router  ResultRouter
	results VenueResultStore
	notices *NoticeBoard
	logger  *zap.Logger
}

type registryEntry struct {
	session  *ConversationSession
	lastSeen time.Time
}

func NewSessionRegistry(client assistant.Client, results VenueResultStore, notices *NoticeBoard, idleTTL time.Duration, logger *zap.Logger) *SessionRegistry {
	if notices == nil {
		notices = NewNoticeBoard(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if idleTTL <= 0 {
		idleTTL = defaultSessionIdleTTL
	}
	var router ResultRouter = discardRouter{}
	if results != nil {
		router = NewStoreRouter(results)
	}
	return &SessionRegistry{
		sessions: make(map[domain.ConversationID]*registryEntry),
		idleTTL:  idleTTL,
		now:      time.Now,
		client:   client,
		router:   router,
		results:  results,
		notices:  notices,
		logger:   logger,
	}
}

// Create abre una sesion nueva y envia el saludo inicial. Antes descarta las inactivas.
func (r *SessionRegistry) Create(ctx context.Context) *ConversationSession {
	r.Sweep(ctx)

	session := NewConversationSession(r.client, r.router, r.notices, r.logger)

	r.mu.Lock()
	r.sessions[session.ID()] = &registryEntry{session: session, lastSeen: r.now()}
	r.mu.Unlock()

	r.logger.Info("conversation started", zap.String("conversation_id", session.ID().String()))
	session.Start(ctx)
	return session
}

// Get cuenta como actividad. Una sesion vencida se descarta y se informa como inexistente.
func (r *SessionRegistry) Get(id domain.ConversationID) (*ConversationSession, error) {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	now := r.now()
	if r.expired(entry, now) {
		delete(r.sessions, id)
		r.mu.Unlock()
		r.release(context.Background(), id, entry.session, "conversation expired")
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = now
	r.mu.Unlock()
	return entry.session, nil
}

func (r *SessionRegistry) Notices() *NoticeBoard { return r.notices }

// Dispose cierra la sesion y limpia sus avisos y resultados.
func (r *SessionRegistry) Dispose(ctx context.Context, id domain.ConversationID) error {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	r.release(ctx, id, entry.session, "conversation disposed")
	return nil
}

// Sweep descarta las sesiones inactivas y devuelve cuantas se cerraron.
// Las que esperan respuesta del asistente no vencen.
func (r *SessionRegistry) Sweep(ctx context.Context) int {
	now := r.now()
	var stale []*registryEntry

	r.mu.Lock()
	for id, entry := range r.sessions {
		if r.expired(entry, now) {
			delete(r.sessions, id)
			stale = append(stale, entry)
		}
	}
	r.mu.Unlock()

	for _, entry := range stale {
		r.release(ctx, entry.session.ID(), entry.session, "conversation expired")
	}
	return len(stale)
}

// RunSweeper ejecuta Sweep periodicamente hasta que ctx termina.
func (r *SessionRegistry) RunSweeper(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(ctx); n > 0 {
				r.logger.Info("expired conversations swept", zap.Int("count", n))
			}
		}
	}
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) expired(entry *registryEntry, now time.Time) bool {
	if now.Sub(entry.lastSeen) <= r.idleTTL {
		return false
	}
	return entry.session.State() != domain.SessionAwaitingReply
}

func (r *SessionRegistry) release(ctx context.Context, id domain.ConversationID, session *ConversationSession, msg string) {
	session.Dispose()
	r.notices.Clear(id.String())
	if r.results != nil {
		if err := r.results.Delete(ctx, id); err != nil {
			r.logger.Warn("delete venue results failed", zap.String("conversation_id", id.String()), zap.Error(err))
		}
	}
	r.logger.Info(msg, zap.String("conversation_id", id.String()))
}
