package service

import (
	"context"
	"sync"

	"venue-scout/internal/domain"
)

// Notifier publica avisos transitorios para el usuario.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// NotifierFunc adapta una funcion a Notifier.
type NotifierFunc func(ctx context.Context, n domain.Notification)

func (f NotifierFunc) Notify(ctx context.Context, n domain.Notification) { f(ctx, n) }

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, domain.Notification) {}

// NoticeBoard guarda en memoria los avisos pendientes por sesion hasta que se descartan.
type NoticeBoard struct {
	mu    sync.Mutex
	items map[string][]domain.Notification
	max   int
}

func NewNoticeBoard(maxPerSession int) *NoticeBoard {
	if maxPerSession <= 0 {
		maxPerSession = 20
	}
	return &NoticeBoard{
		items: make(map[string][]domain.Notification),
		max:   maxPerSession,
	}
}

func (b *NoticeBoard) Notify(_ context.Context, n domain.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := append(b.items[n.SessionID], n)
	if len(list) > b.max {
		list = list[len(list)-b.max:]
	}
	b.items[n.SessionID] = list
}

func (b *NoticeBoard) Pending(sessionID string) []domain.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Notification, len(b.items[sessionID]))
	copy(out, b.items[sessionID])
	return out
}

// Dismiss devuelve false si el aviso no existe.
func (b *NoticeBoard) Dismiss(sessionID, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.items[sessionID]
	for i, n := range list {
		if n.ID == id {
			b.items[sessionID] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

func (b *NoticeBoard) Clear(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.items, sessionID)
}
