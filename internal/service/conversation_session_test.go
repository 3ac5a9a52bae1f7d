package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"venue-scout/internal/assistant"
	"venue-scout/internal/domain"
)

type fakeAssistant struct {
	mu      sync.Mutex
	calls   []string
	ids     []domain.ConversationID
	respond func(ctx context.Context, text string) (domain.AssistantReply, error)
}

func (f *fakeAssistant) SendMessage(ctx context.Context, id domain.ConversationID, text string) (domain.AssistantReply, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.ids = append(f.ids, id)
	respond := f.respond
	f.mu.Unlock()
	if respond == nil {
		return domain.PlainReply{Message: "re:" + text}, nil
	}
	return respond(ctx, text)
}

func (f *fakeAssistant) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type recordingRouter struct {
	mu      sync.Mutex
	replies []domain.VenueReply
	ids     []domain.ConversationID
	err     error
}

func (r *recordingRouter) Route(_ context.Context, id domain.ConversationID, reply domain.VenueReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	r.replies = append(r.replies, reply)
	return r.err
}

type recordingNotifier struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, item domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item)
}

func (n *recordingNotifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}

func newTestSession(client assistant.Client, router ResultRouter, notifier Notifier) *ConversationSession {
	return NewConversationSession(client, router, notifier, zap.NewNop())
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not reached before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestConversationSessionStart(t *testing.T) {
	t.Run("saludo inicial", func(t *testing.T) {
		client := &fakeAssistant{respond: func(context.Context, string) (domain.AssistantReply, error) {
			return domain.PlainReply{Message: "What type of event are you planning?"}, nil
		}}
		s := newTestSession(client, nil, nil)
		if s.ID() == "" {
			t.Fatalf("expected conversation id")
		}

		s.Start(context.Background())
		s.Start(context.Background())

		if calls := client.Calls(); len(calls) != 1 || calls[0] != startMessage {
			t.Fatalf("expected a single start call, got %+v", calls)
		}
		if client.ids[0] != s.ID() {
			t.Fatalf("expected conversation id %q, got %q", s.ID(), client.ids[0])
		}
		history := s.History()
		if len(history) != 1 || history[0].Role != domain.RoleAssistant || history[0].Seq != 1 {
			t.Fatalf("unexpected history: %+v", history)
		}
		if history[0].Content != "What type of event are you planning?" {
			t.Fatalf("unexpected greeting %q", history[0].Content)
		}
		if s.State() != domain.SessionIdle {
			t.Fatalf("expected idle, got %s", s.State())
		}
	})

	t.Run("fallo de transporte se descarta", func(t *testing.T) {
		client := &fakeAssistant{respond: func(context.Context, string) (domain.AssistantReply, error) {
			return nil, assistant.ErrTransportFailure
		}}
		notifier := &recordingNotifier{}
		s := newTestSession(client, nil, notifier)

		s.Start(context.Background())

		if len(s.History()) != 0 {
			t.Fatalf("expected empty history, got %+v", s.History())
		}
		if s.State() != domain.SessionIdle {
			t.Fatalf("expected idle, got %s", s.State())
		}
		if notifier.Len() != 0 {
			t.Fatalf("start failures must not notify")
		}
	})
}

func TestConversationSessionSend_EmptyIsNoop(t *testing.T) {
	client := &fakeAssistant{}
	s := newTestSession(client, nil, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := s.Send(context.Background(), text); !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("expected ErrEmptyMessage for %q, got %v", text, err)
		}
	}
	if len(s.History()) != 0 {
		t.Fatalf("expected history unchanged")
	}
	if len(client.Calls()) != 0 {
		t.Fatalf("expected no request, got %+v", client.Calls())
	}
}

func TestConversationSessionSend_Plain(t *testing.T) {
	client := &fakeAssistant{}
	router := &recordingRouter{}
	s := newTestSession(client, router, nil)

	reply, err := s.Send(context.Background(), "  wedding ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Kind() != domain.ReplyPlain || reply.Text() != "re:wedding" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	history := s.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != domain.RoleUser || history[0].Content != "wedding" || history[0].Seq != 1 {
		t.Fatalf("unexpected user message: %+v", history[0])
	}
	if history[1].Role != domain.RoleAssistant || history[1].Content != "re:wedding" || history[1].Seq != 2 {
		t.Fatalf("unexpected assistant message: %+v", history[1])
	}
	if len(router.replies) != 0 {
		t.Fatalf("plain replies must not be routed")
	}
}

func TestConversationSessionSend_VenueReplyIsRouted(t *testing.T) {
	venues := domain.VenueReply{
		Message: "Great! I've found some venues that match your criteria.",
		Venues:  []domain.Venue{{Name: "Hall"}},
	}
	client := &fakeAssistant{respond: func(context.Context, string) (domain.AssistantReply, error) {
		return venues, nil
	}}
	router := &recordingRouter{err: errors.New("router down")}
	s := newTestSession(client, router, nil)

	reply, err := s.Send(context.Background(), "150")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Kind() != domain.ReplyVenues {
		t.Fatalf("expected venue reply, got %s", reply.Kind())
	}
	if len(router.replies) != 1 || router.ids[0] != s.ID() || router.replies[0].Venues[0].Name != "Hall" {
		t.Fatalf("expected payload routed, got %+v", router.replies)
	}
	history := s.History()
	if len(history) != 2 || history[1].Content != venues.Message {
		t.Fatalf("expected assistant text appended even when routing fails, got %+v", history)
	}
}

func TestConversationSessionSend_TransportFailure(t *testing.T) {
	client := &fakeAssistant{respond: func(context.Context, string) (domain.AssistantReply, error) {
		return nil, assistant.ErrTransportFailure
	}}
	notifier := &recordingNotifier{}
	s := newTestSession(client, nil, notifier)

	_, err := s.Send(context.Background(), "hola")
	if !errors.Is(err, assistant.ErrTransportFailure) {
		t.Fatalf("expected ErrTransportFailure, got %v", err)
	}
	history := s.History()
	if len(history) != 1 || history[0].Role != domain.RoleUser {
		t.Fatalf("expected only the unanswered user message, got %+v", history)
	}
	if notifier.Len() != 1 {
		t.Fatalf("expected one notification, got %d", notifier.Len())
	}
	n := notifier.items[0]
	if n.SessionID != s.ID().String() || n.Description != sendFailureNotice || n.ID == "" {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if s.State() != domain.SessionIdle {
		t.Fatalf("expected idle, got %s", s.State())
	}
	if len(client.Calls()) != 1 {
		t.Fatalf("expected no retry, got %+v", client.Calls())
	}
}

func TestConversationSessionSend_SerializesInIssueOrder(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client := &fakeAssistant{respond: func(_ context.Context, text string) (domain.AssistantReply, error) {
		if text == "uno" {
			close(entered)
			<-release
		}
		return domain.PlainReply{Message: "re:" + text}, nil
	}}
	s := newTestSession(client, nil, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := s.Send(context.Background(), "uno"); err != nil {
			t.Errorf("send uno: %v", err)
		}
	}()
	<-entered
	if s.State() != domain.SessionAwaitingReply {
		t.Fatalf("expected awaiting_reply, got %s", s.State())
	}

	go func() {
		defer wg.Done()
		if _, err := s.Send(context.Background(), "dos"); err != nil {
			t.Errorf("send dos: %v", err)
		}
	}()
	waitFor(t, func() bool { return len(s.History()) == 2 })
	if calls := client.Calls(); len(calls) != 1 {
		t.Fatalf("second request must wait for the first, got %+v", calls)
	}

	close(release)
	wg.Wait()

	if calls := client.Calls(); len(calls) != 2 || calls[0] != "uno" || calls[1] != "dos" {
		t.Fatalf("unexpected call order: %+v", calls)
	}
	want := []string{"uno", "dos", "re:uno", "re:dos"}
	history := s.History()
	if len(history) != len(want) {
		t.Fatalf("expected %d messages, got %+v", len(want), history)
	}
	for i, w := range want {
		if history[i].Content != w || history[i].Seq != i+1 {
			t.Fatalf("message %d: expected %q seq %d, got %+v", i, w, i+1, history[i])
		}
	}
}

func TestConversationSessionDispose(t *testing.T) {
	t.Run("cancela el request en vuelo", func(t *testing.T) {
		entered := make(chan struct{})
		client := &fakeAssistant{respond: func(ctx context.Context, _ string) (domain.AssistantReply, error) {
			close(entered)
			<-ctx.Done()
			return nil, ctx.Err()
		}}
		notifier := &recordingNotifier{}
		s := newTestSession(client, nil, notifier)

		done := make(chan error, 1)
		go func() {
			_, err := s.Send(context.Background(), "hola")
			done <- err
		}()
		<-entered
		s.Dispose()

		if err := <-done; !errors.Is(err, ErrSessionDisposed) {
			t.Fatalf("expected ErrSessionDisposed, got %v", err)
		}
		if notifier.Len() != 0 {
			t.Fatalf("disposal must not notify")
		}
		if s.State() != domain.SessionDisposed {
			t.Fatalf("expected disposed, got %s", s.State())
		}
		if _, err := s.Send(context.Background(), "otra"); !errors.Is(err, ErrSessionDisposed) {
			t.Fatalf("expected ErrSessionDisposed after dispose, got %v", err)
		}
		if len(s.History()) != 1 {
			t.Fatalf("expected only the first user message, got %+v", s.History())
		}
	})

	t.Run("respuesta tardia no modifica el historial", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		client := &fakeAssistant{respond: func(context.Context, string) (domain.AssistantReply, error) {
			close(entered)
			<-release
			return domain.VenueReply{Message: "tarde", Venues: []domain.Venue{{Name: "Hall"}}}, nil
		}}
		router := &recordingRouter{}
		s := newTestSession(client, router, nil)

		done := make(chan error, 1)
		go func() {
			_, err := s.Send(context.Background(), "hola")
			done <- err
		}()
		<-entered
		s.Dispose()
		close(release)

		if err := <-done; !errors.Is(err, ErrSessionDisposed) {
			t.Fatalf("expected ErrSessionDisposed, got %v", err)
		}
		if len(s.History()) != 1 {
			t.Fatalf("late reply must be dropped, got %+v", s.History())
		}
		if len(router.replies) != 0 {
			t.Fatalf("late reply must not be routed")
		}
	})
}

func TestConversationSessionSend_CallerCancelWhileQueued(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client := &fakeAssistant{respond: func(_ context.Context, text string) (domain.AssistantReply, error) {
		if text == "uno" {
			close(entered)
			<-release
		}
		return domain.PlainReply{Message: "re:" + text}, nil
	}}
	notifier := &recordingNotifier{}
	s := newTestSession(client, nil, notifier)

	first := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "uno")
		first <- err
	}()
	<-entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Send(ctx, "dos"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	close(release)
	if err := <-first; err != nil {
		t.Fatalf("first send: %v", err)
	}
	if _, err := s.Send(context.Background(), "tres"); err != nil {
		t.Fatalf("queue must keep working after an abandoned turn: %v", err)
	}
	if calls := client.Calls(); len(calls) != 2 || calls[1] != "tres" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	if notifier.Len() != 0 {
		t.Fatalf("caller cancellation must not notify")
	}
}

func TestConversationSession_NotConfigured(t *testing.T) {
	var s *ConversationSession
	if _, err := s.Send(context.Background(), "hola"); !errors.Is(err, ErrSessionNotConfigured) {
		t.Fatalf("expected ErrSessionNotConfigured, got %v", err)
	}
	s = NewConversationSession(nil, nil, nil, nil)
	s.Start(context.Background())
	if _, err := s.Send(context.Background(), "hola"); !errors.Is(err, ErrSessionNotConfigured) {
		t.Fatalf("expected ErrSessionNotConfigured, got %v", err)
	}
}
