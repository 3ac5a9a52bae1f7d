package main

import (
	"context"
	"fmt"

	"venue-scout/internal/assistant"
	"venue-scout/internal/domain"
	"venue-scout/internal/service"
)

type Scenario struct {
	Name         string
	Answers      []string
	ExpectVenues bool
}

type transcript struct {
	history []domain.Message
	routed  []domain.VenueReply
	failed  int
}

type collectingRouter struct {
	replies []domain.VenueReply
}

func (r *collectingRouter) Route(_ context.Context, _ domain.ConversationID, reply domain.VenueReply) error {
	r.replies = append(r.replies, reply)
	return nil
}

// runScenario abre una sesion, envia las respuestas en orden y devuelve lo observado.
func runScenario(ctx context.Context, client assistant.Client, sc Scenario) transcript {
	router := &collectingRouter{}
	failures := 0
	notifier := service.NotifierFunc(func(context.Context, domain.Notification) { failures++ })

	session := service.NewConversationSession(client, router, notifier, nil)
	defer session.Dispose()

	session.Start(ctx)
	for _, answer := range sc.Answers {
		_, _ = session.Send(ctx, answer)
	}
	return transcript{history: session.History(), routed: router.replies, failed: failures}
}

// evaluateTranscript lista los problemas encontrados; vacio significa PASS.
func evaluateTranscript(sc Scenario, tr transcript) []string {
	var problems []string
	answered := countRole(tr.history, domain.RoleAssistant)
	if len(tr.history) == 0 || tr.history[0].Role != domain.RoleAssistant {
		problems = append(problems, "missing greeting")
	} else {
		answered--
	}
	for i, m := range tr.history {
		if m.Seq != i+1 {
			problems = append(problems, fmt.Sprintf("message %d has seq %d", i+1, m.Seq))
			break
		}
	}
	if answered < len(sc.Answers) {
		problems = append(problems, fmt.Sprintf("%d of %d answers unanswered", len(sc.Answers)-answered, len(sc.Answers)))
	}
	if tr.failed > 0 {
		problems = append(problems, fmt.Sprintf("%d transport failures", tr.failed))
	}
	switch {
	case sc.ExpectVenues && len(tr.routed) == 0:
		problems = append(problems, "expected venue results")
	case !sc.ExpectVenues && len(tr.routed) > 0:
		problems = append(problems, "unexpected venue results")
	}
	for _, reply := range tr.routed {
		for _, v := range reply.Venues {
			if v.Name == "" {
				problems = append(problems, "venue without name")
			}
		}
	}
	return problems
}

func countRole(history []domain.Message, role domain.Role) int {
	n := 0
	for _, m := range history {
		if m.Role == role {
			n++
		}
	}
	return n
}
