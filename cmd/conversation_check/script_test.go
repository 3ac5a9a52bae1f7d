package main

import (
	"context"
	"strings"
	"testing"

	"venue-scout/internal/assistant"
	"venue-scout/internal/domain"
)

func TestRunScenario_ScriptedPlannerReturnsVenues(t *testing.T) {
	sc := Scenario{
		Name:         "Boda",
		Answers:      []string{"wedding", "Austin", "12/06/2026", "18:30", "$5000", "150 people"},
		ExpectVenues: true,
	}
	tr := runScenario(context.Background(), newScriptedAssistant(), sc)

	if problems := evaluateTranscript(sc, tr); len(problems) != 0 {
		t.Fatalf("expected pass, got %v", problems)
	}
	if len(tr.history) != 1+2*len(sc.Answers) {
		t.Fatalf("expected greeting plus one reply per answer, got %d messages", len(tr.history))
	}
	venues := tr.routed[0].Venues
	if venues[0].Capacity != "150" || venues[0].Budget != "5000" {
		t.Fatalf("expected numeric answers normalized, got %+v", venues[0])
	}
}

func TestScriptedAssistant_RepeatsQuestionOnInvalidNumber(t *testing.T) {
	a := newScriptedAssistant()
	ctx := context.Background()
	id := domain.ConversationID("c1")

	steps := []string{"start", "gala", "Austin", "12/06/2026", "18:30"}
	for _, s := range steps {
		if _, err := a.SendMessage(ctx, id, s); err != nil {
			t.Fatalf("send %q: %v", s, err)
		}
	}
	reply, _ := a.SendMessage(ctx, id, "lots")
	if !strings.Contains(reply.Text(), "What's your budget for the venue?") {
		t.Fatalf("expected budget question repeated, got %q", reply.Text())
	}
}

func TestScriptedAssistant_RequiresStart(t *testing.T) {
	reply, _ := newScriptedAssistant().SendMessage(context.Background(), "c1", "wedding")
	if !strings.Contains(reply.Text(), "type 'start'") {
		t.Fatalf("expected start hint, got %q", reply.Text())
	}
}

func TestEvaluateTranscript_DetectsProblems(t *testing.T) {
	sc := Scenario{Name: "Falla", Answers: []string{"wedding"}, ExpectVenues: true}
	tr := runScenario(context.Background(), &assistant.MockClient{Err: assistant.ErrTransportFailure}, sc)

	problems := strings.Join(evaluateTranscript(sc, tr), "; ")
	for _, want := range []string{"missing greeting", "unanswered", "transport failures", "expected venue results"} {
		if !strings.Contains(problems, want) {
			t.Fatalf("expected %q in %q", want, problems)
		}
	}
}
