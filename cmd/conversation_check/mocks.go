package main

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"venue-scout/internal/domain"
)

var plannerQuestions = []struct {
	key     string
	prompt  string
	numeric bool
}{
	{key: "event_type", prompt: "What type of event are you planning?"},
	{key: "location", prompt: "Where would you like to hold the event?"},
	{key: "date", prompt: "What date would you like to hold the event?"},
	{key: "time", prompt: "What time would you like the event to start?"},
	{key: "budget", prompt: "What's your budget for the venue?", numeric: true},
	{key: "attendees", prompt: "How many people will be attending?", numeric: true},
}

// scriptedAssistant reproduce sin red el cuestionario del asistente de planificacion.
type scriptedAssistant struct {
	mu      sync.Mutex
	step    map[domain.ConversationID]int
	answers map[domain.ConversationID]map[string]string
}

func newScriptedAssistant() *scriptedAssistant {
	return &scriptedAssistant{
		step:    make(map[domain.ConversationID]int),
		answers: make(map[domain.ConversationID]map[string]string),
	}
}

func (a *scriptedAssistant) SendMessage(_ context.Context, id domain.ConversationID, text string) (domain.AssistantReply, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if strings.EqualFold(text, "start") {
		a.step[id] = 0
		a.answers[id] = make(map[string]string)
		return domain.PlainReply{Message: plannerQuestions[0].prompt}, nil
	}
	step, ok := a.step[id]
	if !ok {
		return domain.PlainReply{Message: "Please type 'start' to begin planning your event."}, nil
	}

	q := plannerQuestions[step]
	answer := strings.TrimSpace(text)
	if q.numeric {
		answer = strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return r
			}
			return -1
		}, answer)
	}
	if len(answer) < 1 || (!q.numeric && len(answer) < 2) {
		return domain.PlainReply{Message: "I need an answer to proceed. " + q.prompt}, nil
	}
	a.answers[id][q.key] = answer

	step++
	if step < len(plannerQuestions) {
		a.step[id] = step
		return domain.PlainReply{Message: plannerQuestions[step].prompt}, nil
	}

	data := a.answers[id]
	delete(a.step, id)
	delete(a.answers, id)
	return domain.VenueReply{
		Message: "Great! I've found some venues that match your criteria.",
		Venues: []domain.Venue{
			{Name: "Harbor Hall", Address: "1 Pier Rd, " + data["location"], Capacity: data["attendees"], EventType: data["event_type"], Budget: data["budget"]},
			{Name: "Garden Loft", Address: "22 Elm St, " + data["location"], Capacity: data["attendees"], EventType: data["event_type"], Budget: data["budget"]},
		},
		Weather: &domain.WeatherObservation{Temperature: 22, Humidity: 55, WindSpeed: 3},
		Safety:  &domain.SafetyAssessment{Hostility: domain.HostilityLow},
	}, nil
}
