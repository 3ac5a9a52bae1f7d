package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"venue-scout/internal/domain"
)

const venuesType = "venues"

// DecodeReply clasifica el payload del asistente una sola vez.
// Es VenueReply si trae type "venues" o un campo venues no nulo; si no, PlainReply.
// Los campos opcionales ausentes o con tipo inesperado se tratan como no provistos.
// Solo los bytes que no son JSON producen ErrMalformedReply.
func DecodeReply(body []byte) (domain.AssistantReply, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedReply)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		// JSON valido que no es un objeto: respuesta sin contenido.
		return domain.PlainReply{}, nil
	}

	text := stringField(fields, "message")
	if !isVenueReply(fields) {
		return domain.PlainReply{Message: text}, nil
	}

	reply := domain.VenueReply{
		Message:       text,
		Venues:        decodeVenues(fields["venues"]),
		Weather:       decodeOptional[domain.WeatherObservation](fields["weather"]),
		Safety:        decodeOptional[domain.SafetyAssessment](fields["safety"]),
		Accessibility: numberField(fields, "accessibility"),
	}
	traffic := domain.TrafficSummary{}
	if data := decodeOptional[map[string]domain.OriginTimes](fields["traffic_data"]); data != nil {
		traffic.Data = *data
	}
	if avg := decodeOptional[map[string]domain.AverageCommute](fields["average_times"]); avg != nil {
		traffic.AverageTimes = *avg
	}
	if traffic.Data != nil || traffic.AverageTimes != nil {
		reply.Traffic = &traffic
	}
	return reply, nil
}

func isVenueReply(fields map[string]json.RawMessage) bool {
	if strings.EqualFold(stringField(fields, "type"), venuesType) {
		return true
	}
	return present(fields["venues"])
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// decodeVenues acepta un arreglo; los elementos que no son objetos se descartan.
func decodeVenues(raw json.RawMessage) []domain.Venue {
	venues := []domain.Venue{}
	if !present(raw) {
		return venues
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return venues
	}
	for _, item := range items {
		if v, ok := decodeVenue(item); ok {
			venues = append(venues, v)
		}
	}
	return venues
}

func decodeVenue(raw json.RawMessage) (domain.Venue, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return domain.Venue{}, false
	}
	v := domain.Venue{
		ID:                 stringField(fields, "id"),
		Name:               stringField(fields, "name"),
		Address:            stringField(fields, "address"),
		Capacity:           stringField(fields, "capacity"),
		Features:           stringsField(fields, "features"),
		Source:             stringField(fields, "source"),
		AccessibilityScore: numberField(fields, "accessibility_score"),
		Weather:            decodeOptional[domain.WeatherObservation](fields["weather_data"]),
		Safety:             decodeOptional[domain.SafetyAssessment](fields["safety_data"]),
		Date:               stringField(fields, "date"),
		EventType:          stringField(fields, "event_type"),
		State:              stringField(fields, "state"),
		Time:               stringField(fields, "time"),
		Budget:             stringField(fields, "budget"),
		Attendees:          stringField(fields, "attendees"),
	}
	return v, true
}

func decodeOptional[T any](raw json.RawMessage) *T {
	if !present(raw) {
		return nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return &out
}

// stringField acepta texto o numero (p.ej. capacity: 200).
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok || !present(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func stringsField(fields map[string]json.RawMessage, key string) []string {
	out := []string{}
	raw, ok := fields[key]
	if !ok || !present(raw) {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func numberField(fields map[string]json.RawMessage, key string) *float64 {
	raw, ok := fields[key]
	if !ok || !present(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64); err == nil {
			return &parsed
		}
	}
	return nil
}
