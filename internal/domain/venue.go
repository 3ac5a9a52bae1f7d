package domain

import "time"

type HostilityLevel string

const (
	HostilityLow    HostilityLevel = "Low"
	HostilityMedium HostilityLevel = "Medium"
	HostilityHigh   HostilityLevel = "High"
)

// WeatherObservation es una lectura puntual del clima del lugar.
type WeatherObservation struct {
	Temperature              float64 `json:"Temperature"`
	Humidity                 float64 `json:"Humidity"`
	WindSpeed                float64 `json:"WindSpeed"`
	PrecipitationProbability float64 `json:"PrecipitationProbability"`
}

type SafetyAssessment struct {
	Hostility HostilityLevel `json:"Hostility"`
}

// Venue es un lugar recomendado por el servicio asistente. Se trata como inmutable.
type Venue struct {
	ID                 string              `json:"id,omitempty"`
	Name               string              `json:"name"`
	Address            string              `json:"address"`
	Capacity           string              `json:"capacity"`
	Features           []string            `json:"features"`
	Source             string              `json:"source"`
	AccessibilityScore *float64            `json:"accessibility_score,omitempty"`
	Weather            *WeatherObservation `json:"weather_data,omitempty"`
	Safety             *SafetyAssessment   `json:"safety_data,omitempty"`
	Date               string              `json:"date,omitempty"`
	EventType          string              `json:"event_type,omitempty"`
	State              string              `json:"state,omitempty"`
	Time               string              `json:"time,omitempty"`
	Budget             string              `json:"budget,omitempty"`
	Attendees          string              `json:"attendees,omitempty"`
	SavedAt            *time.Time          `json:"saved_at,omitempty"`
}
