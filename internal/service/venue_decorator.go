package service

import (
	"fmt"

	"venue-scout/internal/domain"
	"venue-scout/internal/synthesis"
)

const accessibilityGoodThreshold = 80

// VenueDecorator arma la vista de un lugar con trafico, pronostico e indicadores.
type VenueDecorator struct {
	traffic *synthesis.TrafficSynthesizer
	weather *synthesis.WeatherForecastSynthesizer
}

func NewVenueDecorator(source synthesis.SourceFunc) *VenueDecorator {
	return &VenueDecorator{
		traffic: synthesis.NewTrafficSynthesizer(source),
		weather: synthesis.NewWeatherForecastSynthesizer(source),
	}
}

// Decorate es un paso de vista: no modifica ni persiste el lugar.
// Los indicadores salen de la misma serie que se muestra.
func (d *VenueDecorator) Decorate(v domain.Venue) domain.VenueView {
	series, insights := d.Insights(v.Name)
	view := domain.VenueView{
		Venue:         v,
		Traffic:       series,
		Insights:      insights,
		RiskLevel:     riskLevel(v.Safety),
		Accessibility: accessibilityBadge(v.AccessibilityScore),
	}
	if forecast, ok := d.weather.Synthesize(synthesis.SeedHash(v.Name), v.Weather); ok {
		view.Forecast = &forecast
	}
	return view
}

func (d *VenueDecorator) DecorateAll(venues []domain.Venue) []domain.VenueView {
	out := make([]domain.VenueView, 0, len(venues))
	for _, v := range venues {
		out = append(out, d.Decorate(v))
	}
	return out
}

func (d *VenueDecorator) Insights(venueName string) (domain.HourlySeries, domain.Insights) {
	series := d.traffic.Synthesize(venueName)
	return series, synthesis.Aggregate(series)
}

func riskLevel(safety *domain.SafetyAssessment) string {
	if safety == nil || safety.Hostility == "" {
		return "Safety data not available"
	}
	return fmt.Sprintf("%s Risk Level", safety.Hostility)
}

func accessibilityBadge(score *float64) string {
	switch {
	case score == nil:
		return "unknown"
	case *score >= accessibilityGoodThreshold:
		return "good"
	default:
		return "poor"
	}
}
