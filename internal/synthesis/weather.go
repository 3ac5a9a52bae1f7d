package synthesis

import (
	"math"

	"venue-scout/internal/domain"
)

// WeatherForecastSynthesizer expande una observacion puntual en un pronostico horario.
type WeatherForecastSynthesizer struct {
	source SourceFunc
}

func NewWeatherForecastSynthesizer(source SourceFunc) *WeatherForecastSynthesizer {
	if source == nil {
		source = EntropySource
	}
	return &WeatherForecastSynthesizer{source: source}
}

// Synthesize devuelve false si no hay observacion.
func (w *WeatherForecastSynthesizer) Synthesize(seed int, obs *domain.WeatherObservation) (domain.WeatherForecast, bool) {
	if obs == nil {
		return domain.WeatherForecast{}, false
	}
	baseTemp := finite(obs.Temperature)
	baseHumidity := finite(obs.Humidity)
	src := w.source(seed)

	forecast := domain.WeatherForecast{
		Hours:       make([]string, Slots),
		Temperature: make([]float64, Slots),
		Humidity:    make([]float64, Slots),
	}
	for i := 0; i < Slots; i++ {
		curve := math.Sin(math.Pi * float64(i) / Slots)
		forecast.Hours[i] = HourLabel(i)
		forecast.Temperature[i] = baseTemp + 3*curve + uniform(src, -1, 1)
		forecast.Humidity[i] = clamp(baseHumidity-5*curve+uniform(src, -2, 2), 0, 100)
	}
	return forecast, true
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
