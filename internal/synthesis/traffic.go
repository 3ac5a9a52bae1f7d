package synthesis

import (
	"math"

	"venue-scout/internal/domain"
)

const (
	minTraffic = 20
	maxTraffic = 90
	noiseSpan  = 10
)

// TrafficSynthesizer genera la serie horaria de visitantes de un lugar.
type TrafficSynthesizer struct {
	source SourceFunc
}

func NewTrafficSynthesizer(source SourceFunc) *TrafficSynthesizer {
	if source == nil {
		source = EntropySource
	}
	return &TrafficSynthesizer{source: source}
}

// Synthesize produce 15 valores enteros en [20,90]. El ruido sale de la fuente inyectada;
// la parte de bandas y seno depende solo del nombre.
func (t *TrafficSynthesizer) Synthesize(venueName string) domain.HourlySeries {
	seed := SeedHash(venueName)
	src := t.source(seed)

	points := make([]domain.HourlyPoint, Slots)
	for i := range points {
		raw := backbone(seed, i) + src.Float64()*noiseSpan
		points[i] = domain.HourlyPoint{
			Hour:  HourLabel(i),
			Value: math.Floor(clamp(raw, minTraffic, maxTraffic)),
		}
	}
	return domain.HourlySeries{Points: points}
}

// Backbone devuelve el componente reproducible de la serie (sin ruido ni recorte).
func Backbone(venueName string) []float64 {
	seed := SeedHash(venueName)
	out := make([]float64, Slots)
	for i := range out {
		out[i] = backbone(seed, i)
	}
	return out
}

func backbone(seed, i int) float64 {
	base := (seed + i) % 20
	return float64(base+Band(i, seed)) + 5*math.Sin(float64(seed+i))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
