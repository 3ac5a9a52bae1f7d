package synthesis

import "venue-scout/internal/domain"

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func constSourceFunc(v float64) SourceFunc {
	return func(int) Source { return constSource(v) }
}

func seriesOf(values ...float64) domain.HourlySeries {
	points := make([]domain.HourlyPoint, len(values))
	for i, v := range values {
		points[i] = domain.HourlyPoint{Hour: HourLabel(i), Value: v}
	}
	return domain.HourlySeries{Points: points}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
