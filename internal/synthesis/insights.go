package synthesis

import (
	"math"

	"venue-scout/internal/domain"
)

const (
	peakThreshold  = 70
	quietThreshold = 30
)

// Aggregate resume una serie de trafico. Es una funcion pura de la serie.
func Aggregate(series domain.HourlySeries) domain.Insights {
	out := domain.Insights{PeakHours: []string{}}
	if len(series.Points) == 0 {
		return out
	}

	var sum, top float64
	for _, p := range series.Points {
		v := p.Value
		if v > peakThreshold {
			out.PeakHours = append(out.PeakHours, p.Hour)
		}
		if v < quietThreshold {
			out.QuietHourCount++
		}
		v = nonNegative(v)
		sum += v
		if v > top {
			top = v
		}
	}

	out.AverageTraffic = int(math.Round(sum / float64(len(series.Points))))
	out.MaxTraffic = int(math.Round(top))
	out.ResourceSavings = SavingsFor(out.QuietHourCount)
	return out
}

// SavingsFor estima el ahorro de recursos a partir de las horas tranquilas.
func SavingsFor(quietHours int) domain.ResourceSavings {
	q := float64(quietHours)
	if q < 0 {
		q = 0
	}
	return domain.ResourceSavings{
		EnergyKWh:    int(math.Round(q * 25)),
		StaffHours:   int(math.Round(q * 1.5)),
		WaterGallons: int(math.Round(q * 50)),
		EmissionsKg:  int(math.Round(q * 1.8)),
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
