package main

import (
	"fmt"
	"math"
	"slices"

	"venue-scout/internal/domain"
	"venue-scout/internal/synthesis"
)

func checkShape(series domain.HourlySeries, _ domain.Insights) error {
	if len(series.Points) != synthesis.Slots {
		return fmt.Errorf("expected %d points, got %d", synthesis.Slots, len(series.Points))
	}
	for i, p := range series.Points {
		if p.Hour != synthesis.HourLabel(i) {
			return fmt.Errorf("slot %d labeled %q", i, p.Hour)
		}
		if p.Value < 20 || p.Value > 90 || p.Value != math.Floor(p.Value) {
			return fmt.Errorf("slot %d value %v out of range", i, p.Value)
		}
	}
	return nil
}

func checkInsights(series domain.HourlySeries, insights domain.Insights) error {
	values := series.Values()
	top := slices.Max(values)
	if float64(insights.MaxTraffic) != top {
		return fmt.Errorf("max traffic %d, series max %v", insights.MaxTraffic, top)
	}
	quiet := 0
	for _, v := range values {
		if v < 30 {
			quiet++
		}
	}
	if quiet != insights.QuietHourCount {
		return fmt.Errorf("quiet hours %d, counted %d", insights.QuietHourCount, quiet)
	}
	for _, h := range insights.PeakHours {
		if !slices.Contains(series.Hours(), h) {
			return fmt.Errorf("peak hour %q not in series", h)
		}
	}
	return nil
}

func checkReproducible(traffic *synthesis.TrafficSynthesizer, name string) func(domain.HourlySeries, domain.Insights) error {
	return func(series domain.HourlySeries, _ domain.Insights) error {
		again := traffic.Synthesize(name)
		if !slices.Equal(series.Values(), again.Values()) {
			return fmt.Errorf("seeded series differ between runs")
		}
		return nil
	}
}
