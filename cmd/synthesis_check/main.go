package main

import (
	"fmt"
	"os"
	"strings"

	"venue-scout/internal/domain"
	"venue-scout/internal/synthesis"
)

type Scenario struct {
	Name  string
	Venue string
	Check func(series domain.HourlySeries, insights domain.Insights) error
}

func main() {
	names := os.Args[1:]
	if len(names) == 0 {
		names = []string{"Hall", "Café Central", "Grand Ballroom 🎉", ""}
	}

	traffic := synthesis.NewTrafficSynthesizer(synthesis.SeededSource)

	var scenarios []Scenario
	for _, name := range names {
		scenarios = append(scenarios,
			Scenario{Name: "rango y etiquetas", Venue: name, Check: checkShape},
			Scenario{Name: "indicadores de la serie mostrada", Venue: name, Check: checkInsights},
			Scenario{Name: "reproducible", Venue: name, Check: checkReproducible(traffic, name)},
		)
	}

	passed := 0
	for _, sc := range scenarios {
		series := traffic.Synthesize(sc.Venue)
		insights := synthesis.Aggregate(series)
		label := fmt.Sprintf("%q %s", sc.Venue, sc.Name)

		if err := sc.Check(series, insights); err != nil {
			fmt.Printf("FAIL [%s] %v\n", label, err)
			continue
		}
		fmt.Printf("PASS [%s] avg=%d max=%d quiet=%d peaks=%s\n",
			label, insights.AverageTraffic, insights.MaxTraffic, insights.QuietHourCount, strings.Join(insights.PeakHours, ","))
		passed++
	}

	fmt.Printf("Escenarios: %d/%d pasaron\n", passed, len(scenarios))
	if passed != len(scenarios) {
		os.Exit(1)
	}
}
