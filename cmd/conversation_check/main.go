package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"venue-scout/internal/assistant"
	"venue-scout/internal/config"
	"venue-scout/internal/service"
	"venue-scout/internal/synthesis"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

func main() {
	offline := flag.Bool("offline", false, "usar el asistente guionado en lugar del servicio real")
	flag.Parse()

	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	var client assistant.Client = assistant.NewHTTPClient(cfg.AssistantBaseURL, cfg.AssistantTimeout, logger)
	if *offline {
		client = newScriptedAssistant()
	}
	decorator := service.NewVenueDecorator(synthesis.SourceFor(true))

	scenarios := []Scenario{
		{
			Name:         "Boda completa",
			Answers:      []string{"wedding", "Austin", "12/06/2026", "18:30", "$5000", "150 people"},
			ExpectVenues: true,
		},
		{
			Name:         "Conferencia con respuesta invalida",
			Answers:      []string{"conference", "Denver", "03/09/2026", "9:00", "lots", "8000", "300"},
			ExpectVenues: true,
		},
		{
			Name:         "Cuestionario incompleto",
			Answers:      []string{"birthday party", "Miami"},
			ExpectVenues: false,
		},
	}

	passed := 0
	for _, sc := range scenarios {
		fmt.Printf("%s=== Ejecutando: %s ===%s\n", colorCyan, sc.Name, colorReset)

		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		tr := runScenario(runCtx, client, sc)
		cancel()

		for _, m := range tr.history {
			fmt.Printf("  [%d %s] %s\n", m.Seq, m.Role, m.Content)
		}
		for _, reply := range tr.routed {
			for _, view := range decorator.DecorateAll(service.VenuesWithReplyContext(reply)) {
				fmt.Printf("  -> %s | avg %d max %d | %s\n", view.Venue.Name, view.Insights.AverageTraffic, view.Insights.MaxTraffic, view.RiskLevel)
			}
		}

		problems := evaluateTranscript(sc, tr)
		if len(problems) == 0 {
			fmt.Printf("%sPASS [%s]%s\n\n", colorGreen, sc.Name, colorReset)
			passed++
			continue
		}
		fmt.Printf("%sFAIL [%s]%s %v\n\n", colorRed, sc.Name, colorReset, problems)
	}

	fmt.Printf("Escenarios: %d/%d pasaron\n", passed, len(scenarios))
	if passed != len(scenarios) {
		os.Exit(1)
	}
}
