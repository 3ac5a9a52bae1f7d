package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"venue-scout/internal/assistant"
	"venue-scout/internal/config"
	"venue-scout/internal/domain"
	"venue-scout/internal/service"
	"venue-scout/internal/synthesis"
)

// printingRouter muestra en consola los lugares de cada respuesta estructurada.
type printingRouter struct {
	decorator *service.VenueDecorator
}

func (r printingRouter) Route(_ context.Context, _ domain.ConversationID, reply domain.VenueReply) error {
	views := r.decorator.DecorateAll(service.VenuesWithReplyContext(reply))
	for i, v := range views {
		fmt.Printf("\n[%d] %s - %s\n", i+1, v.Venue.Name, v.Venue.Address)
		if v.Venue.Capacity != "" {
			fmt.Printf("    Capacidad: %s\n", v.Venue.Capacity)
		}
		fmt.Printf("    %s | Accesibilidad: %s\n", v.RiskLevel, v.Accessibility)
		fmt.Printf("    Trafico promedio %d, maximo %d, horas tranquilas %d\n",
			v.Insights.AverageTraffic, v.Insights.MaxTraffic, v.Insights.QuietHourCount)
		if len(v.Insights.PeakHours) > 0 {
			fmt.Printf("    Horas pico: %s\n", strings.Join(v.Insights.PeakHours, ", "))
		}
		if v.Forecast != nil && len(v.Forecast.Temperature) > 0 {
			fmt.Printf("    Temperatura %s: %.1f\n", v.Forecast.Hours[0], v.Forecast.Temperature[0])
		}
	}
	fmt.Println()
	return nil
}

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	client := assistant.NewHTTPClient(cfg.AssistantBaseURL, cfg.AssistantTimeout, logger)
	router := printingRouter{decorator: service.NewVenueDecorator(synthesis.SourceFor(cfg.SynthDeterministic))}
	notifier := service.NotifierFunc(func(_ context.Context, n domain.Notification) {
		fmt.Printf("!! %s\n", n.Description)
	})

	session := service.NewConversationSession(client, router, notifier, logger)
	defer session.Dispose()

	fmt.Println("===== Venue Scout =====")
	fmt.Println("Escribe 'exit' o 'salir' para terminar.")

	session.Start(ctx)
	if history := session.History(); len(history) > 0 {
		fmt.Printf("Asistente: %s\n", history[len(history)-1].Content)
	}

	for {
		fmt.Print("Tu: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "salir") {
			return
		}

		reply, err := session.Send(ctx, line)
		if err != nil {
			if !errors.Is(err, service.ErrEmptyMessage) {
				logger.Debug("send failed", zap.Error(err))
			}
			continue
		}
		fmt.Printf("Asistente: %s\n", reply.Text())
	}
}
