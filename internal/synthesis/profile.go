package synthesis

import "fmt"

const (
	// Slots es la cantidad de horas de cada serie (9:00 a 23:00).
	Slots     = 15
	FirstHour = 9
)

// HourLabel devuelve la etiqueta "H:00" del indice i.
func HourLabel(i int) string {
	return fmt.Sprintf("%d:00", FirstHour+i)
}

// Band devuelve el peso de congestion para el indice crudo de la serie.
// Las bandas se evaluan sobre el indice, no sobre la hora del reloj: con 15 posiciones
// la banda 16..19 nunca se alcanza.
func Band(index, seed int) int {
	switch {
	case index >= 7 && index <= 9:
		return 30
	case index >= 11 && index <= 14:
		return 40
	case index >= 16 && index <= 19:
		return 35
	case index >= 22 || index <= 2:
		if seed%2 == 0 {
			return 25
		}
		return 5
	default:
		return 15
	}
}
