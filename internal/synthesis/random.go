package synthesis

import (
	"math/rand/v2"
	"time"
)

// Source entrega flotantes uniformes en [0,1).
type Source interface {
	Float64() float64
}

// SourceFunc construye la fuente aleatoria de una llamada a partir de la semilla del lugar.
type SourceFunc func(seed int) Source

const pcgStream = 0x9e3779b97f4a7c15

// SeededSource devuelve siempre la misma secuencia para la misma semilla.
func SeededSource(seed int) Source {
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}

// EntropySource mezcla la semilla con el reloj: cada llamada produce valores distintos.
func EntropySource(seed int) Source {
	return rand.New(rand.NewPCG(uint64(seed), uint64(time.Now().UnixNano())))
}

// SourceFor elige la fuente segun el modo configurado.
func SourceFor(deterministic bool) SourceFunc {
	if deterministic {
		return SeededSource
	}
	return EntropySource
}

func uniform(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}
