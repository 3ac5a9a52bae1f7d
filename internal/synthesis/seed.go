package synthesis

import "unicode/utf16"

// SeedHash suma las unidades UTF-16 del nombre.
// El nombre vacio produce 0.
func SeedHash(name string) int {
	seed := 0
	for _, unit := range utf16.Encode([]rune(name)) {
		seed += int(unit)
	}
	return seed
}
