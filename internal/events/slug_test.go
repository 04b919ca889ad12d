package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Clase de Spinning":        "clase-de-spinning",
		"  Función   Única  ":      "funcion-unica",
		"Ñandú & Café -- Especial": "nandu-cafe-especial",
		"Rock!!! 2024":             "rock-2024",
		"***":                      "evento",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestNthSlug(t *testing.T) {
	assert.Equal(t, "giros", nthSlug("giros", 0))
	assert.Equal(t, "giros-2", nthSlug("giros", 2))
}
