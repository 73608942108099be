package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewRespetaNivel(t *testing.T) {
	l := New("production", "debug")
	assert.Equal(t, zerolog.DebugLevel, l.Zerolog().GetLevel())

	// Insensible a mayúsculas
	l = New("production", "ERROR")
	assert.Equal(t, zerolog.ErrorLevel, l.Zerolog().GetLevel())
}

func TestNivelVacioODesconocidoCaeEnInfo(t *testing.T) {
	for _, nivel := range []string{"", "verbose", "warnings"} {
		l := New("production", nivel)
		assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel(), "nivel=%q", nivel)
	}
}
