// Package shortcode genera los códigos cortos legibles que identifican
// items y sistemas en etiquetas físicas (5 caracteres A-Z0-9).
package shortcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	length   = 5
	maxTries = 20
)

// Generate produce un código que la función exists reporta como libre.
// Con 36^5 combinaciones las colisiones son raras; si tras maxTries no se
// encuentra uno libre se devuelve error en lugar de ciclar indefinidamente.
func Generate(exists func(code string) (bool, error)) (string, error) {
	for i := 0; i < maxTries; i++ {
		code, err := random()
		if err != nil {
			return "", err
		}
		taken, err := exists(code)
		if err != nil {
			return "", fmt.Errorf("verificar código: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("no se encontró código libre tras %d intentos", maxTries)
}

func random() (string, error) {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("generar código: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
