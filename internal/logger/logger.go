// Package logger configura a saída de log estruturado da aplicação.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup cria um slog.Logger com saída JSON estruturada no writer
// informado.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault configura a saída JSON estruturada como logger global.
// Quando w é nil, usa os.Stdout (esperado em produção).
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	slog.SetDefault(Setup(w))
}
