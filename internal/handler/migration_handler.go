package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cidade-integra/cidade-integra-backend/internal/migration"
)

// MigrationServiceInterface é a interface de serviço exigida pelo
// handler de migração.
type MigrationServiceInterface interface {
	Run(ctx context.Context) (*migration.Outcome, error)
}

// MigrationHandler é o handler HTTP do gatilho administrativo de
// migração.
type MigrationHandler struct {
	service MigrationServiceInterface
}

// NewMigrationHandler cria um MigrationHandler.
func NewMigrationHandler(service MigrationServiceInterface) *MigrationHandler {
	return &MigrationHandler{
		service: service,
	}
}

// migrationResponse é a resposta do gatilho de migração.
type migrationResponse struct {
	Message string `json:"message"`
}

// Run executa a migração de forma síncrona e retorna o resumo.
// POST /api/migration/run
func (h *MigrationHandler) Run(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.Run(r.Context())
	if err != nil {
		slog.Error("migration run failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, migrationResponse{
			Message: "Erro durante o processo de migração.",
		})
		return
	}

	writeJSON(w, http.StatusOK, migrationResponse{
		Message: outcome.Summary(),
	})
}
