package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cidade-integra/cidade-integra-backend/internal/middleware"
	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

// writeJSON escreve uma resposta JSON com o status informado.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeInvalidBody escreve a resposta de corpo de requisição
// malformado.
func writeInvalidBody(w http.ResponseWriter) {
	middleware.WriteErrorResponse(w, http.StatusBadRequest,
		model.NewInvalidRequestError("corpo da requisição malformado"))
}

// handleServiceError converte um erro da camada de serviço no status
// HTTP adequado, usando o formato unificado de resposta de erro.
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus mapeia o código do APIError para o status
// HTTP.
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeUserNotFound,
		model.ErrCodeReportNotFound,
		model.ErrCodeCommentNotFound:
		return http.StatusNotFound
	case model.ErrCodeEmailInUse:
		return http.StatusConflict
	case model.ErrCodeValidationFailed,
		model.ErrCodeInvalidStatus,
		model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
