package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Status possíveis de uma denúncia. O vocabulário segue o aplicativo
// de origem e é armazenado em minúsculas.
const (
	ReportStatusPending    = "pending"
	ReportStatusReview     = "review"
	ReportStatusInProgress = "in progress"
	ReportStatusResolved   = "resolved"
	ReportStatusRejected   = "rejected"
)

// validReportStatuses é o conjunto fechado de status aceitos.
var validReportStatuses = map[string]struct{}{
	ReportStatusPending:    {},
	ReportStatusReview:     {},
	ReportStatusInProgress: {},
	ReportStatusResolved:   {},
	ReportStatusRejected:   {},
}

// IsValidReportStatus informa se o status (após normalização) pertence
// ao conjunto aceito.
func IsValidReportStatus(status string) bool {
	_, ok := validReportStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// Report representa uma denúncia de um cidadão.
// UserID referencia o autor; ResolvedAt só é preenchido quando a
// denúncia é resolvida e nunca pode anteceder CreatedAt.
type Report struct {
	ID          string
	ExternalID  string
	UserID      string
	Category    string
	Title       string
	Description string
	IsAnonymous bool
	Status      string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
	Location    *ReportLocation
}

// ReportLocation é o endereço da denúncia, propriedade 1:1 do report.
// Latitude e longitude são armazenadas como decimal(9,6).
type ReportLocation struct {
	ID         string
	ReportID   string
	Address    string
	PostalCode string
	Latitude   float64
	Longitude  float64
}

// Validate verifica as invariantes de domínio da denúncia.
func (r *Report) Validate() *ValidationError {
	if strings.TrimSpace(r.UserID) == "" {
		return &ValidationError{Field: "userId", Reason: "é obrigatório"}
	}
	if strings.TrimSpace(r.Category) == "" {
		return &ValidationError{Field: "category", Reason: "é obrigatória"}
	}
	if utf8.RuneCountInString(r.Category) > 50 {
		return &ValidationError{Field: "category", Reason: "deve ter no máximo 50 caracteres"}
	}
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "é obrigatório"}
	}
	if utf8.RuneCountInString(r.Title) > 120 {
		return &ValidationError{Field: "title", Reason: "deve ter no máximo 120 caracteres"}
	}
	if strings.TrimSpace(r.Description) == "" {
		return &ValidationError{Field: "description", Reason: "é obrigatória"}
	}
	if utf8.RuneCountInString(r.Description) > 2000 {
		return &ValidationError{Field: "description", Reason: "deve ter no máximo 2000 caracteres"}
	}
	if !IsValidReportStatus(r.Status) {
		return &ValidationError{Field: "status", Reason: "valor fora do conjunto aceito"}
	}
	if utf8.RuneCountInString(r.ImageURL) > 500 {
		return &ValidationError{Field: "imageUrl", Reason: "deve ter no máximo 500 caracteres"}
	}
	if r.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Reason: "é obrigatório"}
	}
	if r.ResolvedAt != nil && r.ResolvedAt.Before(r.CreatedAt) {
		return &ValidationError{Field: "resolvedAt", Reason: "não pode anteceder a data de criação"}
	}
	if r.Location != nil {
		if err := r.Location.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate verifica os limites do endereço da denúncia.
func (l *ReportLocation) Validate() *ValidationError {
	if utf8.RuneCountInString(l.Address) > 255 {
		return &ValidationError{Field: "location.address", Reason: "deve ter no máximo 255 caracteres"}
	}
	if utf8.RuneCountInString(l.PostalCode) > 20 {
		return &ValidationError{Field: "location.postalCode", Reason: "deve ter no máximo 20 caracteres"}
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return &ValidationError{Field: "location.latitude", Reason: "fora do intervalo [-90, 90]"}
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return &ValidationError{Field: "location.longitude", Reason: "fora do intervalo [-180, 180]"}
	}
	return nil
}
