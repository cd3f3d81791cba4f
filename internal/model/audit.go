package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Níveis aceitos em registros de auditoria.
const (
	AuditLevelInfo    = "Information"
	AuditLevelWarning = "Warning"
	AuditLevelError   = "Error"
)

// AuditLog é um registro da trilha de auditoria persistida no banco
// relacional. Detail carrega o texto do erro quando houver.
type AuditLog struct {
	ID        string
	Level     string
	Message   string
	Detail    string
	CreatedAt time.Time
}

// Validate verifica as invariantes do registro de auditoria.
func (l *AuditLog) Validate() *ValidationError {
	if strings.TrimSpace(l.Level) == "" {
		return &ValidationError{Field: "level", Reason: "é obrigatório"}
	}
	if utf8.RuneCountInString(l.Level) > 50 {
		return &ValidationError{Field: "level", Reason: "deve ter no máximo 50 caracteres"}
	}
	if strings.TrimSpace(l.Message) == "" {
		return &ValidationError{Field: "message", Reason: "é obrigatória"}
	}
	if utf8.RuneCountInString(l.Message) > 2000 {
		return &ValidationError{Field: "message", Reason: "deve ter no máximo 2000 caracteres"}
	}
	return nil
}
