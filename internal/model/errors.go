package model

import "fmt"

// APIError é o formato unificado de erro da API.
// Inclui a categoria da causa e a ação sugerida ao chamador.
type APIError struct {
	Code     string // código do erro
	Message  string // mensagem do erro
	Category string // categoria: auth, validation, domain, system
	Action   string // orientação ao chamador
}

// Error implementa a interface error.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Códigos de erro definidos.
const (
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeReportNotFound   = "REPORT_NOT_FOUND"
	ErrCodeCommentNotFound  = "COMMENT_NOT_FOUND"
	ErrCodeEmailInUse       = "EMAIL_IN_USE"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidStatus    = "INVALID_STATUS"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
)

// NewUserNotFoundError cria o erro de usuário não encontrado.
func NewUserNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("Usuário não encontrado: %s", id),
		Category: "domain",
		Action:   "Verifique o identificador informado.",
	}
}

// NewReportNotFoundError cria o erro de denúncia não encontrada.
func NewReportNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeReportNotFound,
		Message:  fmt.Sprintf("Denúncia não encontrada: %s", id),
		Category: "domain",
		Action:   "Verifique o identificador informado.",
	}
}

// NewCommentNotFoundError cria o erro de comentário não encontrado.
func NewCommentNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeCommentNotFound,
		Message:  fmt.Sprintf("Comentário não encontrado: %s", id),
		Category: "domain",
		Action:   "Verifique o identificador informado.",
	}
}

// NewEmailInUseError cria o erro de e-mail já cadastrado.
func NewEmailInUseError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeEmailInUse,
		Message:  fmt.Sprintf("Já existe um usuário com o e-mail %s.", email),
		Category: "domain",
		Action:   "Utilize outro e-mail ou recupere a conta existente.",
	}
}

// NewValidationFailedError cria o erro de validação de domínio a partir
// da primeira regra violada.
func NewValidationFailedError(v *ValidationError) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("Campo inválido (%s): %s.", v.Field, v.Reason),
		Category: "validation",
		Action:   "Corrija o campo indicado e tente novamente.",
	}
}

// NewInvalidStatusError cria o erro de status fora do conjunto aceito.
func NewInvalidStatusError(status string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStatus,
		Message:  fmt.Sprintf("Status inválido: %s", status),
		Category: "validation",
		Action:   "Informe um dos status: pending, review, in progress, resolved, rejected.",
	}
}

// NewInvalidRequestError cria o erro de requisição malformada.
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("Requisição inválida: %s", reason),
		Category: "validation",
		Action:   "Corrija o corpo da requisição e tente novamente.",
	}
}
