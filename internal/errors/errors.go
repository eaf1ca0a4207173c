package errors

import (
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoSeller.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "LIMIT_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
// Bloqueia a operação; o estado local permanece intacto para correção.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// LimitError representa violações de limite ou duplicidade (e.g., máximo de
// imagens atingido, URL repetida). Não é fatal: a operação é rejeitada e o
// estado permanece inalterado.
type LimitError struct {
	Msg string
}

func (e *LimitError) Error() string    { return fmt.Sprintf("Limite excedido: %s", e.Msg) }
func (e *LimitError) Category() string { return "LIMIT_ERROR" }
func (e *LimitError) HTTPStatus() int  { return http.StatusUnprocessableEntity } // 422
func (e *LimitError) Unwrap() error    { return nil }

// NewLimitError cria um novo erro de limite/duplicidade.
func NewLimitError(msg string) AppError {
	return &LimitError{Msg: msg}
}

// DecodeError representa falhas de decodificação/parsing (imagem inválida,
// lista malformada do servidor). A operação é abortada e o estado anterior
// é preservado.
type DecodeError struct {
	Msg string
	Err error
}

func (e *DecodeError) Error() string    { return fmt.Sprintf("Erro de Decodificação: %s", e.Msg) }
func (e *DecodeError) Category() string { return "DECODE_ERROR" }
func (e *DecodeError) HTTPStatus() int  { return http.StatusUnprocessableEntity } // 422
func (e *DecodeError) Unwrap() error    { return e.Err }

// NewDecodeError cria um novo erro de decodificação.
func NewDecodeError(msg string, err error) AppError {
	return &DecodeError{Msg: msg, Err: err}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio
// (e.g., variante já em edição, envio já em andamento).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa falha de autenticação/autorização.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autorização.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// GatewayError representa falhas de rede ou do backend do marketplace.
// IsValidation distingue respostas estruturadas de validação (array
// {path, message} consolidado por campo) de falhas genéricas.
// Em ambos os casos o rascunho local permanece intacto para nova tentativa.
type GatewayError struct {
	Msg          string
	Status       int
	IsValidation bool
	Err          error
}

func (e *GatewayError) Error() string { return fmt.Sprintf("Erro do Gateway: %s", e.Msg) }
func (e *GatewayError) Category() string {
	if e.IsValidation {
		return "GATEWAY_VALIDATION_ERROR"
	}
	return "GATEWAY_ERROR"
}
func (e *GatewayError) HTTPStatus() int {
	if e.IsValidation {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway // 502
}
func (e *GatewayError) Unwrap() error { return e.Err }

// NewGatewayError cria um erro de falha genérica de rede/backend.
func NewGatewayError(msg string, status int, err error) AppError {
	return &GatewayError{Msg: msg, Status: status, Err: err}
}

// NewGatewayValidationError cria um erro a partir de uma resposta estruturada
// de validação do backend, já consolidada por campo.
func NewGatewayValidationError(msg string, status int) AppError {
	return &GatewayError{Msg: msg, Status: status, IsValidation: true}
}

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(AppError); ok {
		// O erro é tipado (ValidationError, LimitError, GatewayError, etc.)
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado (e.g., erro simples de pacote Go que não implementa AppError)
	// Tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
