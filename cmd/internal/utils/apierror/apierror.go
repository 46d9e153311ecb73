package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what every service hands back to the routes on failure.
// The value itself is the JSON body; Code is the HTTP status.
type ErrorResponse interface {
	error
	Code() int
}

type SimpleError struct {
	Status int    `json:"-"`
	Detail string `json:"detail"`
}

func (e *SimpleError) Error() string { return e.Detail }
func (e *SimpleError) Code() int     { return e.Status }

func NewSimple(status int, detail string) *SimpleError {
	return &SimpleError{Status: status, Detail: detail}
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

type ValidationError struct {
	Detail string        `json:"detail"`
	Fields []*FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("%s: %s", e.Detail, strings.Join(names, ", "))
}

func (e *ValidationError) Code() int { return http.StatusUnprocessableEntity }

var (
	InternalServerError  = NewSimple(http.StatusInternalServerError, "Erro interno do servidor")
	MalformedBodyError   = NewSimple(http.StatusBadRequest, "Corpo da requisição inválido")
	NotFoundError        = NewSimple(http.StatusNotFound, "Recurso não encontrado")
	TooManyRequestsError = NewSimple(http.StatusTooManyRequests, "Muitas requisições, tente novamente mais tarde")

	// Auth
	MissingAuthTokenError    = NewSimple(http.StatusUnauthorized, "Não autenticado")
	InvalidAuthTokenError    = NewSimple(http.StatusUnauthorized, "Token inválido")
	ExpiredAuthTokenError    = NewSimple(http.StatusUnauthorized, "Token expirado")
	UserNotFoundError        = NewSimple(http.StatusUnauthorized, "Usuário não encontrado")
	CredentialsMismatchError = NewSimple(http.StatusUnauthorized, "Email ou senha incorretos")
	ForbiddenError           = NewSimple(http.StatusForbidden, "Acesso negado.")

	// Users
	UserAlreadyExistsError = NewSimple(http.StatusConflict, "Email já cadastrado")
	UserMissingError       = NewSimple(http.StatusNotFound, "Usuário não encontrado")
	SelfDeleteError        = NewSimple(http.StatusBadRequest, "Não é possível remover a si mesmo")

	// Appointments
	SlotUnavailableError     = NewSimple(http.StatusConflict, "Horário indisponível")
	AppointmentNotFoundError = NewSimple(http.StatusNotFound, "Agendamento não encontrado")
)

func NewMissingParamError(param string) *SimpleError {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parâmetro obrigatório ausente: %s", param))
}

func NewInvalidParamTypeError(param, typ string) *ValidationError {
	return &ValidationError{
		Detail: "Parâmetro inválido",
		Fields: []*FieldError{{Field: param, Rule: "type", Param: typ}},
	}
}

func NewFieldValidationError(field, rule, param string) *ValidationError {
	return &ValidationError{
		Detail: "Dados inválidos",
		Fields: []*FieldError{{Field: field, Rule: rule, Param: param}},
	}
}

// FromValidationError turns validator output into a 422 response. Anything
// that is not a validator.ValidationErrors is reported as a malformed body.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make([]*FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = &FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		}
	}
	return &ValidationError{Detail: "Dados inválidos", Fields: fields}
}
