package ds

import (
	"errors"
	"fmt"
	"strings"
)

// Общие ошибки для всех слоёв
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// FieldError ошибка валидации конкретного поля
type FieldError struct {
	Field   string
	Message string
}

// ValidationError набор ошибок валидации. Всегда ошибка клиента (400).
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError создаёт ValidationError для одного поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NotFoundError указанные id не найдены (404)
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError создаёт NotFoundError с сообщением для клиента
func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// StoreError сбой хранилища (500). Клиенту детали не отдаются.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// WrapStore оборачивает ошибку драйвера в StoreError. Ошибки домена не трогает.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsClientError сообщает, вызвана ли ошибка входными данными (400/404)
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound)
}
