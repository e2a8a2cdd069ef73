package calculate

import (
	"errors"
	"fmt"
)

// Виды ошибок вычисления. Различаются через errors.Is.
var (
	ErrInvalidCharacter  = errors.New("invalid character")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidExpression = errors.New("invalid expression")
	ErrMalformedGrouping = errors.New("malformed grouping")
)

// CalcError описывает пользовательскую ошибку обработки выражения
type CalcError struct {
	Kind    error
	Message string
}

func (e *CalcError) Error() string {
	return e.Message
}

// Unwrap возвращает вид ошибки, чтобы работал errors.Is
func (e *CalcError) Unwrap() error {
	return e.Kind
}

// NewCalcError создает новую ошибку CalcError
func NewCalcError(kind error, message string) *CalcError {
	return &CalcError{Kind: kind, Message: message}
}

// InvalidCharacterError создаёт ошибку недопустимого символа в выражении
func InvalidCharacterError(c byte, pos int) *CalcError {
	return NewCalcError(ErrInvalidCharacter, fmt.Sprintf("invalid character %q at position %d", c, pos))
}

// DivisionByZeroError создаёт ошибку деления на ноль
func DivisionByZeroError() *CalcError {
	return NewCalcError(ErrDivisionByZero, "division by zero")
}

// InvalidExpressionError создаёт ошибку некорректного выражения
func InvalidExpressionError(message string) *CalcError {
	return NewCalcError(ErrInvalidExpression, message)
}

// MalformedGroupingError создаёт ошибку несбалансированных скобок
func MalformedGroupingError(pos int) *CalcError {
	return NewCalcError(ErrMalformedGrouping, fmt.Sprintf("missing ')' at position %d", pos))
}
