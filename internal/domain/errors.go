package domain

import "fmt"

// ValidationError indica um valor inválido em um campo de entrada
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("valor inválido para %s: %q", e.Field, e.Value)
}
