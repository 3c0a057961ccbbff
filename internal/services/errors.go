package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Common service errors
var (
	ErrNotFound     = errors.New("registro no encontrado")
	ErrInvalidState = errors.New("transición de estado inválida")
	ErrInvalidInput = errors.New("datos inválidos")
)

// translateErr maps storage errors onto service errors.
func translateErr(entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", entity, err)
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
