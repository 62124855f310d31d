package slotta

import "errors"

var (
	// ErrInvalidInput возвращается при неположительной цене или длительности.
	// Валидация входа лежит на вызывающем, движок не считает по мусору.
	ErrInvalidInput = errors.New("slotta: invalid input")
)
