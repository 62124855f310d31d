package mark_no_show

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("mark_no_show: booking not found")

	// ErrForbidden возвращается, когда бронирование принадлежит другому мастеру
	ErrForbidden = errors.New("mark_no_show: booking belongs to another master")

	// ErrInvalidTransition возвращается при попытке пометить no-show
	// бронирование в терминальном статусе
	ErrInvalidTransition = errors.New("mark_no_show: booking is not in a transitionable status")

	// ErrPaymentGateway возвращается, когда захват холда не удался.
	// Статус бронирования не меняется: операцию можно повторить.
	ErrPaymentGateway = errors.New("mark_no_show: failed to capture payment hold")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("mark_no_show: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("mark_no_show: internal error")
)
