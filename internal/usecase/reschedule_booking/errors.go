package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrForbidden возвращается, когда бронирование принадлежит другому клиенту
	ErrForbidden = errors.New("reschedule_booking: booking belongs to another client")

	// ErrInvalidTransition возвращается при попытке перенести бронирование
	// в терминальном статусе
	ErrInvalidTransition = errors.New("reschedule_booking: booking is not in a transitionable status")

	// ErrInvalidDate возвращается, когда новая дата не в будущем
	ErrInvalidDate = errors.New("reschedule_booking: new booking date must be in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
