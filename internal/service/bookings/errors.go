package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("service.bookings: booking not found")

	// ErrAccessDenied возвращается, когда бронирование не принадлежит
	// запрашивающей стороне
	ErrAccessDenied = errors.New("service.bookings: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.bookings: internal error")
)
