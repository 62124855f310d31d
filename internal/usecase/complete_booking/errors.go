package complete_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("complete_booking: booking not found")

	// ErrForbidden возвращается, когда бронирование принадлежит другому мастеру
	ErrForbidden = errors.New("complete_booking: booking belongs to another master")

	// ErrInvalidTransition возвращается при попытке завершить бронирование
	// в терминальном статусе. Его получает и проигравший при конкурентных
	// переходах: precondition на статус не проходит.
	ErrInvalidTransition = errors.New("complete_booking: booking is not in a transitionable status")

	// ErrPaymentGateway возвращается, когда холд не удалось освободить.
	// Статус бронирования в этом случае не меняется.
	ErrPaymentGateway = errors.New("complete_booking: failed to release payment hold")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_booking: internal error")
)
