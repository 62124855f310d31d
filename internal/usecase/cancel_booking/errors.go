package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrForbidden возвращается, когда бронирование принадлежит другому клиенту
	ErrForbidden = errors.New("cancel_booking: booking belongs to another client")

	// ErrInvalidTransition возвращается при попытке отменить бронирование
	// в терминальном статусе
	ErrInvalidTransition = errors.New("cancel_booking: booking is not in a transitionable status")

	// ErrDeadlinePassed возвращается при отмене позже, чем за 24 часа
	// до визита. Бронирование при этом не меняется: мастер помечает
	// исход сам (completed или no-show).
	ErrDeadlinePassed = errors.New("cancel_booking: free cancellation deadline has passed")

	// ErrPaymentGateway возвращается, когда холд не удалось освободить
	ErrPaymentGateway = errors.New("cancel_booking: failed to release payment hold")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
