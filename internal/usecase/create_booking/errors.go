package create_booking

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается при попытке забронировать отключенную услугу
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrInvalidDate возвращается, когда дата бронирования не в будущем
	ErrInvalidDate = errors.New("create_booking: booking date must be in the future")

	// ErrPaymentAuthorization возвращается, когда авторизация холда отклонена.
	// Бронирование в этом случае не создается вовсе.
	ErrPaymentAuthorization = errors.New("create_booking: payment authorization failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
