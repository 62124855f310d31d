package create_booking

import (
	"fmt"
	"strings"
	"time"
)

// validateRequest валидирует входные данные запроса без предоплаты
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.MasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.BookingDate.IsZero() {
		return fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	return nil
}

// validateRequestWithPayment валидирует входные данные запроса с предоплатой
func validateRequestWithPayment(req *RequestWithPayment) error {
	email := strings.TrimSpace(req.ClientEmail)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if req.MasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.BookingDate.IsZero() {
		return fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CardToken) == "" {
		return fmt.Errorf("%w: cardToken is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что бронирование создается на будущее время
func validateDate(bookingDate, now time.Time) error {
	if !bookingDate.After(now) {
		return ErrInvalidDate
	}
	return nil
}
