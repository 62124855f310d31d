package create_booking_with_payment

import (
	"context"

	createBooking "github.com/slotta-app/SlottaService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	ExecuteWithPayment(ctx context.Context, req *createBooking.RequestWithPayment) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
