package create_booking_with_payment

import (
	"time"

	"github.com/slotta-app/SlottaService/internal/domain"
	createBooking "github.com/slotta-app/SlottaService/internal/usecase/create_booking"
)

// CreateBookingWithPaymentRequest HTTP request model.
// Клиент разрешается по email: для новых гостей запись создается на лету.
type CreateBookingWithPaymentRequest struct {
	ClientEmail string `json:"clientEmail"`
	ClientName  string `json:"clientName"`
	MasterID    int64  `json:"masterId"`
	ServiceID   int64  `json:"serviceId"`
	BookingDate string `json:"bookingDate"` // ISO 8601
	IsPeakSlot  bool   `json:"isPeakSlot,omitempty"`
	CardToken   string `json:"cardToken"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64  `json:"id"`
	MasterID           int64  `json:"masterId"`
	ClientID           int64  `json:"clientId"`
	ServiceID          int64  `json:"serviceId"`
	BookingDate        string `json:"bookingDate"`
	DurationMinutes    int    `json:"durationMinutes"`
	Status             string `json:"status"`
	ServicePrice       string `json:"servicePrice"`
	SlottaAmount       string `json:"slottaAmount"`
	PaymentHeld        bool   `json:"paymentHeld"`
	RiskScore          int    `json:"riskScore"`
	RescheduleDeadline string `json:"rescheduleDeadline"`
	CreatedAt          string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingWithPaymentRequest) ToUseCaseRequest() (*createBooking.RequestWithPayment, error) {
	bookingDate, err := time.Parse(domain.DateTimeFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.RequestWithPayment{
		ClientEmail: r.ClientEmail,
		ClientName:  r.ClientName,
		MasterID:    r.MasterID,
		ServiceID:   r.ServiceID,
		BookingDate: bookingDate,
		IsPeakSlot:  r.IsPeakSlot,
		CardToken:   r.CardToken,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	b := resp.Booking
	return &BookingResponse{
		ID:                 b.ID,
		MasterID:           b.MasterID,
		ClientID:           b.ClientID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateTimeFormat),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServicePrice:       b.ServicePrice.StringFixed(2),
		SlottaAmount:       resp.SlottaAmount.StringFixed(2),
		PaymentHeld:        b.HasPaymentHold(),
		RiskScore:          resp.RiskScore,
		RescheduleDeadline: b.RescheduleDeadline.Format(domain.DateTimeFormat),
		CreatedAt:          b.CreatedAt.Format(domain.DateTimeFormat),
	}
}
