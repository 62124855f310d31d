package models

import (
	"time"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// WalletResponse сводка по средствам мастера.
// Денежные суммы сериализуются строками с двумя знаками после запятой.
type WalletResponse struct {
	MasterID          int64  `json:"masterId"`
	TotalCompensation string `json:"totalCompensation"` // захваченные депозиты no-show
	TotalPayouts      string `json:"totalPayouts"`
	AvailableBalance  string `json:"availableBalance"`
}

// TransactionResponse запись леджера
type TransactionResponse struct {
	ID          int64     `json:"id"`
	BookingID   *int64    `json:"bookingId,omitempty"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TransactionListResponse ответ со списком записей леджера
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// AnalyticsResponse агрегаты по бронированиям мастера
type AnalyticsResponse struct {
	MasterID         int64          `json:"masterId"`
	TotalBookings    int            `json:"totalBookings"`
	StatusCounts     map[string]int `json:"statusCounts"`
	NoShowRate       float64        `json:"noShowRate"` // доля неявок среди завершившихся визитов
	ProtectedRevenue string         `json:"protectedRevenue"`
}

// FromDomainTransaction конвертирует domain модель в DTO
func FromDomainTransaction(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		BookingID:   t.BookingID,
		Type:        string(t.Type),
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// FromDomainTransactionList конвертирует список domain моделей в DTO
func FromDomainTransactionList(transactions []*domain.Transaction) *TransactionListResponse {
	result := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		result = append(result, FromDomainTransaction(t))
	}
	return &TransactionListResponse{Transactions: result}
}
