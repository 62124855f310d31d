// Package omisepay реализует платежный шлюз холдов поверх Omise.
//
// Авторизация холда реализована как charge с DontCapture: средства
// резервируются, но не списываются. Захват (no-show) выполняется через
// CaptureCharge, освобождение (завершение/отмена) через ReverseCharge.
// Конвертация decimal-сумм в минорные единицы валюты лежит на этом
// пакете, ядро работает только с десятичными суммами.
package omisepay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
	"github.com/shopspring/decimal"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AuthorizeRequest параметры авторизации холда
type AuthorizeRequest struct {
	Amount    decimal.Decimal
	CardToken string                 // одноразовый токен карты клиента
	PayerRef  string                 // ссылка на плательщика (email)
	Metadata  map[string]interface{} // контекст бронирования для сверки
}

// Gateway платежный шлюз холдов поверх Omise
type Gateway struct {
	client   *omise.Client
	currency string
	log      Logger
}

// NewGateway создает шлюз. Таймаут ограничивает каждый вызов к Omise:
// ни одна операция жизненного цикла не блокируется бесконечно.
func NewGateway(publicKey, secretKey, currency string, timeout time.Duration, log Logger) (*Gateway, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", ErrGateway, err)
	}
	client.Timeout = timeout

	return &Gateway{
		client:   client,
		currency: currency,
		log:      log,
	}, nil
}

// Authorize авторизует холд на сумму депозита и возвращает ссылку на него.
// Средства не списываются до явного Capture.
func (g *Gateway) Authorize(ctx context.Context, req AuthorizeRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	metadata := make(map[string]interface{}, len(req.Metadata)+2)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata["idempotency_key"] = uuid.NewString()
	metadata["payer_ref"] = req.PayerRef

	charge := &omise.Charge{}
	err := g.client.Do(charge, &operations.CreateCharge{
		Amount:      toMinorUnits(req.Amount),
		Currency:    g.currency,
		Card:        req.CardToken,
		DontCapture: true,
		Description: "Slotta deposit hold",
		Metadata:    metadata,
	})
	if err != nil {
		g.log.Warn("omisepay: authorize declined for payer=%s: %v", req.PayerRef, err)
		return "", fmt.Errorf("%w: %v", ErrAuthorizeDeclined, err)
	}

	if charge.Status == omise.ChargeFailed {
		g.log.Warn("omisepay: authorize failed for payer=%s: %s", req.PayerRef, deref(charge.FailureMessage))
		return "", fmt.Errorf("%w: %s", ErrAuthorizeDeclined, deref(charge.FailureMessage))
	}

	g.log.Info("omisepay: hold authorized charge=%s amount=%s", charge.ID, req.Amount)
	return charge.ID, nil
}

// Capture списывает авторизованный холд. Сумма должна совпадать с
// авторизованной: частичный захват не поддерживается.
func (g *Gateway) Capture(ctx context.Context, holdRef string, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}

	charge := &omise.Charge{}
	if err := g.client.Do(charge, &operations.RetrieveCharge{ChargeID: holdRef}); err != nil {
		return fmt.Errorf("%w: retrieve %s: %v", ErrHoldNotFound, holdRef, err)
	}

	if charge.Amount != toMinorUnits(amount) {
		return fmt.Errorf("%w: authorized=%d requested=%d", ErrAmountMismatch, charge.Amount, toMinorUnits(amount))
	}

	if err := g.client.Do(charge, &operations.CaptureCharge{ChargeID: holdRef}); err != nil {
		g.log.Error("omisepay: capture failed charge=%s: %v", holdRef, err)
		return fmt.Errorf("%w: capture %s: %v", ErrGateway, holdRef, err)
	}

	g.log.Info("omisepay: hold captured charge=%s amount=%s", holdRef, amount)
	return nil
}

// Release отменяет холд без списания
func (g *Gateway) Release(ctx context.Context, holdRef string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}

	charge := &omise.Charge{}
	if err := g.client.Do(charge, &operations.ReverseCharge{ChargeID: holdRef}); err != nil {
		g.log.Error("omisepay: release failed charge=%s: %v", holdRef, err)
		return fmt.Errorf("%w: release %s: %v", ErrGateway, holdRef, err)
	}

	g.log.Info("omisepay: hold released charge=%s", holdRef)
	return nil
}

// toMinorUnits конвертирует decimal-сумму в минорные единицы валюты.
// Суммы в ядре всегда округлены до 2 знаков, поэтому сдвиг точен.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).IntPart()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
