// Package notifier публикует события жизненного цикла бронирований в
// topic exchange RabbitMQ. Подписчики (email, Telegram, календарь) строят
// уведомления сами, ядро только сообщает факт.
//
// Публикация fire-and-forget: ошибка публикации логируется и никогда не
// откатывает и не блокирует уже зафиксированный переход статуса.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// Routing keys событий
const (
	KeyBookingCreated     = "booking.created"
	KeyBookingCancelled   = "booking.cancelled"
	KeyBookingCompleted   = "booking.completed"
	KeyBookingNoShow      = "booking.no_show"
	KeyBookingRescheduled = "booking.rescheduled"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BookingEvent полезная нагрузка события жизненного цикла
type BookingEvent struct {
	EventID   string    `json:"eventId"`
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`

	BookingID int64  `json:"bookingId"`
	MasterID  int64  `json:"masterId"`
	ClientID  int64  `json:"clientId"`
	ServiceID int64  `json:"serviceId"`
	Status    string `json:"status"`

	BookingDate  time.Time       `json:"bookingDate"`
	SlottaAmount decimal.Decimal `json:"slottaAmount"`

	// Заполняются только для no-show
	MasterCompensation *decimal.Decimal `json:"masterCompensation,omitempty"`
	ClientWalletCredit *decimal.Decimal `json:"clientWalletCredit,omitempty"`
}

// Dispatcher публикует события бронирований в RabbitMQ
type Dispatcher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      Logger
}

// NewDispatcher подключается к RabbitMQ и объявляет topic exchange
func NewDispatcher(url, exchange string, log Logger) (*Dispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notifier: dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notifier: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notifier: declare exchange: %w", err)
	}

	return &Dispatcher{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

// Close закрывает канал и соединение
func (d *Dispatcher) Close() error {
	if d.ch != nil {
		_ = d.ch.Close()
	}
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// BookingCreated публикует событие создания бронирования
func (d *Dispatcher) BookingCreated(ctx context.Context, booking *domain.Booking) {
	d.publish(ctx, KeyBookingCreated, eventFromBooking(KeyBookingCreated, booking))
}

// BookingCancelled публикует событие отмены бронирования
func (d *Dispatcher) BookingCancelled(ctx context.Context, booking *domain.Booking) {
	d.publish(ctx, KeyBookingCancelled, eventFromBooking(KeyBookingCancelled, booking))
}

// BookingCompleted публикует событие завершения бронирования
func (d *Dispatcher) BookingCompleted(ctx context.Context, booking *domain.Booking) {
	d.publish(ctx, KeyBookingCompleted, eventFromBooking(KeyBookingCompleted, booking))
}

// BookingNoShow публикует событие no-show с деталями разделения депозита
func (d *Dispatcher) BookingNoShow(ctx context.Context, booking *domain.Booking, masterCompensation, clientCredit decimal.Decimal) {
	event := eventFromBooking(KeyBookingNoShow, booking)
	event.MasterCompensation = &masterCompensation
	event.ClientWalletCredit = &clientCredit
	d.publish(ctx, KeyBookingNoShow, event)
}

// BookingRescheduled публикует событие переноса бронирования
func (d *Dispatcher) BookingRescheduled(ctx context.Context, booking *domain.Booking) {
	d.publish(ctx, KeyBookingRescheduled, eventFromBooking(KeyBookingRescheduled, booking))
}

func (d *Dispatcher) publish(ctx context.Context, key string, event BookingEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		d.log.Error("notifier: marshal event %s: %v", key, err)
		return
	}

	err = d.ch.PublishWithContext(ctx, d.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   event.EventID,
		Timestamp:   event.Timestamp,
		Body:        body,
	})
	if err != nil {
		// Уведомления не критичны для перехода, только логируем
		d.log.Error("notifier: publish %s for booking=%d failed: %v", key, event.BookingID, err)
		return
	}

	d.log.Info("notifier: published %s for booking=%d", key, event.BookingID)
}

func eventFromBooking(key string, booking *domain.Booking) BookingEvent {
	return BookingEvent{
		EventID:      uuid.NewString(),
		Event:        key,
		Timestamp:    time.Now().UTC(),
		BookingID:    booking.ID,
		MasterID:     booking.MasterID,
		ClientID:     booking.ClientID,
		ServiceID:    booking.ServiceID,
		Status:       string(booking.Status),
		BookingDate:  booking.BookingDate,
		SlottaAmount: booking.SlottaAmount,
	}
}
