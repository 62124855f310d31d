// Package slotta реализует расчет депозита ("Slotta"), который удерживается
// с клиента при бронировании для защиты времени мастера от no-show.
//
// Все денежные расчеты ведутся в decimal.Decimal; округление везде банковское
// (round half to even) до 2 знаков.
package slotta

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// Базовые проценты по длительности услуги
var (
	basePercentShort  = decimal.RequireFromString("0.275") // < 60 мин: 27.5%
	basePercentMedium = decimal.RequireFromString("0.325") // 60-180 мин: 32.5%
	basePercentLong   = decimal.RequireFromString("0.40")  // > 180 мин: 40%
)

// Модификаторы (аддитивные, применяются к базе один раз)
var (
	modifierNewClient        = decimal.RequireFromString("0.20")  // +20%
	modifierReliable         = decimal.RequireFromString("-0.20") // -20%
	modifierNeedsProtection  = decimal.RequireFromString("0.30")  // +30%
	modifierPeakSlot         = decimal.RequireFromString("0.15")  // +15%
	modifierCancellationHist = decimal.RequireFromString("0.30")  // +30% при >= 2 отменах
)

// Ограничения
var (
	maxPercentage = decimal.RequireFromString("0.70")  // не больше 70% цены услуги
	minLongAmount = decimal.RequireFromString("10.00") // минимум для длинных услуг (>= 180 мин)
)

const longServiceMinutes = 180

// CalculateBase считает базовый депозит от цены и длительности услуги
func CalculateBase(price decimal.Decimal, durationMinutes int) (decimal.Decimal, error) {
	if err := validateInputs(price, durationMinutes); err != nil {
		return decimal.Zero, err
	}
	return price.Mul(basePercent(durationMinutes)).RoundBank(2), nil
}

// Calculate считает итоговый депозит со всеми модификаторами.
//
// Алгоритм: base = price × процент по длительности; модификаторы надежности
// клиента, истории отмен и пикового слота суммируются и применяются к базе
// один раз; результат ограничен сверху 70% цены и, для длинных услуг, снизу
// минимальной суммой.
func Calculate(
	price decimal.Decimal,
	durationMinutes int,
	reliability domain.ClientReliability,
	noShows int,
	cancellations int,
	isPeakSlot bool,
) (decimal.Decimal, error) {
	if err := validateInputs(price, durationMinutes); err != nil {
		return decimal.Zero, err
	}
	if noShows < 0 || cancellations < 0 {
		return decimal.Zero, fmt.Errorf("%w: negative counters (noShows=%d, cancellations=%d)",
			ErrInvalidInput, noShows, cancellations)
	}

	base := price.Mul(basePercent(durationMinutes))

	totalModifier := decimal.Zero

	// Ровно один из трех модификаторов надежности применяется всегда
	switch reliability {
	case domain.ReliabilityReliable:
		totalModifier = totalModifier.Add(modifierReliable)
	case domain.ReliabilityNeedsProtection:
		totalModifier = totalModifier.Add(modifierNeedsProtection)
	default:
		// new и любое неизвестное значение трактуем как нового клиента
		totalModifier = totalModifier.Add(modifierNewClient)
	}

	if cancellations >= 2 {
		totalModifier = totalModifier.Add(modifierCancellationHist)
	}

	if isPeakSlot {
		totalModifier = totalModifier.Add(modifierPeakSlot)
	}

	final := base.Mul(decimal.New(1, 0).Add(totalModifier))

	// Не больше 70% цены услуги
	maxAllowed := price.Mul(maxPercentage)
	if final.GreaterThan(maxAllowed) {
		final = maxAllowed
	}

	// Минимум для длинных услуг
	if durationMinutes >= longServiceMinutes && final.LessThan(minLongAmount) {
		final = minLongAmount
	}

	return final.RoundBank(2), nil
}

func basePercent(durationMinutes int) decimal.Decimal {
	switch {
	case durationMinutes < 60:
		return basePercentShort
	case durationMinutes <= 180:
		return basePercentMedium
	default:
		return basePercentLong
	}
}

func validateInputs(price decimal.Decimal, durationMinutes int) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", ErrInvalidInput, price)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, durationMinutes)
	}
	return nil
}
