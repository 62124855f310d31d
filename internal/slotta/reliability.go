package slotta

import "github.com/slotta-app/SlottaService/internal/domain"

// Пороги классификации надежности
const (
	needsProtectionNoShows  = 2 // от этого числа no-show клиент требует защиты
	reliableMinBookings     = 3 // минимум бронирований для статуса reliable
	reliableMaxNoShows      = 1 // максимум no-show для статуса reliable
)

// DetermineReliability классифицирует клиента по истории бронирований.
// Вызывается после завершения бронирования или no-show, никогда при
// создании, отмене или переносе.
func DetermineReliability(totalBookings, noShows int) domain.ClientReliability {
	if totalBookings == 0 {
		return domain.ReliabilityNew
	}
	if noShows >= needsProtectionNoShows {
		return domain.ReliabilityNeedsProtection
	}
	if noShows <= reliableMaxNoShows && totalBookings >= reliableMinBookings {
		return domain.ReliabilityReliable
	}
	return domain.ReliabilityNew
}
