package slotta

// Веса риск-модели
const (
	riskWeightNoShow       = 60.0 // вклад доли no-show (0-60 баллов)
	riskWeightCancellation = 20.0 // вклад доли отмен (0-20 баллов)
	riskWeightLeadTime     = 20.0 // вклад короткого lead time (0-20 баллов)

	riskScoreUnknown = 50 // новый клиент без истории: умеренный риск
	riskScoreMax     = 100
)

// RiskScore считает оценку риска no-show для клиента, 0-100 (выше = рискованнее).
//
// leadTimeHours: часы от создания бронирования до визита; передается nil,
// если lead time неизвестен. Штраф начисляется только при lead time < 24ч.
func RiskScore(
	totalBookings int,
	completedBookings int,
	noShows int,
	cancellations int,
	leadTimeHours *float64,
) int {
	if totalBookings == 0 {
		return riskScoreUnknown
	}

	noShowRate := float64(noShows) / float64(totalBookings)
	cancellationRate := float64(cancellations) / float64(totalBookings)

	score := noShowRate*riskWeightNoShow + cancellationRate*riskWeightCancellation

	if leadTimeHours != nil && *leadTimeHours < 24 {
		score += riskWeightLeadTime * (1 - *leadTimeHours/24)
	}

	if score > riskScoreMax {
		return riskScoreMax
	}
	return int(score)
}
