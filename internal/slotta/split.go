package slotta

import "github.com/shopspring/decimal"

// Доли при невозврате депозита
var (
	clientSharePercent = decimal.RequireFromString("0.375") // 37.5% в кошелек клиента
)

// Split результат разделения удержанного депозита
type Split struct {
	MasterCompensation decimal.Decimal
	ClientWalletCredit decimal.Decimal
}

// NoShowSplit делит захваченный депозит между мастером (62.5%) и кошельком
// клиента (37.5%). Кредит клиента округляется банковским округлением, доля
// мастера считается точным остатком, поэтому сумма долей всегда равна
// депозиту, а видимая клиенту сумма детерминирована.
func NoShowSplit(slottaAmount decimal.Decimal) Split {
	clientCredit := slottaAmount.Mul(clientSharePercent).RoundBank(2)
	return Split{
		MasterCompensation: slottaAmount.Sub(clientCredit),
		ClientWalletCredit: clientCredit,
	}
}
