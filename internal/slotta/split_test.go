package slotta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoShowSplit(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		wantMaster string
		wantClient string
	}{
		{"round amount", "100.00", "62.50", "37.50"},
		{"typical slotta", "39.00", "24.38", "14.62"}, // 14.625 -> bank round down
		{"small amount", "0.10", "0.06", "0.04"},
		{"single cent", "0.01", "0.01", "0.00"},
		{"cap amount", "70.00", "43.75", "26.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := NoShowSplit(dec(tt.amount))
			assert.True(t, split.MasterCompensation.Equal(dec(tt.wantMaster)),
				"master: got %s, want %s", split.MasterCompensation, tt.wantMaster)
			assert.True(t, split.ClientWalletCredit.Equal(dec(tt.wantClient)),
				"client: got %s, want %s", split.ClientWalletCredit, tt.wantClient)
		})
	}
}

func TestNoShowSplit_SumsExactly(t *testing.T) {
	// Сумма долей равна депозиту точно, не в пределах допуска:
	// кредит клиента округляется, мастер получает остаток
	amounts := []string{"0.01", "0.03", "1.99", "10.00", "33.33", "39.00", "57.38", "100.00", "699.99"}

	for _, a := range amounts {
		amount := dec(a)
		split := NoShowSplit(amount)

		sum := split.MasterCompensation.Add(split.ClientWalletCredit)
		assert.True(t, sum.Equal(amount), "amount=%s: %s + %s != %s",
			a, split.MasterCompensation, split.ClientWalletCredit, a)
		assert.False(t, split.MasterCompensation.IsNegative())
		assert.False(t, split.ClientWalletCredit.IsNegative())
	}
}
