package slotta

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slotta-app/SlottaService/internal/domain"
)

func TestDetermineReliability(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		noShows int
		want    domain.ClientReliability
	}{
		{"no history", 0, 0, domain.ReliabilityNew},
		{"two no-shows need protection", 5, 2, domain.ReliabilityNeedsProtection},
		{"many no-shows need protection", 3, 3, domain.ReliabilityNeedsProtection},
		{"history with one no-show is reliable", 5, 1, domain.ReliabilityReliable},
		{"clean history is reliable", 3, 0, domain.ReliabilityReliable},
		{"too few bookings stays new", 2, 1, domain.ReliabilityNew},
		{"single booking stays new", 1, 0, domain.ReliabilityNew},
		{"protection wins over volume", 100, 2, domain.ReliabilityNeedsProtection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineReliability(tt.total, tt.noShows))
		})
	}
}
