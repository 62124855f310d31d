package slotta

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slotta-app/SlottaService/pkg/ptr"
)

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name          string
		total         int
		completed     int
		noShows       int
		cancellations int
		leadTime      *float64
		want          int
	}{
		{"no history: moderate default", 0, 0, 0, 0, nil, 50},
		{"no history ignores other fields", 0, 5, 3, 2, nil, 50},
		{"clean history", 10, 10, 0, 0, nil, 0},
		{"20% no-show rate", 10, 8, 2, 0, nil, 12},
		{"cancellations only", 10, 8, 0, 5, nil, 10},
		{"combined rates", 10, 5, 2, 5, nil, 22},
		{"all no-shows capped", 2, 0, 2, 2, nil, 80},
		{"score capped at 100", 1, 0, 1, 1, ptr.Ptr(0.0), 100},
		{"short lead time penalty", 10, 8, 2, 0, ptr.Ptr(12.0), 22},
		{"lead time over 24h no penalty", 10, 8, 2, 0, ptr.Ptr(48.0), 12},
		{"truncated, not rounded", 3, 2, 1, 0, nil, 19}, // 1/3×60 = 19.999... -> 19
		{"binary-exact rates", 8, 6, 1, 1, nil, 10},     // 1/8×60 + 1/8×20 = 10.0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RiskScore(tt.total, tt.completed, tt.noShows, tt.cancellations, tt.leadTime)
			assert.Equal(t, tt.want, got)
		})
	}
}
