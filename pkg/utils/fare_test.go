package utils

import (
	"testing"

	"github.com/habalhub/habal-backend/internal/models"
)

func TestEstimateFare(t *testing.T) {
	tests := []struct {
		name     string
		pricing  *models.PricingSettings
		distance float64
		want     float64
	}{
		{
			name:     "default settings 5km",
			pricing:  &models.PricingSettings{BaseFare: 25, PerKm: 10, SurgeMultiplier: 1},
			distance: 5,
			want:     75.00,
		},
		{
			name:     "surge applied after base and distance",
			pricing:  &models.PricingSettings{BaseFare: 25, PerKm: 10, SurgeMultiplier: 1.5},
			distance: 10,
			want:     187.50,
		},
		{
			name:     "minimum distance",
			pricing:  &models.PricingSettings{BaseFare: 25, PerKm: 10, SurgeMultiplier: 1},
			distance: 1,
			want:     35.00,
		},
		{
			name:     "rounds to two decimals",
			pricing:  &models.PricingSettings{BaseFare: 20, PerKm: 9.99, SurgeMultiplier: 1.1},
			distance: 3.3,
			want:     58.26,
		},
		{
			name:     "missing configuration resolves to zero",
			pricing:  nil,
			distance: 5,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateFare(tt.pricing, tt.distance)
			if got != tt.want {
				t.Errorf("EstimateFare(%+v, %v) = %v, want %v", tt.pricing, tt.distance, got, tt.want)
			}
		})
	}
}

func TestEstimateFareMonotonicInDistance(t *testing.T) {
	pricing := &models.PricingSettings{BaseFare: 25, PerKm: 10, SurgeMultiplier: 1.2}

	prev := EstimateFare(pricing, MinimumDistanceKm)
	for d := MinimumDistanceKm + 1; d <= 20; d++ {
		fare := EstimateFare(pricing, d)
		if fare <= prev {
			t.Fatalf("fare at %vkm (%v) not greater than at %vkm (%v)", d, fare, d-1, prev)
		}
		prev = fare
	}
}
