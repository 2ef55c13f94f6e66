package utils

import (
	"math"

	"github.com/habalhub/habal-backend/internal/models"
)

// MinimumDistanceKm is the smallest bookable distance. The booking form
// steps in 0.1 km increments starting at 1.
const MinimumDistanceKm = 1.0

// EstimateFare computes the quoted fare for a distance under the current
// pricing settings: (base_fare + per_km * distance) * surge_multiplier,
// rounded to 2 decimal places. A nil configuration resolves to 0 and the
// caller must block submission.
func EstimateFare(pricing *models.PricingSettings, distanceKm float64) float64 {
	if pricing == nil {
		return 0
	}
	fare := (pricing.BaseFare + pricing.PerKm*distanceKm) * pricing.SurgeMultiplier
	return math.Round(fare*100) / 100
}
