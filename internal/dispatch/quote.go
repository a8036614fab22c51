package dispatch

import (
	"math"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

const DefaultCurrency = "UGX"

type priceRange struct {
	min, max int64
}

var baseRanges = map[string]priceRange{
	models.IntentEmergencyRepair: {min: 250000, max: 1200000},
	models.IntentMaintenance:     {min: 50000, max: 250000},
	models.IntentGeneralInquiry:  {min: 0, max: 0},
}

// CalculateQuote scales the intent's base range by the tier multiplier.
// CRITICAL requests get the max inflated by 10% before scaling; each
// rounding is half-to-even.
func CalculateQuote(intent, priority string, multiplier float64, currency string) models.Quote {
	base := baseRanges[intent]
	if multiplier <= 0 {
		multiplier = 1.0
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	maxValue := float64(base.max)
	if priority == models.PriorityCritical {
		maxValue = math.RoundToEven(maxValue * 1.1)
	}

	return models.Quote{
		Min:      int64(math.RoundToEven(float64(base.min) * multiplier)),
		Max:      int64(math.RoundToEven(maxValue * multiplier)),
		Currency: currency,
	}
}
