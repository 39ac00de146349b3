package props

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// FairDecimalOdds converts a hit probability to its no-vig decimal price,
// rounded to four places. Probabilities at the boundaries have no finite
// price and are rejected.
func FairDecimalOdds(prob float64) (decimal.Decimal, error) {
	if prob <= 0 || prob >= 1 {
		return decimal.Zero, fmt.Errorf("probability %v outside (0, 1): %w", prob, models.ErrInvalidConfiguration)
	}
	return decimal.NewFromInt(1).Div(decimal.NewFromFloat(prob)).Round(4), nil
}

// FairAmericanOdds converts a hit probability to the no-vig American price.
// Favorites quote negative, underdogs positive, and even money quotes +100.
func FairAmericanOdds(prob float64) (int64, error) {
	if prob <= 0 || prob >= 1 {
		return 0, fmt.Errorf("probability %v outside (0, 1): %w", prob, models.ErrInvalidConfiguration)
	}

	hundred := decimal.NewFromInt(100)
	one := decimal.NewFromInt(1)
	p := decimal.NewFromFloat(prob)

	if prob > 0.5 {
		return p.Div(one.Sub(p)).Mul(hundred).Round(0).Neg().IntPart(), nil
	}
	return one.Sub(p).Div(p).Mul(hundred).Round(0).IntPart(), nil
}
