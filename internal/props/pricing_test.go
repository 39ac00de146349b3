package props

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestFairDecimalOdds(t *testing.T) {
	cases := []struct {
		prob float64
		want string
	}{
		{0.5, "2"},
		{0.25, "4"},
		{0.8, "1.25"},
		{10.0 / 17.0, "1.7"},
	}
	for _, tc := range cases {
		got, err := FairDecimalOdds(tc.prob)
		if err != nil {
			t.Fatalf("FairDecimalOdds(%v) failed: %v", tc.prob, err)
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("FairDecimalOdds(%v) = %s, want %s", tc.prob, got, tc.want)
		}
	}
}

func TestFairAmericanOdds(t *testing.T) {
	cases := []struct {
		prob float64
		want int64
	}{
		{0.5, 100},
		{0.8, -400},
		{0.6, -150},
		{0.25, 300},
		{0.2, 400},
	}
	for _, tc := range cases {
		got, err := FairAmericanOdds(tc.prob)
		if err != nil {
			t.Fatalf("FairAmericanOdds(%v) failed: %v", tc.prob, err)
		}
		if got != tc.want {
			t.Errorf("FairAmericanOdds(%v) = %d, want %d", tc.prob, got, tc.want)
		}
	}
}

func TestFairOddsRejectBoundaryProbabilities(t *testing.T) {
	for _, prob := range []float64{0, 1, -0.5, 1.5} {
		if _, err := FairDecimalOdds(prob); !errors.Is(err, models.ErrInvalidConfiguration) {
			t.Errorf("FairDecimalOdds(%v): expected ErrInvalidConfiguration, got %v", prob, err)
		}
		if _, err := FairAmericanOdds(prob); !errors.Is(err, models.ErrInvalidConfiguration) {
			t.Errorf("FairAmericanOdds(%v): expected ErrInvalidConfiguration, got %v", prob, err)
		}
	}
}
