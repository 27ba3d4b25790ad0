package domain

import "github.com/m04kA/ADS-BookingService/pkg/types"

// PriceTier is the pricing tier of a time slot
type PriceTier string

const (
	TierPeak    PriceTier = "peak"
	TierNonPeak PriceTier = "non_peak"
)

// TimeWindow is a [Start, End) range of wall-clock time on a kiosk,
// used for configured peak windows
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains reports whether t falls within the window.
// The start boundary is inclusive, the end boundary exclusive, so adjacent
// windows never overlap on their shared boundary.
func (w TimeWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// TierPrices holds the flat per-tier base prices of a kiosk
type TierPrices struct {
	Peak    float64
	NonPeak float64
}

// DefaultTierPrices is used when the kiosk registry carries no price override
var DefaultTierPrices = TierPrices{
	Peak:    DefaultPeakBasePrice,
	NonPeak: DefaultNonPeakBasePrice,
}

// ResolveTier maps a slot start time to a pricing tier. Peak windows are
// explicit overrides: anything not covered by a window is non-peak.
func ResolveTier(peakWindows []TimeWindow, slotStart types.TimeString) PriceTier {
	for _, w := range peakWindows {
		if w.Contains(slotStart) {
			return TierPeak
		}
	}
	return TierNonPeak
}

// PriceForTier returns the flat base price of a tier. The price is per slot,
// not prorated by duration.
func (p TierPrices) PriceForTier(tier PriceTier) float64 {
	if tier == TierPeak {
		return p.Peak
	}
	return p.NonPeak
}
