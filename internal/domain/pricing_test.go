package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/ADS-BookingService/pkg/types"
)

func TestTimeWindow_Contains(t *testing.T) {
	window := TimeWindow{Start: "08:00", End: "10:00"}

	assert.True(t, window.Contains("08:00"), "start boundary is inclusive")
	assert.True(t, window.Contains("09:00"))
	assert.True(t, window.Contains("09:59"))
	assert.False(t, window.Contains("10:00"), "end boundary is exclusive")
	assert.False(t, window.Contains("07:59"))
	assert.False(t, window.Contains("11:00"))
}

func TestResolveTier(t *testing.T) {
	peakWindows := []TimeWindow{
		{Start: "08:00", End: "10:00"},
		{Start: "17:00", End: "20:00"},
	}

	t.Run("slot inside morning peak", func(t *testing.T) {
		assert.Equal(t, TierPeak, ResolveTier(peakWindows, "09:00"))
	})

	t.Run("slot outside peaks", func(t *testing.T) {
		assert.Equal(t, TierNonPeak, ResolveTier(peakWindows, "11:00"))
	})

	t.Run("slot at exclusive end boundary", func(t *testing.T) {
		assert.Equal(t, TierNonPeak, ResolveTier(peakWindows, "10:00"))
	})

	t.Run("slot inside evening peak", func(t *testing.T) {
		assert.Equal(t, TierPeak, ResolveTier(peakWindows, "19:59"))
	})

	t.Run("no windows means non-peak", func(t *testing.T) {
		assert.Equal(t, TierNonPeak, ResolveTier(nil, "09:00"))
	})
}

func TestTierPrices_PriceForTier(t *testing.T) {
	t.Run("default prices", func(t *testing.T) {
		assert.Equal(t, 150.0, DefaultTierPrices.PriceForTier(TierPeak))
		assert.Equal(t, 75.0, DefaultTierPrices.PriceForTier(TierNonPeak))
	})

	t.Run("kiosk override", func(t *testing.T) {
		prices := TierPrices{Peak: 300, NonPeak: 120}
		assert.Equal(t, 300.0, prices.PriceForTier(TierPeak))
		assert.Equal(t, 120.0, prices.PriceForTier(TierNonPeak))
	})
}

func TestResolveTier_WithPrices(t *testing.T) {
	// Слот 09:00 при пике 08:00-10:00 тарифицируется как peak,
	// слот 11:00 как non_peak
	peakWindows := []TimeWindow{{Start: "08:00", End: "10:00"}}

	tier := ResolveTier(peakWindows, types.TimeString("09:00"))
	assert.Equal(t, 150.0, DefaultTierPrices.PriceForTier(tier))

	tier = ResolveTier(peakWindows, types.TimeString("11:00"))
	assert.Equal(t, 75.0, DefaultTierPrices.PriceForTier(tier))
}
