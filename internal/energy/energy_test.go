package energy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokensToWh(t *testing.T) {
	assert.InDelta(t, 0.024, TokensToWh(100, 0), 1e-9)
	assert.InDelta(t, 0.5, TokensToWh(100, 0.005), 1e-9)
	assert.Equal(t, 0.0, TokensToWh(0, 0))
}

func TestCO2Grams(t *testing.T) {
	// 1 kWh at 475 g/kWh is 475 g.
	assert.InDelta(t, 475.0, CO2Grams(1000, 475), 1e-9)
	assert.InDelta(t, 0.2, CO2Grams(1, 200), 1e-9)
	assert.Equal(t, 0.0, CO2Grams(0, 200))
}

func TestBuildReport(t *testing.T) {
	cost := Cost{Elapsed: 50 * time.Millisecond, EnergyWh: 0.004}
	r := BuildReport(100, cost, 200, 0)

	assert.Equal(t, 200.0, r.Intensity)
	assert.InDelta(t, 0.024, r.LLMEnergySavedWh, 1e-9)
	assert.InDelta(t, 0.004, r.CompressionEnergyWh, 1e-9)
	assert.InDelta(t, 0.020, r.NetEnergySavedWh, 1e-9)
	assert.InDelta(t, 0.0048, r.LLMCO2SavedGrams, 1e-9)
	assert.InDelta(t, 0.0008, r.CompressionCO2CostGrams, 1e-9)
	assert.InDelta(t, 0.0040, r.NetCO2SavedGrams, 1e-9)
}

func TestBuildReport_NetCanGoNegative(t *testing.T) {
	cost := Cost{EnergyWh: 1.0}
	r := BuildReport(0, cost, 475, 0)

	assert.Less(t, r.NetEnergySavedWh, 0.0)
	assert.Less(t, r.NetCO2SavedGrams, 0.0)
}

func TestMeter_StopReturnsElapsed(t *testing.T) {
	m := StartMeter(0)
	time.Sleep(10 * time.Millisecond)
	cost := m.Stop()

	assert.GreaterOrEqual(t, cost.Elapsed, 10*time.Millisecond)
	assert.GreaterOrEqual(t, cost.EnergyWh, 0.0)
}
