// Package energy converts token savings into energy and CO2 estimates and
// accounts for the cost of running the compression itself. It is pure
// presentation math over pipeline outputs; nothing here influences
// compression decisions.
package energy

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// DefaultWhPerToken estimates LLM inference energy per token, roughly a
// GPT-3.5 class model.
const DefaultWhPerToken = 0.00024

// DefaultCPUPowerWatts is the assumed CPU draw at full utilization when
// estimating the compression cost.
const DefaultCPUPowerWatts = 15.0

// Cost is the measured expense of a compression run.
type Cost struct {
	Elapsed       time.Duration
	AvgCPUPercent float64
	EnergyWh      float64
}

// Meter samples this process's CPU usage around a compression run. CPU
// sampling is best-effort: when the process cannot be inspected the cost
// reads as zero.
type Meter struct {
	proc          *process.Process
	start         time.Time
	startCPU      float64
	cpuPowerWatts float64
}

// StartMeter begins measuring. cpuPowerWatts of zero means the default.
func StartMeter(cpuPowerWatts float64) *Meter {
	if cpuPowerWatts == 0 {
		cpuPowerWatts = DefaultCPUPowerWatts
	}
	m := &Meter{start: time.Now(), cpuPowerWatts: cpuPowerWatts}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		m.proc = proc
		if pct, err := proc.Percent(100 * time.Millisecond); err == nil {
			m.startCPU = pct
		}
	}
	return m
}

// Stop ends measurement and returns the estimated compression cost:
// average CPU utilization scaled against the assumed CPU power, times
// elapsed wall time.
func (m *Meter) Stop() Cost {
	elapsed := time.Since(m.start)

	var endCPU float64
	if m.proc != nil {
		if pct, err := m.proc.Percent(100 * time.Millisecond); err == nil {
			endCPU = pct
		}
	}
	avg := (m.startCPU + endCPU) / 2

	watts := m.cpuPowerWatts * (avg / 100)
	wh := watts * elapsed.Seconds() / 3600

	return Cost{Elapsed: elapsed, AvgCPUPercent: avg, EnergyWh: wh}
}

// TokensToWh converts saved tokens to Watt-hours. whPerToken of zero means
// the default.
func TokensToWh(tokens int, whPerToken float64) float64 {
	if whPerToken == 0 {
		whPerToken = DefaultWhPerToken
	}
	return float64(tokens) * whPerToken
}

// CO2Grams converts Watt-hours to grams of CO2 equivalent at the given grid
// intensity in gCO2eq/kWh.
func CO2Grams(wh, gramsPerKWh float64) float64 {
	return wh / 1000.0 * gramsPerKWh
}

// Report aggregates the savings figures for presentation.
type Report struct {
	// Intensity is the grid carbon intensity used, in gCO2eq/kWh.
	Intensity float64

	LLMEnergySavedWh    float64
	CompressionEnergyWh float64
	NetEnergySavedWh    float64

	LLMCO2SavedGrams        float64
	CompressionCO2CostGrams float64
	NetCO2SavedGrams        float64
}

// BuildReport computes the energy and CO2 balance for a run: what the saved
// tokens avoid at inference time, minus what the compression itself cost.
func BuildReport(tokensSaved int, cost Cost, intensity, whPerToken float64) Report {
	saved := TokensToWh(tokensSaved, whPerToken)
	return Report{
		Intensity:               intensity,
		LLMEnergySavedWh:        saved,
		CompressionEnergyWh:     cost.EnergyWh,
		NetEnergySavedWh:        saved - cost.EnergyWh,
		LLMCO2SavedGrams:        CO2Grams(saved, intensity),
		CompressionCO2CostGrams: CO2Grams(cost.EnergyWh, intensity),
		NetCO2SavedGrams:        CO2Grams(saved-cost.EnergyWh, intensity),
	}
}
