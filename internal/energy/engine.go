package energy

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidInput = errors.New("invalid input parameters")
)

// HourOfDay returns the position of an hour index within its day
func HourOfDay(hourIndex int) int {
	return hourIndex % HoursPerDay
}

// Generate produces the synthetic hourly consumption table for the given
// number of days. The result is a pure function of days.
func Generate(days int) ([]HourRecord, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidInput, days)
	}

	hours := days * HoursPerDay
	records := make([]HourRecord, 0, hours)
	for i := 0; i < hours; i++ {
		records = append(records, simulateHour(i))
	}

	return records, nil
}

// simulateHour derives every column of a single hour
func simulateHour(hourIndex int) HourRecord {
	h := HourOfDay(hourIndex)
	occupied := isOccupied(h)
	temp := 20 + 5*math.Sin(float64(h)*math.Pi/12)

	machine := 2.0
	if occupied {
		machine = 5
	}

	hvac := 2.0
	if temp > 25 {
		hvac = 3
	}

	lighting := 2.5
	if isDaylight(h) {
		lighting = 1.5
	}

	return HourRecord{
		HourIndex:    hourIndex,
		Occupied:     occupied,
		TemperatureC: temp,
		MachineLoad:  machine,
		HVACLoad:     hvac,
		LightingLoad: lighting,
		TotalLoad:    machine + hvac + lighting + BaselineLoad,
	}
}

// Optimize applies the fixed adjustment rules to every hour. The input slice
// is left untouched; an empty input yields an empty result.
func Optimize(records []HourRecord) []OptimizedHourRecord {
	result := make([]OptimizedHourRecord, 0, len(records))

	for _, r := range records {
		// Idle machines can be powered down outside occupied hours
		machine := r.MachineLoad
		if !r.Occupied {
			machine -= 2
		}

		// Mild temperatures allow a lower HVAC setting
		hvac := r.HVACLoad
		if r.TemperatureC < 22 {
			hvac -= 1
		}

		// Daylight hours use dimmed lighting
		lighting := r.LightingLoad
		if isDaylight(HourOfDay(r.HourIndex)) {
			lighting -= 0.5
		}

		optimized := machine + hvac + lighting + BaselineLoad

		result = append(result, OptimizedHourRecord{
			HourRecord:      r,
			MachineLoadOpt:  machine,
			HVACLoadOpt:     hvac,
			LightingLoadOpt: lighting,
			OptimizedTotal:  optimized,
			Savings:         r.TotalLoad - optimized,
		})
	}

	return result
}

// Simulate generates the table for days and applies the adjustment rules
func Simulate(days int) ([]OptimizedHourRecord, error) {
	records, err := Generate(days)
	if err != nil {
		return nil, err
	}
	return Optimize(records), nil
}

// Summarize totals a simulated range. SavingsPercent is 0 when the original
// total is 0.
func Summarize(records []OptimizedHourRecord) Summary {
	s := Summary{Hours: len(records)}
	for _, r := range records {
		s.TotalLoad += r.TotalLoad
		s.OptimizedTotal += r.OptimizedTotal
	}

	s.Savings = s.TotalLoad - s.OptimizedTotal
	if s.TotalLoad != 0 {
		s.SavingsPercent = s.Savings / s.TotalLoad * 100
	}

	return s
}

// isOccupied reports whether the building is in use at hour-of-day h (8-18 inclusive)
func isOccupied(h int) bool {
	return h >= 8 && h <= 18
}

// isDaylight reports whether hour-of-day h uses natural light (6-18 inclusive)
func isDaylight(h int) bool {
	return h >= 6 && h <= 18
}
