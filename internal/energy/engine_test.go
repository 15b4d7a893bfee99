package energy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		wantCount int
		wantError bool
	}{
		{name: "one day", days: 1, wantCount: 24},
		{name: "default dashboard range", days: DefaultDays, wantCount: 48},
		{name: "full week", days: MaxDays, wantCount: 168},
		{name: "beyond dashboard range", days: 30, wantCount: 720},
		{name: "zero days", days: 0, wantError: true},
		{name: "negative days", days: -3, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Generate(tt.days)

			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				assert.Nil(t, records)
				return
			}

			require.NoError(t, err)
			require.Len(t, records, tt.wantCount)
			for i, r := range records {
				assert.Equal(t, i, r.HourIndex, "hour index out of order at %d", i)
				assert.Equal(t, r.MachineLoad+r.HVACLoad+r.LightingLoad+BaselineLoad, r.TotalLoad)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(3)
	require.NoError(t, err)
	b, err := Generate(3)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerate_Boundaries(t *testing.T) {
	records, err := Generate(2)
	require.NoError(t, err)

	tests := []struct {
		hour         int
		wantOccupied bool
		wantLighting float64
	}{
		{hour: 5, wantOccupied: false, wantLighting: 2.5},
		{hour: 6, wantOccupied: false, wantLighting: 1.5},
		{hour: 7, wantOccupied: false, wantLighting: 1.5},
		{hour: 8, wantOccupied: true, wantLighting: 1.5},
		{hour: 18, wantOccupied: true, wantLighting: 1.5},
		{hour: 19, wantOccupied: false, wantLighting: 2.5},
	}

	for _, tt := range tests {
		// the second day must behave exactly like the first
		for _, idx := range []int{tt.hour, tt.hour + HoursPerDay} {
			r := records[idx]
			assert.Equal(t, tt.wantOccupied, r.Occupied, "occupancy at hour index %d", idx)
			assert.Equal(t, tt.wantLighting, r.LightingLoad, "lighting at hour index %d", idx)
		}
	}
}

func TestGenerate_HourZero(t *testing.T) {
	records, err := Generate(1)
	require.NoError(t, err)

	r := records[0]
	assert.False(t, r.Occupied)
	assert.Equal(t, 20.0, r.TemperatureC)
	assert.Equal(t, 2.0, r.MachineLoad)
	assert.Equal(t, 2.0, r.HVACLoad)
	assert.Equal(t, 2.5, r.LightingLoad)
	assert.Equal(t, 7.5, r.TotalLoad)
}

func TestOptimize(t *testing.T) {
	records, err := Generate(1)
	require.NoError(t, err)

	opt := Optimize(records)
	require.Len(t, opt, len(records))

	t.Run("hour 0", func(t *testing.T) {
		r := opt[0]
		assert.Equal(t, 0.0, r.MachineLoadOpt)
		assert.Equal(t, 1.0, r.HVACLoadOpt)
		assert.Equal(t, 2.5, r.LightingLoadOpt)
		assert.Equal(t, 4.5, r.OptimizedTotal)
		assert.Equal(t, 3.0, r.Savings)
	})

	t.Run("hour 12", func(t *testing.T) {
		r := opt[12]
		assert.InDelta(t, 20.0, r.TemperatureC, 1e-9)
		assert.True(t, r.Occupied)
		assert.Equal(t, 9.5, r.TotalLoad)
		assert.Equal(t, 5.0, r.MachineLoadOpt)
		assert.Equal(t, 1.0, r.HVACLoadOpt)
		assert.Equal(t, 1.0, r.LightingLoadOpt)
		assert.Equal(t, 8.0, r.OptimizedTotal)
		assert.Equal(t, 1.5, r.Savings)
	})

	t.Run("row identities", func(t *testing.T) {
		for _, r := range opt {
			assert.Equal(t, r.MachineLoadOpt+r.HVACLoadOpt+r.LightingLoadOpt+BaselineLoad, r.OptimizedTotal)
			assert.Equal(t, r.TotalLoad-r.OptimizedTotal, r.Savings)
			assert.GreaterOrEqual(t, r.Savings, 0.0)
			assert.GreaterOrEqual(t, r.MachineLoadOpt, 0.0)
			assert.GreaterOrEqual(t, r.HVACLoadOpt, 0.0)
			assert.GreaterOrEqual(t, r.LightingLoadOpt, 0.0)
		}
	})
}

func TestOptimize_DoesNotMutateInput(t *testing.T) {
	records, err := Generate(1)
	require.NoError(t, err)

	before := make([]HourRecord, len(records))
	copy(before, records)

	Optimize(records)
	assert.Equal(t, before, records)
}

func TestOptimize_Empty(t *testing.T) {
	opt := Optimize(nil)
	assert.NotNil(t, opt)
	assert.Empty(t, opt)

	opt = Optimize([]HourRecord{})
	assert.Empty(t, opt)
}

func TestSummarize(t *testing.T) {
	opt, err := Simulate(1)
	require.NoError(t, err)

	s := Summarize(opt)
	assert.Equal(t, 24, s.Hours)
	assert.Equal(t, 200.0, s.TotalLoad)
	assert.Equal(t, 152.5, s.OptimizedTotal)
	assert.Equal(t, 47.5, s.Savings)
	assert.InDelta(t, 23.75, s.SavingsPercent, 1e-9)
	assert.InDelta(t, (s.TotalLoad-s.OptimizedTotal)/s.TotalLoad*100, s.SavingsPercent, 1e-12)
}

func TestSummarize_ZeroTotal(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Hours)
	assert.Equal(t, 0.0, s.SavingsPercent)

	s = Summarize([]OptimizedHourRecord{{}})
	assert.Equal(t, 1, s.Hours)
	assert.Equal(t, 0.0, s.SavingsPercent)
}

func TestSimulate_InvalidDays(t *testing.T) {
	_, err := Simulate(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHourOfDay(t *testing.T) {
	assert.Equal(t, 0, HourOfDay(0))
	assert.Equal(t, 23, HourOfDay(23))
	assert.Equal(t, 0, HourOfDay(24))
	assert.Equal(t, 12, HourOfDay(36))
}
