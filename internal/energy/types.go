package energy

const (
	// HoursPerDay is the number of simulated hours in one day
	HoursPerDay = 24

	// BaselineLoad is the fixed background draw added to every hour (kWh)
	BaselineLoad = 1.0

	// Day-count bounds offered by the dashboard
	MinDays     = 1
	MaxDays     = 7
	DefaultDays = 2

	// DefaultTableRows is how many rows the dashboard table shows
	DefaultTableRows = 10
)

// HourRecord is one simulated hour of building consumption
type HourRecord struct {
	HourIndex    int     `json:"hour"`
	Occupied     bool    `json:"occupancy"`
	TemperatureC float64 `json:"temp"`
	MachineLoad  float64 `json:"machine1"`
	HVACLoad     float64 `json:"hvac"`
	LightingLoad float64 `json:"lighting"`
	TotalLoad    float64 `json:"total_kwh"`
}

// OptimizedHourRecord adds the rule-adjusted loads to an hour
type OptimizedHourRecord struct {
	HourRecord
	MachineLoadOpt  float64 `json:"machine1_opt"`
	HVACLoadOpt     float64 `json:"hvac_opt"`
	LightingLoadOpt float64 `json:"lighting_opt"`
	OptimizedTotal  float64 `json:"optimized_kwh"`
	Savings         float64 `json:"savings"`
}

// Summary holds aggregate totals over a simulated range
type Summary struct {
	Hours          int     `json:"hours"`
	TotalLoad      float64 `json:"total_kwh"`
	OptimizedTotal float64 `json:"optimized_kwh"`
	Savings        float64 `json:"savings_kwh"`
	SavingsPercent float64 `json:"savings_percent"`
}

// Settings are the persisted dashboard preferences
type Settings struct {
	ID        string `json:"id"`
	Days      int    `json:"days"`
	TableRows int    `json:"table_rows"`
}

// DefaultSettings returns the preferences used before anything is saved
func DefaultSettings(id string) *Settings {
	return &Settings{
		ID:        id,
		Days:      DefaultDays,
		TableRows: DefaultTableRows,
	}
}
