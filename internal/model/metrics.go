package model

import "strconv"

// Life expectancy presets, in years.
const (
	PresetAverage = "average"
	PresetHealthy = "healthy"
	PresetCustom  = "custom"

	AverageLifeExpectancy = 73
	HealthyLifeExpectancy = 95
	DefaultLifeExpectancy = 85
)

// LifeExpectancy resolves the preset to a number of years. A custom value
// that was never set falls back to DefaultLifeExpectancy.
func (s UserSettings) LifeExpectancy() int {
	switch s.LifeExpectancyPreset {
	case PresetAverage:
		return AverageLifeExpectancy
	case PresetHealthy:
		return HealthyLifeExpectancy
	}
	if s.CustomLifeExpectancy > 0 {
		return s.CustomLifeExpectancy
	}
	return DefaultLifeExpectancy
}

// AnniversaryCountdown is an anniversary with the whole days left until it.
// DaysLeft is negative once the date has passed.
type AnniversaryCountdown struct {
	Anniversary
	DaysLeft int `json:"daysLeft"`
}

// TimeMetrics is the time-allocation view derived from the settings at one
// instant. Percentages run from 0 to 100.
type TimeMetrics struct {
	LifeProgress   float64 `json:"lifeProgress"`
	Precision      int     `json:"decimalPrecision"`
	YearsElapsed   int     `json:"yearsElapsed"`
	LifeExpectancy int     `json:"lifeExpectancy"`

	// YearProgress runs from the last birthday to the next one.
	YearProgress  int `json:"yearProgress"`
	MonthProgress int `json:"monthProgress"`
	DayProgress   int `json:"dayProgress"`

	// ActiveClarity is the share of the day not spent asleep.
	ActiveClarity int `json:"activeClarity"`

	Anniversaries []AnniversaryCountdown `json:"anniversaries"`
}

// LifeProgressText formats LifeProgress to the configured precision.
func (m TimeMetrics) LifeProgressText() string {
	return strconv.FormatFloat(m.LifeProgress, 'f', m.Precision, 64) + "%"
}
