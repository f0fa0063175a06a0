package model

// Anniversary is a user-defined date to count down to.
type Anniversary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// UserSettings holds the time-allocation configuration.
type UserSettings struct {
	Language             string        `json:"language"`
	BirthDate            string        `json:"birthDate"`
	BirthTime            string        `json:"birthTime"`
	LifeExpectancyPreset string        `json:"lifeExpectancyPreset"`
	CustomLifeExpectancy int           `json:"customLifeExpectancy"`
	SleepOffset          float64       `json:"sleepOffset"`
	TodaySleepTime       float64       `json:"todaySleepTime"`
	TodayWorkTime        float64       `json:"todayWorkTime"`
	WorkStart            string        `json:"workStart"`
	WorkEnd              string        `json:"workEnd"`
	DecimalPrecision     int           `json:"decimalPrecision"`
	ProgressBarStyle     string        `json:"progressBarStyle"`
	SoundEnabled         bool          `json:"soundEnabled"`
	GravityEnabled       bool          `json:"gravityEnabled"`
	Anniversaries        []Anniversary `json:"anniversaries"`
}

// DefaultSettings returns the settings of a fresh store.
func DefaultSettings() UserSettings {
	return UserSettings{
		Language:             "zh-TW",
		BirthDate:            "1999-01-01",
		BirthTime:            "08:30",
		LifeExpectancyPreset: "custom",
		CustomLifeExpectancy: 85,
		SleepOffset:          8,
		TodaySleepTime:       8,
		TodayWorkTime:        8,
		WorkStart:            "09:00",
		WorkEnd:              "18:00",
		DecimalPrecision:     6,
		ProgressBarStyle:     "linear",
		SoundEnabled:         true,
		GravityEnabled:       false,
		Anniversaries: []Anniversary{
			{ID: "1", Name: "Graduation", Date: "2026-06-15"},
			{ID: "2", Name: "First Home", Date: "2028-10-01"},
		},
	}
}
