package planner

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/model"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	// An average year, leap days included.
	yearLength = time.Duration(365.25 * 24 * float64(time.Hour))

	maxPrecision = 10
)

// Metrics derives the time-allocation view from the stored settings at the
// planner's current time.
func (p *Planner) Metrics(ctx context.Context) (model.TimeMetrics, error) {
	s, err := p.Settings(ctx)
	if err != nil {
		return model.TimeMetrics{}, err
	}
	return ComputeMetrics(s, p.now().In(p.loc))
}

// ComputeMetrics derives the time-allocation view from s at now. Calendar
// arithmetic happens in now's location.
func ComputeMetrics(s model.UserSettings, now time.Time) (model.TimeMetrics, error) {
	loc := now.Location()
	birth, err := birthInstant(s, loc)
	if err != nil {
		return model.TimeMetrics{}, err
	}

	m := model.TimeMetrics{
		LifeExpectancy: s.LifeExpectancy(),
		Precision:      min(max(s.DecimalPrecision, 0), maxPrecision),
		MonthProgress:  percent(float64(now.Day()), float64(daysIn(now.Year(), now.Month(), loc))),
		DayProgress:    percent(float64(now.Hour()*60+now.Minute()), 24*60),
		ActiveClarity:  percent(24-s.TodaySleepTime, 24),
	}

	elapsed := now.Sub(birth)
	m.LifeProgress = 100 * float64(elapsed) / (float64(m.LifeExpectancy) * float64(yearLength))
	m.YearsElapsed = int(math.Floor(float64(elapsed) / float64(yearLength)))

	last := time.Date(now.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	if last.After(now) {
		last = last.AddDate(-1, 0, 0)
	}
	next := time.Date(last.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	m.YearProgress = percent(float64(now.Sub(last)), float64(next.Sub(last)))

	m.Anniversaries = make([]model.AnniversaryCountdown, 0, len(s.Anniversaries))
	for _, a := range s.Anniversaries {
		day, err := time.ParseInLocation(dateLayout, a.Date, loc)
		if err != nil {
			return model.TimeMetrics{}, errors.NewUserErrorWithField("anniversary", a.Date,
				"Invalid anniversary date", "Use YYYY-MM-DD")
		}
		m.Anniversaries = append(m.Anniversaries, model.AnniversaryCountdown{
			Anniversary: a,
			DaysLeft:    daysBetween(now, day),
		})
	}
	return m, nil
}

func birthInstant(s model.UserSettings, loc *time.Location) (time.Time, error) {
	date := strings.TrimSpace(s.BirthDate)
	if date == "" {
		date = model.DefaultSettings().BirthDate
	}
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, errors.NewUserErrorWithField("birthDate", s.BirthDate,
			"Invalid birth date", "Use YYYY-MM-DD")
	}

	clock := strings.TrimSpace(s.BirthTime)
	if clock == "" {
		return day, nil
	}
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, errors.NewUserErrorWithField("birthTime", s.BirthTime,
			"Invalid birth time", "Use HH:MM")
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

func percent(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// daysBetween counts calendar days from now's date to day's date.
func daysBetween(now, day time.Time) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
