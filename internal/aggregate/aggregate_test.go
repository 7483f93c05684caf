package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/lbrouwer/surfcast/internal/models"
)

func TestHalfDay_DaylightMask(t *testing.T) {
	loc, err := time.LoadLocation("UTC")
	assert.NoError(t, err)

	date := time.Date(2026, 7, 15, 0, 0, 0, 0, loc)
	mk := func(hour, points int) models.ScoredHourlyRow {
		return models.ScoredHourlyRow{
			TimestampUTC: time.Date(2026, 7, 15, hour, 0, 0, 0, loc),
			TotalPoints:  points,
		}
	}

	scored := []models.ScoredHourlyRow{
		mk(5, 8),
		mk(7, 6),
		mk(9, 4),
		mk(13, 5),
		mk(17, 7),
		mk(20, 9),
	}

	daily := []models.DailyWeatherRow{
		{
			DateLocal:  date.Format("2006-01-02"),
			SunriseUTC: time.Date(2026, 7, 15, 6, 30, 0, 0, loc),
			SunsetUTC:  time.Date(2026, 7, 15, 19, 30, 0, 0, loc),
		},
	}

	rows := HalfDay(scored, daily, loc)

	var morning, afternoon *models.HalfDayAggregateRow
	for i := range rows {
		switch rows[i].Half {
		case models.HalfMorning:
			morning = &rows[i]
		case models.HalfAfternoon:
			afternoon = &rows[i]
		}
	}

	if assert.NotNil(t, morning) {
		assert.Equal(t, 5.00, morning.MeanScore)
	}
	if assert.NotNil(t, afternoon) {
		assert.Equal(t, 6.00, afternoon.MeanScore)
	}
}

func TestDaylightRetained_SunriseBoundary(t *testing.T) {
	loc, _ := time.LoadLocation("UTC")
	daily := &models.DailyWeatherRow{
		SunriseUTC: time.Date(2026, 7, 15, 6, 30, 0, 0, loc),
		SunsetUTC:  time.Date(2026, 7, 15, 19, 30, 0, 0, loc),
	}

	atSunrise := time.Date(2026, 7, 15, 6, 30, 0, 0, loc)
	beforeSunrise := atSunrise.Add(-1 * time.Second)

	assert.True(t, DaylightRetained(atSunrise, loc, daily))
	assert.False(t, DaylightRetained(beforeSunrise, loc, daily))
}

func TestMode_TieBreakLexicographicallySmallest(t *testing.T) {
	assert.Equal(t, "Fair", mode([]string{"Good", "Fair"}))
}
