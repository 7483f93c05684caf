package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lbrouwer/surfcast/internal/database"
	"github.com/lbrouwer/surfcast/internal/models"
)

func insertHourlyWeatherRow(ctx context.Context, conn database.DBConn, r models.HourlyWeatherRow) error {
	_, err := conn.ExecContext(ctx, `
		INSERT INTO hourly_weather (spot_id, timestamp_utc, temperature_c, wind_speed_kn, wind_dir_deg, wind_gusts_kn)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(spot_id, timestamp_utc) DO UPDATE SET
			temperature_c = excluded.temperature_c,
			wind_speed_kn = excluded.wind_speed_kn,
			wind_dir_deg = excluded.wind_dir_deg,
			wind_gusts_kn = excluded.wind_gusts_kn
	`, r.SpotID, r.TimestampUTC.UTC().Format(time.RFC3339), r.TemperatureC, r.WindSpeedKn, r.WindDirDeg, r.WindGustsKn)
	return err
}

// UpsertHourlyWeather replaces the atmospheric rows for spotID and updates
// the freshness ledger's weather_at timestamp in the same write lock.
func (s *Store) UpsertHourlyWeather(ctx context.Context, spotID string, rows []models.HourlyWeatherRow, writtenAt time.Time) error {
	for _, r := range rows {
		if err := validateHourlyWeatherRow(r); err != nil {
			return err
		}
	}
	return s.withWriteLock(spotID, string(models.LayerWeather), func() error {
		return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM hourly_weather WHERE spot_id = ?`, spotID); err != nil {
				return err
			}
			for _, r := range rows {
				if err := insertHourlyWeatherRow(ctx, tx, r); err != nil {
					return err
				}
			}
			return touchLedger(ctx, tx, spotID, models.LayerWeather, writtenAt)
		})
	})
}

// GetHourlyWeather returns every stored atmospheric row for spotID, ordered
// by timestamp ascending.
func (s *Store) GetHourlyWeather(ctx context.Context, spotID string) ([]models.HourlyWeatherRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT spot_id, timestamp_utc, temperature_c, wind_speed_kn, wind_dir_deg, wind_gusts_kn
		FROM hourly_weather WHERE spot_id = ? ORDER BY timestamp_utc ASC
	`, spotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HourlyWeatherRow
	for rows.Next() {
		var r models.HourlyWeatherRow
		var ts string
		if err := rows.Scan(&r.SpotID, &ts, &r.TemperatureC, &r.WindSpeedKn, &r.WindDirDeg, &r.WindGustsKn); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, err
		}
		r.TimestampUTC = t
		out = append(out, r)
	}
	return out, rows.Err()
}

func insertDailyWeatherRow(ctx context.Context, conn database.DBConn, r models.DailyWeatherRow) error {
	_, err := conn.ExecContext(ctx, `
		INSERT INTO daily_weather (spot_id, date_local, sunrise_utc, sunset_utc, daylight_seconds, temp_min_c, temp_max_c)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(spot_id, date_local) DO UPDATE SET
			sunrise_utc = excluded.sunrise_utc,
			sunset_utc = excluded.sunset_utc,
			daylight_seconds = excluded.daylight_seconds,
			temp_min_c = excluded.temp_min_c,
			temp_max_c = excluded.temp_max_c
	`, r.SpotID, r.DateLocal, r.SunriseUTC.UTC().Format(time.RFC3339), r.SunsetUTC.UTC().Format(time.RFC3339), r.DaylightSeconds, r.TempMinC, r.TempMaxC)
	return err
}

// UpsertDailyWeather replaces the daily atmospheric rows for spotID.
func (s *Store) UpsertDailyWeather(ctx context.Context, spotID string, rows []models.DailyWeatherRow, writtenAt time.Time) error {
	for _, r := range rows {
		if err := validateDailyWeatherRow(r); err != nil {
			return err
		}
	}
	return s.withWriteLock(spotID, string(models.LayerDailyWeather), func() error {
		return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM daily_weather WHERE spot_id = ?`, spotID); err != nil {
				return err
			}
			for _, r := range rows {
				if err := insertDailyWeatherRow(ctx, tx, r); err != nil {
					return err
				}
			}
			return touchLedger(ctx, tx, spotID, models.LayerDailyWeather, writtenAt)
		})
	})
}

// GetDailyWeather returns every stored daily atmospheric row for spotID,
// ordered by date ascending.
func (s *Store) GetDailyWeather(ctx context.Context, spotID string) ([]models.DailyWeatherRow, error) {
	return getDailyWeatherRows(ctx, s.db, spotID)
}

func getDailyWeatherRows(ctx context.Context, conn database.DBConn, spotID string) ([]models.DailyWeatherRow, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT spot_id, date_local, sunrise_utc, sunset_utc, daylight_seconds, temp_min_c, temp_max_c
		FROM daily_weather WHERE spot_id = ? ORDER BY date_local ASC
	`, spotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DailyWeatherRow
	for rows.Next() {
		var r models.DailyWeatherRow
		var sunrise, sunset string
		if err := rows.Scan(&r.SpotID, &r.DateLocal, &sunrise, &sunset, &r.DaylightSeconds, &r.TempMinC, &r.TempMaxC); err != nil {
			return nil, err
		}
		sr, err := time.Parse(time.RFC3339, sunrise)
		if err != nil {
			return nil, err
		}
		ss, err := time.Parse(time.RFC3339, sunset)
		if err != nil {
			return nil, err
		}
		r.SunriseUTC, r.SunsetUTC = sr, ss
		out = append(out, r)
	}
	return out, rows.Err()
}
