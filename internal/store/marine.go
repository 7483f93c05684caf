package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lbrouwer/surfcast/internal/database"
	"github.com/lbrouwer/surfcast/internal/models"
)

func insertHourlyMarineRow(ctx context.Context, conn database.DBConn, r models.HourlyMarineRow) error {
	_, err := conn.ExecContext(ctx, `
		INSERT INTO hourly_marine (spot_id, timestamp_utc, wave_height_m, wave_dir_deg, wave_period_s, sea_level_height_m)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(spot_id, timestamp_utc) DO UPDATE SET
			wave_height_m = excluded.wave_height_m,
			wave_dir_deg = excluded.wave_dir_deg,
			wave_period_s = excluded.wave_period_s,
			sea_level_height_m = excluded.sea_level_height_m
	`, r.SpotID, r.TimestampUTC.UTC().Format(time.RFC3339), r.WaveHeightM, r.WaveDirDeg, r.WavePeriodS, r.SeaLevelHeightM)
	return err
}

// UpsertHourlyMarine replaces the oceanographic rows for spotID.
func (s *Store) UpsertHourlyMarine(ctx context.Context, spotID string, rows []models.HourlyMarineRow, writtenAt time.Time) error {
	for _, r := range rows {
		if err := validateHourlyMarineRow(r); err != nil {
			return err
		}
	}
	return s.withWriteLock(spotID, string(models.LayerMarine), func() error {
		return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM hourly_marine WHERE spot_id = ?`, spotID); err != nil {
				return err
			}
			for _, r := range rows {
				if err := insertHourlyMarineRow(ctx, tx, r); err != nil {
					return err
				}
			}
			return touchLedger(ctx, tx, spotID, models.LayerMarine, writtenAt)
		})
	})
}

// GetHourlyMarine returns every stored oceanographic row for spotID,
// ordered by timestamp ascending.
func (s *Store) GetHourlyMarine(ctx context.Context, spotID string) ([]models.HourlyMarineRow, error) {
	return getHourlyMarineRows(ctx, s.db, spotID)
}

func getHourlyMarineRows(ctx context.Context, conn database.DBConn, spotID string) ([]models.HourlyMarineRow, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT spot_id, timestamp_utc, wave_height_m, wave_dir_deg, wave_period_s, sea_level_height_m
		FROM hourly_marine WHERE spot_id = ? ORDER BY timestamp_utc ASC
	`, spotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HourlyMarineRow
	for rows.Next() {
		var r models.HourlyMarineRow
		var ts string
		if err := rows.Scan(&r.SpotID, &ts, &r.WaveHeightM, &r.WaveDirDeg, &r.WavePeriodS, &r.SeaLevelHeightM); err != nil {
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
