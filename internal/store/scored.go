package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lbrouwer/surfcast/internal/database"
	"github.com/lbrouwer/surfcast/internal/models"
)

func insertScoredHourlyRow(ctx context.Context, conn database.DBConn, r models.ScoredHourlyRow) error {
	_, err := conn.ExecContext(ctx, `
		INSERT INTO scored_hourly (
			spot_id, timestamp_utc, wave_height_m, wave_dir_deg, wave_period_s, wind_speed_kn, wind_dir_deg,
			swell_dir_points, wind_points, wave_height_points, wave_period_points, total_points,
			surf_rating, wind_relationship, wave_height_ft, conditions_summary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(spot_id, timestamp_utc) DO UPDATE SET
			wave_height_m = excluded.wave_height_m,
			wave_dir_deg = excluded.wave_dir_deg,
			wave_period_s = excluded.wave_period_s,
			wind_speed_kn = excluded.wind_speed_kn,
			wind_dir_deg = excluded.wind_dir_deg,
			swell_dir_points = excluded.swell_dir_points,
			wind_points = excluded.wind_points,
			wave_height_points = excluded.wave_height_points,
			wave_period_points = excluded.wave_period_points,
			total_points = excluded.total_points,
			surf_rating = excluded.surf_rating,
			wind_relationship = excluded.wind_relationship,
			wave_height_ft = excluded.wave_height_ft,
			conditions_summary = excluded.conditions_summary
	`,
		r.SpotID, r.TimestampUTC.UTC().Format(time.RFC3339), r.WaveHeightM, r.WaveDirDeg, r.WavePeriodS, r.WindSpeedKn, r.WindDirDeg,
		r.SwellDirPoints, r.WindPoints, r.WaveHeightPoints, r.WavePeriodPoints, r.TotalPoints,
		r.SurfRating, r.WindRelationship, r.WaveHeightFt, r.ConditionsSummary,
	)
	return err
}

// UpsertScoredHourly replaces the scored-hour rows for spotID.
func (s *Store) UpsertScoredHourly(ctx context.Context, spotID string, rows []models.ScoredHourlyRow, writtenAt time.Time) error {
	for _, r := range rows {
		if err := validateScoredHourlyRow(r); err != nil {
			return err
		}
	}
	return s.withWriteLock(spotID, string(models.LayerScored), func() error {
		return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM scored_hourly WHERE spot_id = ?`, spotID); err != nil {
				return err
			}
			for _, r := range rows {
				if err := insertScoredHourlyRow(ctx, tx, r); err != nil {
					return err
				}
			}
			return touchLedger(ctx, tx, spotID, models.LayerScored, writtenAt)
		})
	})
}

// GetScoredHourly returns every stored scored row for spotID, ordered by
// timestamp ascending.
func (s *Store) GetScoredHourly(ctx context.Context, spotID string) ([]models.ScoredHourlyRow, error) {
	return getScoredHourlyRows(ctx, s.db, spotID)
}

func getScoredHourlyRows(ctx context.Context, conn database.DBConn, spotID string) ([]models.ScoredHourlyRow, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT spot_id, timestamp_utc, wave_height_m, wave_dir_deg, wave_period_s, wind_speed_kn, wind_dir_deg,
		       swell_dir_points, wind_points, wave_height_points, wave_period_points, total_points,
		       surf_rating, wind_relationship, wave_height_ft, conditions_summary
		FROM scored_hourly WHERE spot_id = ? ORDER BY timestamp_utc ASC
	`, spotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ScoredHourlyRow
	for rows.Next() {
		var r models.ScoredHourlyRow
		var ts string
		if err := rows.Scan(
			&r.SpotID, &ts, &r.WaveHeightM, &r.WaveDirDeg, &r.WavePeriodS, &r.WindSpeedKn, &r.WindDirDeg,
			&r.SwellDirPoints, &r.WindPoints, &r.WaveHeightPoints, &r.WavePeriodPoints, &r.TotalPoints,
			&r.SurfRating, &r.WindRelationship, &r.WaveHeightFt, &r.ConditionsSummary,
		); err != nil {
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
