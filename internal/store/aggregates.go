package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lbrouwer/surfcast/internal/database"
	"github.com/lbrouwer/surfcast/internal/models"
)

func insertHalfDayAggregateRow(ctx context.Context, conn database.DBConn, r models.HalfDayAggregateRow) error {
	_, err := conn.ExecContext(ctx, `
		INSERT INTO half_day_aggregates (spot_id, date_local, half, mean_score)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(spot_id, date_local, half) DO UPDATE SET mean_score = excluded.mean_score
	`, r.SpotID, r.DateLocal, string(r.Half), r.MeanScore)
	return err
}

// UpsertHalfDayAggregates replaces the half-day rows for spotID.
func (s *Store) UpsertHalfDayAggregates(ctx context.Context, spotID string, rows []models.HalfDayAggregateRow, writtenAt time.Time) error {
	for _, r := range rows {
		if err := validateHalfDayAggregateRow(r); err != nil {
			return err
		}
	}
	return s.withWriteLock(spotID, string(models.LayerHalfDay), func() error {
		return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM half_day_aggregates WHERE spot_id = ?`, spotID); err != nil {
				return err
			}
			for _, r := range rows {
				if err := insertHalfDayAggregateRow(ctx, tx, r); err != nil {
					return err
				}
			}
			return touchLedger(ctx, tx, spotID, models.LayerHalfDay, writtenAt)
		})
	})
}

// GetHalfDayAggregates returns every stored half-day row for spotID.
func (s *Store) GetHalfDayAggregates(ctx context.Context, spotID string) ([]models.HalfDayAggregateRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT spot_id, date_local, half, mean_score
		FROM half_day_aggregates WHERE spot_id = ? ORDER BY date_local ASC, half ASC
	`, spotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HalfDayAggregateRow
	for rows.Next() {
		var r models.HalfDayAggregateRow
		var half string
		if err := rows.Scan(&r.SpotID, &r.DateLocal, &half, &r.MeanScore); err != nil {
			return nil, err
		}
		r.Half = models.Half(half)
		out = append(out, r)
	}
	return out, rows.Err()
}

func insertDailyAggregateRow(ctx context.Context, conn database.DBConn, r models.DailyAggregateRow) error {
	_, err := conn.ExecContext(ctx, `
		INSERT INTO daily_aggregates (spot_id, date_local, mean_score, modal_rating, modal_wind_relationship, modal_summary)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(spot_id, date_local) DO UPDATE SET
			mean_score = excluded.mean_score,
			modal_rating = excluded.modal_rating,
			modal_wind_relationship = excluded.modal_wind_relationship,
			modal_summary = excluded.modal_summary
	`, r.SpotID, r.DateLocal, r.MeanScore, r.ModalRating, r.ModalWindRelationship, r.ModalSummary)
	return err
}

// UpsertDailyAggregates replaces the daily rows for spotID.
func (s *Store) UpsertDailyAggregates(ctx context.Context, spotID string, rows []models.DailyAggregateRow, writtenAt time.Time) error {
	for _, r := range rows {
		if err := validateDailyAggregateRow(r); err != nil {
			return err
		}
	}
	return s.withWriteLock(spotID, string(models.LayerDailyScores), func() error {
		return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM daily_aggregates WHERE spot_id = ?`, spotID); err != nil {
				return err
			}
			for _, r := range rows {
				if err := insertDailyAggregateRow(ctx, tx, r); err != nil {
					return err
				}
			}
			return touchLedger(ctx, tx, spotID, models.LayerDailyScores, writtenAt)
		})
	})
}

// GetDailyAggregates returns every stored daily row for spotID.
func (s *Store) GetDailyAggregates(ctx context.Context, spotID string) ([]models.DailyAggregateRow, error) {
	return getDailyAggregateRows(ctx, s.db, spotID)
}

func getDailyAggregateRows(ctx context.Context, conn database.DBConn, spotID string) ([]models.DailyAggregateRow, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT spot_id, date_local, mean_score, modal_rating, modal_wind_relationship, modal_summary
		FROM daily_aggregates WHERE spot_id = ? ORDER BY date_local ASC
	`, spotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DailyAggregateRow
	for rows.Next() {
		var r models.DailyAggregateRow
		if err := rows.Scan(&r.SpotID, &r.DateLocal, &r.MeanScore, &r.ModalRating, &r.ModalWindRelationship, &r.ModalSummary); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
