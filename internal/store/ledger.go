package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lbrouwer/surfcast/internal/database"
	"github.com/lbrouwer/surfcast/internal/dberrors"
	"github.com/lbrouwer/surfcast/internal/models"
)

var ledgerColumn = map[models.Layer]string{
	models.LayerWeather:      "weather_at",
	models.LayerMarine:       "marine_at",
	models.LayerDailyWeather: "daily_weather_at",
	models.LayerScored:       "scored_at",
	models.LayerHalfDay:      "half_day_at",
	models.LayerDailyScores:  "daily_scores_at",
}

// touchLedger stamps the freshness_ledger column for layer with writtenAt,
// creating the spot's ledger row if absent. conn is a database.DBConn so
// this can run either inside the caller's transaction or, in tests,
// directly against a *sql.DB. Callers hold the relevant write-lock stripe
// already.
func touchLedger(ctx context.Context, conn database.DBConn, spotID string, layer models.Layer, writtenAt time.Time) error {
	col, ok := ledgerColumn[layer]
	if !ok {
		return dberrors.ErrInvalidInput
	}

	if _, err := conn.ExecContext(ctx, `INSERT INTO freshness_ledger (spot_id) VALUES (?) ON CONFLICT(spot_id) DO NOTHING`, spotID); err != nil {
		return err
	}
	_, err := conn.ExecContext(ctx, `UPDATE freshness_ledger SET `+col+` = ? WHERE spot_id = ?`, writtenAt.UTC().Format(time.RFC3339), spotID)
	return err
}

// GetFreshnessLedger returns the ledger row for spotID. A spot with no
// ledger row yet returns a zero-valued ledger (every layer absent), not
// an error.
func (s *Store) GetFreshnessLedger(ctx context.Context, spotID string) (models.FreshnessLedger, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT weather_at, marine_at, daily_weather_at, scored_at, half_day_at, daily_scores_at
		FROM freshness_ledger WHERE spot_id = ?
	`, spotID)

	var weather, marine, dailyWeather, scored, halfDay, dailyScores sql.NullString
	err := row.Scan(&weather, &marine, &dailyWeather, &scored, &halfDay, &dailyScores)
	if err == sql.ErrNoRows {
		return models.FreshnessLedger{SpotID: spotID}, nil
	}
	if err != nil {
		return models.FreshnessLedger{}, err
	}

	ledger := models.FreshnessLedger{SpotID: spotID}
	ledger.Weather = parseNullableTime(weather)
	ledger.Marine = parseNullableTime(marine)
	ledger.DailyWeather = parseNullableTime(dailyWeather)
	ledger.Scored = parseNullableTime(scored)
	ledger.HalfDay = parseNullableTime(halfDay)
	ledger.DailyScores = parseNullableTime(dailyScores)
	return ledger, nil
}

func parseNullableTime(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
