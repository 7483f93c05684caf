package store

import (
	"context"
	"database/sql"

	"github.com/lbrouwer/surfcast/internal/database"
	"github.com/lbrouwer/surfcast/internal/models"
)

// DetailSnapshot is the set of rows forecastview.Detail needs to compose a
// detailed view, read together so a concurrent refresh cascade can never
// produce a daily aggregate row whose matching scored-hour or daily-weather
// rows haven't landed yet (or vice versa).
type DetailSnapshot struct {
	DailyAggregates []models.DailyAggregateRow
	DailyWeather    []models.DailyWeatherRow
	ScoredHourly    []models.ScoredHourlyRow
	HourlyMarine    []models.HourlyMarineRow
}

// GetDetailSnapshot reads the four tables behind the detailed view inside a
// single transaction, giving the caller a consistent point-in-time snapshot
// instead of four independent reads interleaved with a writer.
func (s *Store) GetDetailSnapshot(ctx context.Context, spotID string) (DetailSnapshot, error) {
	// Serializable rather than ReadOnly: modernc.org/sqlite's single-writer
	// connection (store.go caps MaxOpenConns at 1) has no distinct read-only
	// transaction mode, but an explicit serializable isolation level pins
	// these four reads to one consistent snapshot even if that constraint
	// ever loosens.
	var snap DetailSnapshot
	err := database.WithTransactionOptions(ctx, s.db, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(tx *sql.Tx) error {
		var err error
		if snap.DailyAggregates, err = getDailyAggregateRows(ctx, tx, spotID); err != nil {
			return err
		}
		if snap.DailyWeather, err = getDailyWeatherRows(ctx, tx, spotID); err != nil {
			return err
		}
		if snap.ScoredHourly, err = getScoredHourlyRows(ctx, tx, spotID); err != nil {
			return err
		}
		if snap.HourlyMarine, err = getHourlyMarineRows(ctx, tx, spotID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return DetailSnapshot{}, err
	}
	return snap, nil
}
