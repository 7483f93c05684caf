package store

import (
	"context"
	"fmt"

	"github.com/lbrouwer/surfcast/internal/database"
	"github.com/lbrouwer/surfcast/internal/models"
)

// UpsertSpot writes the catalog entry for one spot, replacing any prior
// entry with the same spot_id.
func (s *Store) UpsertSpot(ctx context.Context, spot models.Spot) error {
	if err := validateSpot(spot); err != nil {
		return err
	}
	return s.withWriteLock(spot.SpotID, "spot", func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO spots (
				spot_id, display_name, region, latitude, longitude, timezone,
				swell_dir_min, swell_dir_max, wind_dir_min, wind_dir_max,
				ideal_swell_min_ft, ideal_swell_max_ft
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(spot_id) DO UPDATE SET
				display_name = excluded.display_name,
				region = excluded.region,
				latitude = excluded.latitude,
				longitude = excluded.longitude,
				timezone = excluded.timezone,
				swell_dir_min = excluded.swell_dir_min,
				swell_dir_max = excluded.swell_dir_max,
				wind_dir_min = excluded.wind_dir_min,
				wind_dir_max = excluded.wind_dir_max,
				ideal_swell_min_ft = excluded.ideal_swell_min_ft,
				ideal_swell_max_ft = excluded.ideal_swell_max_ft
		`,
			spot.SpotID, spot.DisplayName, spot.Region, spot.Latitude, spot.Longitude, spot.Timezone,
			spot.SwellDirRange.Min, spot.SwellDirRange.Max, spot.WindDirRange.Min, spot.WindDirRange.Max,
			spot.IdealSwellMinFt, spot.IdealSwellMaxFt,
		)
		return err
	})
}

// GetSpot returns the catalog entry for spotID.
func (s *Store) GetSpot(ctx context.Context, spotID string) (models.Spot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT spot_id, display_name, region, latitude, longitude, timezone,
		       swell_dir_min, swell_dir_max, wind_dir_min, wind_dir_max,
		       ideal_swell_min_ft, ideal_swell_max_ft
		FROM spots WHERE spot_id = ?
	`, spotID)

	var sp models.Spot
	err := row.Scan(
		&sp.SpotID, &sp.DisplayName, &sp.Region, &sp.Latitude, &sp.Longitude, &sp.Timezone,
		&sp.SwellDirRange.Min, &sp.SwellDirRange.Max, &sp.WindDirRange.Min, &sp.WindDirRange.Max,
		&sp.IdealSwellMinFt, &sp.IdealSwellMaxFt,
	)
	if err != nil {
		if wrapped := database.WrapNotFound(err); database.IsNotFound(wrapped) {
			return models.Spot{}, fmt.Errorf("spot %q: %w", spotID, wrapped)
		}
		return models.Spot{}, err
	}
	return sp, nil
}

// ListSpots returns every catalog entry.
func (s *Store) ListSpots(ctx context.Context) ([]models.Spot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT spot_id, display_name, region, latitude, longitude, timezone,
		       swell_dir_min, swell_dir_max, wind_dir_min, wind_dir_max,
		       ideal_swell_min_ft, ideal_swell_max_ft
		FROM spots ORDER BY spot_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Spot
	for rows.Next() {
		var sp models.Spot
		if err := rows.Scan(
			&sp.SpotID, &sp.DisplayName, &sp.Region, &sp.Latitude, &sp.Longitude, &sp.Timezone,
			&sp.SwellDirRange.Min, &sp.SwellDirRange.Max, &sp.WindDirRange.Min, &sp.WindDirRange.Max,
			&sp.IdealSwellMinFt, &sp.IdealSwellMaxFt,
		); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}
