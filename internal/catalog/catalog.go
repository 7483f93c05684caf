// Package catalog holds the static, in-process spot list. It is immutable
// after startup and is the only process-wide state outside the Store.
package catalog

import "github.com/lbrouwer/surfcast/internal/models"

func ftPtr(v float64) *float64 { return &v }

// Spots is the fixed catalog of surf locations the system tracks.
var Spots = []models.Spot{
	{
		SpotID:          "supertubos",
		DisplayName:     "Supertubos",
		Region:          "Peniche, Portugal",
		Latitude:        39.3432,
		Longitude:       -9.3390,
		Timezone:        "Europe/Lisbon",
		SwellDirRange:   models.DirRange{Min: 260, Max: 340},
		WindDirRange:    models.DirRange{Min: 45, Max: 135},
		IdealSwellMinFt: ftPtr(3),
		IdealSwellMaxFt: ftPtr(8),
	},
	{
		SpotID:          "ericeira",
		DisplayName:     "Ribeira d'Ilhas",
		Region:          "Ericeira, Portugal",
		Latitude:        38.9716,
		Longitude:       -9.4203,
		Timezone:        "Europe/Lisbon",
		SwellDirRange:   models.DirRange{Min: 280, Max: 350},
		WindDirRange:    models.DirRange{Min: 30, Max: 110},
		IdealSwellMinFt: ftPtr(2),
		IdealSwellMaxFt: ftPtr(6),
	},
	{
		SpotID:          "hossegor",
		DisplayName:     "La Gravière",
		Region:          "Hossegor, France",
		Latitude:        43.6639,
		Longitude:       -1.4421,
		Timezone:        "Europe/Paris",
		SwellDirRange:   models.DirRange{Min: 250, Max: 330},
		WindDirRange:    models.DirRange{Min: 40, Max: 130},
		IdealSwellMinFt: ftPtr(4),
		IdealSwellMaxFt: ftPtr(10),
	},
	{
		SpotID:          "mundaka",
		DisplayName:     "Mundaka",
		Region:          "Basque Country, Spain",
		Latitude:        43.4070,
		Longitude:       -2.6988,
		Timezone:        "Europe/Madrid",
		SwellDirRange:   models.DirRange{Min: 320, Max: 20},
		WindDirRange:    models.DirRange{Min: 150, Max: 220},
		IdealSwellMinFt: ftPtr(3),
		IdealSwellMaxFt: ftPtr(8),
	},
	{
		SpotID:          "bundoran",
		DisplayName:     "The Peak",
		Region:          "Bundoran, Ireland",
		Latitude:        54.4897,
		Longitude:       -8.2814,
		Timezone:        "Europe/Dublin",
		SwellDirRange:   models.DirRange{Min: 270, Max: 340},
		WindDirRange:    models.DirRange{Min: 60, Max: 150},
		IdealSwellMinFt: ftPtr(4),
		IdealSwellMaxFt: ftPtr(12),
	},
}

// Find returns the catalog entry for spotID, or false if unknown.
func Find(spotID string) (models.Spot, bool) {
	for _, s := range Spots {
		if s.SpotID == spotID {
			return s, true
		}
	}
	return models.Spot{}, false
}

// IDs returns every spot_id in the catalog, in declared order.
func IDs() []string {
	ids := make([]string, len(Spots))
	for i, s := range Spots {
		ids[i] = s.SpotID
	}
	return ids
}
