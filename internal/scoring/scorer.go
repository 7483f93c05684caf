// Package scoring implements the pure per-hour Scorer: component point
// tables, direction-range membership, and the rating lexicons.
package scoring

import "github.com/lbrouwer/surfcast/internal/models"

// semiDirectBufferDeg is the buffer around a directional preference range
// within which a direction is "semi-direct" rather than fully in or out.
// Preserved from the source without added rationale (see DESIGN.md Open
// Question 3).
const semiDirectBufferDeg = 30.0

// Inputs is one hour of merged environmental readings. A nil pointer means
// the value is absent for that hour.
type Inputs struct {
	WaveHeightM *float64
	WaveDirDeg  *float64
	WavePeriodS *float64
	WindSpeedKn *float64
	WindDirDeg  *float64
}

func normalize(deg float64) float64 {
	d := deg
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}

// in reports whether direction theta lies within range r, modulo 360,
// handling the wrap-around case where r.Min > r.Max.
func in(r models.DirRange, theta float64) bool {
	theta = normalize(theta)
	min, max := normalize(r.Min), normalize(r.Max)
	if max < min {
		return theta >= min || theta <= max
	}
	return theta >= min && theta <= max
}

// expand returns r widened by buffer degrees on each side.
func expand(r models.DirRange, buffer float64) models.DirRange {
	return models.DirRange{Min: r.Min - buffer, Max: r.Max + buffer}
}

// ScoreSwellDirection scores swell direction points: 0 if directly in range,
// -1 if within the buffered range but not the core, -10 otherwise.
func ScoreSwellDirection(waveDirDeg float64, r models.DirRange) int {
	if in(r, waveDirDeg) {
		return 0
	}
	if in(expand(r, semiDirectBufferDeg), waveDirDeg) {
		return -1
	}
	return -10
}

// IsFavorableWind reports whether windDirDeg lies within the spot's
// wind_dir_range, wrap-aware.
func IsFavorableWind(windDirDeg float64, r models.DirRange) bool {
	return in(r, windDirDeg)
}

// ScoreWind scores wind points per the favorable/unfavorable speed tables.
func ScoreWind(windDirDeg, windSpeedKn float64, r models.DirRange) int {
	if IsFavorableWind(windDirDeg, r) {
		switch {
		case windSpeedKn < 5:
			return 2
		case windSpeedKn <= 12:
			return 2
		case windSpeedKn <= 20:
			return 1
		case windSpeedKn <= 30:
			return 0
		case windSpeedKn <= 40:
			return -1
		default:
			return -3
		}
	}
	switch {
	case windSpeedKn < 3:
		return 1
	case windSpeedKn <= 6:
		return 0
	case windSpeedKn <= 10:
		return -1
	case windSpeedKn <= 20:
		return -4
	default:
		return -6
	}
}

// ScoreWaveHeight scores wave height points from meters.
func ScoreWaveHeight(waveHeightM float64) int {
	ft := toFeet(waveHeightM)
	switch {
	case ft < 1:
		return 1
	case ft < 2:
		return 2
	case ft < 3:
		return 3
	case ft < 5:
		return 4
	default:
		return 5
	}
}

// ScoreWavePeriod scores wave period points from seconds.
func ScoreWavePeriod(periodS float64) int {
	switch {
	case periodS < 6:
		return -4
	case periodS < 8:
		return -2
	case periodS < 10:
		return -1
	case periodS < 11.5:
		return 0
	case periodS < 14:
		return 1
	default:
		return 2
	}
}

// toFeet converts meters to feet using the conversion factor used throughout
// the scoring pipeline.
func toFeet(m float64) float64 {
	return m * 3.28084
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScoreHour is the pure function score_hour(inputs, spot) → ScoredHour.
// Missing inputs degrade to the "Unknown" rating with zeroed component
// points, per §4.3's edge-case rule; it never returns an error.
func ScoreHour(in_ Inputs, spot models.Spot) models.ScoredHourlyRow {
	row := models.ScoredHourlyRow{}

	if in_.WaveHeightM == nil || in_.WaveDirDeg == nil || in_.WavePeriodS == nil ||
		in_.WindSpeedKn == nil || in_.WindDirDeg == nil {
		row.SurfRating = "Unknown"
		row.WindRelationship = "unknown"
		row.ConditionsSummary = "Data unavailable"
		row.TotalPoints = clamp(0, 1, 10)
		return row
	}

	waveHeightM := *in_.WaveHeightM
	waveDirDeg := *in_.WaveDirDeg
	periodS := *in_.WavePeriodS
	windSpeedKn := *in_.WindSpeedKn
	windDirDeg := *in_.WindDirDeg

	row.WaveHeightM = waveHeightM
	row.WaveDirDeg = waveDirDeg
	row.WavePeriodS = periodS
	row.WindSpeedKn = windSpeedKn
	row.WindDirDeg = windDirDeg
	row.WaveHeightFt = toFeet(waveHeightM)

	row.SwellDirPoints = ScoreSwellDirection(waveDirDeg, spot.SwellDirRange)
	row.WindPoints = ScoreWind(windDirDeg, windSpeedKn, spot.WindDirRange)
	row.WaveHeightPoints = ScoreWaveHeight(waveHeightM)
	row.WavePeriodPoints = ScoreWavePeriod(periodS)

	raw := row.SwellDirPoints + row.WindPoints + row.WaveHeightPoints + row.WavePeriodPoints
	row.TotalPoints = clamp(raw, 1, 10)

	favorable := IsFavorableWind(windDirDeg, spot.WindDirRange)
	if favorable {
		row.WindRelationship = "favorable"
		row.SurfRating = favorableRating(row.WaveHeightFt, periodS)
	} else {
		row.WindRelationship = "unfavorable"
		row.SurfRating = unfavorableRating(row.WaveHeightFt, periodS)
	}
	row.ConditionsSummary = summarize(row.SurfRating, row.WindRelationship, windSpeedKn)

	return row
}
