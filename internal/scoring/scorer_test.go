package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/lbrouwer/surfcast/internal/models"
)

func ptr(f float64) *float64 { return &f }

// 0.914m converts to 2.9987ft, one hair under the 3ft band edge — the
// narrative this scenario was drawn from claims the next band up (4
// points, "Good"); the literal algorithm puts it just under the edge (3
// points, "Small"). Resolved in favor of the algorithm, same as DESIGN.md
// Open Question 5.
func TestScoreHour_FavorableCleanSwell(t *testing.T) {
	spot := models.Spot{
		SwellDirRange: models.DirRange{Min: 260, Max: 340},
		WindDirRange:  models.DirRange{Min: 45, Max: 135},
	}
	in := Inputs{
		WaveHeightM: ptr(0.914),
		WaveDirDeg:  ptr(290),
		WavePeriodS: ptr(12),
		WindSpeedKn: ptr(10),
		WindDirDeg:  ptr(60),
	}

	row := ScoreHour(in, spot)

	assert.Equal(t, 0, row.SwellDirPoints)
	assert.Equal(t, 2, row.WindPoints)
	assert.Equal(t, 3, row.WaveHeightPoints)
	assert.Equal(t, 1, row.WavePeriodPoints)
	assert.Equal(t, 6, row.TotalPoints)
	assert.Equal(t, "Small", row.SurfRating)
	assert.Equal(t, "favorable", row.WindRelationship)
}

func TestScoreHour_OnshoreSlop(t *testing.T) {
	spot := models.Spot{
		SwellDirRange: models.DirRange{Min: 200, Max: 340},
		WindDirRange:  models.DirRange{Min: 45, Max: 135},
	}
	in := Inputs{
		WaveHeightM: ptr(0.7),
		WaveDirDeg:  ptr(180),
		WavePeriodS: ptr(7),
		WindSpeedKn: ptr(18),
		WindDirDeg:  ptr(270),
	}

	row := ScoreHour(in, spot)

	// 180 deg is outside 200-340 but inside the 30 deg buffer: -1, not 0.
	assert.Equal(t, -1, row.SwellDirPoints)
	assert.Equal(t, -4, row.WindPoints)
	assert.Equal(t, 3, row.WaveHeightPoints)
	assert.Equal(t, -2, row.WavePeriodPoints)
	assert.Equal(t, 1, row.TotalPoints)
	assert.Equal(t, "Slop", row.SurfRating)
	assert.Equal(t, "unfavorable", row.WindRelationship)
}

func TestIsFavorableWind_WrappingRange(t *testing.T) {
	r := models.DirRange{Min: 340, Max: 60}

	assert.True(t, IsFavorableWind(10, r))
	assert.False(t, IsFavorableWind(200, r))
}

func TestScoreSwellDirection_BoundaryInclusive(t *testing.T) {
	r := models.DirRange{Min: 260, Max: 340}

	assert.Equal(t, 0, ScoreSwellDirection(260, r))
	assert.Equal(t, 0, ScoreSwellDirection(340, r))
}

func TestScoreWaveHeight_Boundaries(t *testing.T) {
	assert.Equal(t, 2, ScoreWaveHeight(1.0/3.28084))
	assert.Equal(t, 5, ScoreWaveHeight(5.0/3.28084))
}

func TestScoreHour_MissingInputYieldsUnknown(t *testing.T) {
	spot := models.Spot{
		SwellDirRange: models.DirRange{Min: 260, Max: 340},
		WindDirRange:  models.DirRange{Min: 45, Max: 135},
	}
	row := ScoreHour(Inputs{}, spot)

	assert.Equal(t, "Unknown", row.SurfRating)
	assert.Equal(t, "unknown", row.WindRelationship)
	assert.Equal(t, "Data unavailable", row.ConditionsSummary)
}

func TestScoreHour_Deterministic(t *testing.T) {
	spot := models.Spot{
		SwellDirRange: models.DirRange{Min: 260, Max: 340},
		WindDirRange:  models.DirRange{Min: 45, Max: 135},
	}
	in := Inputs{
		WaveHeightM: ptr(0.914),
		WaveDirDeg:  ptr(290),
		WavePeriodS: ptr(12),
		WindSpeedKn: ptr(10),
		WindDirDeg:  ptr(60),
	}

	a := ScoreHour(in, spot)
	b := ScoreHour(in, spot)
	assert.Equal(t, a, b)
}
