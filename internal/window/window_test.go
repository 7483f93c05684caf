package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mkDays(scores []float64) []DailyScore {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]DailyScore, len(scores))
	for i, s := range scores {
		out[i] = DailyScore{Date: start.AddDate(0, 0, i), Score: s}
	}
	return out
}

func TestSelectWindows_RankingAndOverlapSuppression(t *testing.T) {
	days := mkDays([]float64{5, 7, 6, 4, 8, 7, 6, 5})

	windows, err := SelectWindows(days, Params{MinDays: 3, MaxDays: 4, MinScore: 5.5})
	assert.NoError(t, err)
	assert.NotEmpty(t, windows)

	// The highest-scoring 3-day window (index 4..6: 8,7,6) averages 7.0 and
	// must rank first; results must be sorted avg desc, consistency asc.
	top := windows[0]
	assert.InDelta(t, 7.0, top.AvgScore, 0.001)
	assert.Equal(t, 3, top.Days)

	for i := 1; i < len(windows); i++ {
		prev, cur := windows[i-1], windows[i]
		assert.True(t, prev.AvgScore > cur.AvgScore ||
			(prev.AvgScore == cur.AvgScore && prev.Consistency <= cur.Consistency))
	}

	// No accepted window overlaps another by more than the default
	// max_overlap_days (2 inclusive days).
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			assert.LessOrEqual(t, overlapDays(windows[i], windows[j]), defaultMaxOverlapDays)
		}
	}
}

func TestSelectWindows_Deterministic(t *testing.T) {
	days := mkDays([]float64{5, 7, 6, 4, 8, 7, 6, 5})
	p := Params{MinDays: 3, MaxDays: 4, MinScore: 5.5}

	a, err := SelectWindows(days, p)
	assert.NoError(t, err)
	b, err := SelectWindows(days, p)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSelectWindows_InvariantsHold(t *testing.T) {
	days := mkDays([]float64{5, 7, 6, 4, 8, 7, 6, 5})
	windows, err := SelectWindows(days, Params{MinDays: 3, MaxDays: 4, MinScore: 5.5})
	assert.NoError(t, err)

	for _, w := range windows {
		assert.GreaterOrEqual(t, w.AvgScore, 5.5)
		assert.GreaterOrEqual(t, w.Days, 3)
		assert.LessOrEqual(t, w.Days, 4)
	}

	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			assert.LessOrEqual(t, overlapDays(windows[i], windows[j]), defaultMaxOverlapDays)
		}
	}
}

func TestSelectWindows_InvalidParams(t *testing.T) {
	days := mkDays([]float64{5, 6, 7})
	_, err := SelectWindows(days, Params{MinDays: 5, MaxDays: 3, MinScore: 0})
	assert.Error(t, err)
}

func TestSelectWeekendWindows_RestrictsToFriSun(t *testing.T) {
	// 2026-01-02 is a Friday.
	days := mkDays([]float64{5, 7, 6, 4, 8, 7, 6, 5})
	windows, err := SelectWeekendWindows(days)
	assert.NoError(t, err)
	for _, w := range windows {
		assert.True(t, IsWeekendDay(w.Start))
	}
}
