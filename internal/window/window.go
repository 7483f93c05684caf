// Package window implements the Window Selector: enumeration of contiguous
// date ranges over daily scores, ranking, and overlap suppression.
package window

import (
	"math"
	"sort"
	"time"

	"github.com/lbrouwer/surfcast/internal/dberrors"
	"github.com/lbrouwer/surfcast/internal/models"
)

// DailyScore is one date's reduced daily score, used as the Selector's input
// domain once half-day rows have been collapsed.
type DailyScore struct {
	Date  time.Time // UTC midnight; calendar date only
	Score float64
}

// Window is a contiguous inclusive date range summarized by its statistics.
type Window struct {
	Start       time.Time
	End         time.Time
	Days        int
	AvgScore    float64
	TotalScore  float64
	Consistency float64 // standard deviation; lower is better
}

const defaultMaxOverlapDays = 2

// ReduceToDaily collapses half-day aggregate rows to one score per date by
// averaging morning and afternoon; dates with only one half keep that half's
// value (§4.6 step 1).
func ReduceToDaily(rows []models.HalfDayAggregateRow) []DailyScore {
	type acc struct {
		sum   float64
		count int
		date  time.Time
	}
	byDate := make(map[string]*acc)
	order := make([]string, 0)

	for _, r := range rows {
		a, ok := byDate[r.DateLocal]
		if !ok {
			d, err := time.Parse("2006-01-02", r.DateLocal)
			if err != nil {
				continue
			}
			a = &acc{date: d}
			byDate[r.DateLocal] = a
			order = append(order, r.DateLocal)
		}
		a.sum += r.MeanScore
		a.count++
	}

	sort.Strings(order)
	out := make([]DailyScore, 0, len(order))
	for _, k := range order {
		a := byDate[k]
		out = append(out, DailyScore{Date: a.date, Score: a.sum / float64(a.count)})
	}
	return out
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}

func windowStats(days []DailyScore, start, length int) Window {
	slice := days[start : start+length]
	scores := make([]float64, len(slice))
	var total float64
	for i, d := range slice {
		scores[i] = d.Score
		total += d.Score
	}
	avg := total / float64(len(slice))
	return Window{
		Start:       slice[0].Date,
		End:         slice[len(slice)-1].Date,
		Days:        length,
		AvgScore:    avg,
		TotalScore:  total,
		Consistency: stddev(scores),
	}
}

func overlapDays(a, b Window) int {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// Params bounds a SelectWindows call.
type Params struct {
	MinDays      int
	MaxDays      int
	MinScore     float64
	MaxOverlapDays int // 0 means "unset"; use defaultMaxOverlapDays
}

func (p Params) validate() error {
	if p.MinDays < 1 || p.MaxDays < p.MinDays {
		return dberrors.ErrInvalidInput
	}
	return nil
}

// SelectWindows enumerates all candidate windows of duration in
// [MinDays, MaxDays], filters by MinScore, ranks by (avg desc, consistency
// asc), de-duplicates overlapping candidates, and returns up to 10 (§4.6).
func SelectWindows(days []DailyScore, p Params) ([]Window, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	maxOverlap := p.MaxOverlapDays
	if maxOverlap == 0 {
		maxOverlap = defaultMaxOverlapDays
	}

	var candidates []Window
	n := len(days)
	for duration := p.MinDays; duration <= p.MaxDays; duration++ {
		for start := 0; start+duration <= n; start++ {
			w := windowStats(days, start, duration)
			if w.AvgScore < p.MinScore {
				continue
			}
			candidates = append(candidates, w)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].AvgScore != candidates[j].AvgScore {
			return candidates[i].AvgScore > candidates[j].AvgScore
		}
		return candidates[i].Consistency < candidates[j].Consistency
	})

	var accepted []Window
	for _, c := range candidates {
		ok := true
		for _, a := range accepted {
			if overlapDays(c, a) > maxOverlap {
				ok = false
				break
			}
		}
		if ok {
			accepted = append(accepted, c)
		}
		if len(accepted) == 10 {
			break
		}
	}
	return accepted, nil
}

// WeekendParams are the defaults for the weekend variant (§4.6).
var WeekendParams = Params{MinDays: 2, MaxDays: 4, MinScore: 3.0}

// IsWeekendDay reports whether t falls on Friday, Saturday, or Sunday.
func IsWeekendDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}

// SelectWeekendWindows restricts the daily-score domain to calendar
// Friday-Sunday runs before applying SelectWindows with WeekendParams.
func SelectWeekendWindows(days []DailyScore) ([]Window, error) {
	var weekendDays []DailyScore
	for _, d := range days {
		if IsWeekendDay(d.Date) {
			weekendDays = append(weekendDays, d)
		}
	}
	return SelectWindows(weekendDays, WeekendParams)
}

// ExtendLongWeekend attempts to extend a selected weekend window w by 1 then
// 2 days using the full daily-score domain. An extension is accepted iff the
// added days' mean >= 6.0 AND the extended window's mean exceeds w.AvgScore.
func ExtendLongWeekend(days []DailyScore, w Window) Window {
	index := make(map[time.Time]int, len(days))
	for i, d := range days {
		index[d.Date] = i
	}
	endIdx, ok := index[w.End]
	if !ok {
		return w
	}

	best := w
	for extend := 1; extend <= 2; extend++ {
		newEnd := endIdx + extend
		if newEnd >= len(days) {
			break
		}
		added := days[endIdx+1 : newEnd+1]
		var addedSum float64
		for _, a := range added {
			addedSum += a.Score
		}
		addedMean := addedSum / float64(len(added))
		if addedMean < 6.0 {
			break
		}

		startIdx := index[w.Start]
		extended := windowStats(days, startIdx, newEnd-startIdx+1)
		if extended.AvgScore > best.AvgScore {
			best = extended
		} else {
			break
		}
	}
	return best
}
