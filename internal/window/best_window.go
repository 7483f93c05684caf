package window

// BestWindow is a supplemental entry point (not part of the core invariant
// set in §8) that recommends a single best-effort window instead of a
// ranked list: for each 2-day run of consecutive dates, greedily expand
// forward and then backward over consecutive days scoring no more than 1.5
// points below that run's 2-day average (the threshold is not recomputed as
// the window grows), capped at min(maxWindowDays, floor(initial 2-day
// average)), and keep the expanded window with the highest average.
func BestWindow(days []DailyScore, maxWindowDays int) (Window, bool) {
	if len(days) < 2 {
		return Window{}, false
	}

	var best Window
	found := false

	for i := 0; i+1 < len(days); i++ {
		if days[i+1].Date.Sub(days[i].Date).Hours() != 24 {
			continue
		}
		initial := windowStats(days, i, 2)

		scoreBasedMax := int(initial.AvgScore)
		effectiveMax := maxWindowDays
		if scoreBasedMax < effectiveMax {
			effectiveMax = scoreBasedMax
		}
		if effectiveMax < 2 {
			continue
		}
		if found && initial.AvgScore <= best.AvgScore {
			continue
		}

		threshold := initial.AvgScore - 1.5
		startIdx, endIdx := i, i+1

		for j := i + 2; j < len(days); j++ {
			if endIdx-startIdx+2 > effectiveMax {
				break
			}
			if days[j].Date.Sub(days[endIdx].Date).Hours() != 24 {
				break
			}
			if days[j].Score < threshold {
				break
			}
			endIdx = j
		}
		for j := i - 1; j >= 0; j-- {
			if endIdx-j+1 > effectiveMax {
				break
			}
			if days[startIdx].Date.Sub(days[j].Date).Hours() != 24 {
				break
			}
			if days[j].Score < threshold {
				break
			}
			startIdx = j
		}

		candidate := windowStats(days, startIdx, endIdx-startIdx+1)
		if candidate.Days < 2 || candidate.Days > effectiveMax {
			continue
		}
		if !found || candidate.AvgScore > best.AvgScore {
			best = candidate
			found = true
		}
	}

	return best, found
}
