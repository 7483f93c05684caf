package scoring

import "fmt"

// favorableRating applies the favorable-wind rating lexicon. First match wins.
func favorableRating(heightFt, periodS float64) string {
	switch {
	case heightFt < 1:
		return "No surf"
	case heightFt < 3:
		return "Small"
	case heightFt >= 7 && periodS > 19:
		return "Epic"
	case heightFt >= 7 && periodS > 15:
		return "Firing"
	case heightFt > 5 && periodS > 13:
		return "Pumping"
	case heightFt >= 3 && periodS > 11:
		return "Good"
	case heightFt >= 3 && periodS >= 9 && periodS <= 11:
		return "Fun"
	case heightFt >= 3 && periodS < 9:
		return "Fair"
	default:
		return "Small"
	}
}

// unfavorableRating applies the unfavorable-wind rating lexicon. First match wins.
func unfavorableRating(heightFt, periodS float64) string {
	switch {
	case heightFt < 3 && periodS < 8:
		return "Slop"
	case heightFt >= 3 && heightFt <= 5 && periodS >= 8 && periodS <= 12:
		return "Mush"
	case heightFt >= 3 && periodS > 12:
		return "Messy"
	default:
		return "Meh"
	}
}

func summarize(rating, windRelationship string, windSpeedKn float64) string {
	return fmt.Sprintf("%s - %s %.0fkts", rating, windRelationship, windSpeedKn)
}

// RatingScore converts a rating string to a numeric score for sorting or
// comparison; higher is better. Unknown ratings score 0.
func RatingScore(rating string) int {
	scores := map[string]int{
		"Epic":    10,
		"Firing":  9,
		"Pumping": 8,
		"Good":    7,
		"Fun":     6,
		"Fair":    5,
		"Small":   3,
		"Messy":   3,
		"Mush":    2,
		"Slop":    1,
		"Meh":     1,
		"No surf": 0,
		"Unknown": 0,
	}
	if v, ok := scores[rating]; ok {
		return v
	}
	return 0
}
