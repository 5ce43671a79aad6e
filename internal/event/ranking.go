package event

import (
	"sort"
	"strings"
)

// Rank computes the ranking for an event from its performance rows.
//
// Rows with a blank measurement are excluded entirely. Each student is
// reduced to their single best row (lowest value for running, highest for
// field disciplines), the survivors are sorted by that value (ascending
// for running, descending otherwise), and dense ranks 1..N are assigned.
// Ties keep their first-encounter order and receive distinct consecutive
// ranks. No valid rows yields an empty ranking, not an error.
func Rank(eventType EventType, performances []Performance) []RankedResult {
	lowerWins := eventType.LowerIsBetter()

	// Best row per student, preserving first-encounter order for stable ties.
	bestByStudent := make(map[uint]Performance)
	order := make([]uint, 0, len(performances))
	for _, p := range performances {
		if strings.TrimSpace(p.Measurement) == "" {
			continue
		}
		current, seen := bestByStudent[p.StudentID]
		if !seen {
			bestByStudent[p.StudentID] = p
			order = append(order, p.StudentID)
			continue
		}
		if (lowerWins && p.Value < current.Value) || (!lowerWins && p.Value > current.Value) {
			bestByStudent[p.StudentID] = p
		}
	}

	results := make([]RankedResult, 0, len(order))
	for _, studentID := range order {
		p := bestByStudent[studentID]
		results = append(results, RankedResult{
			StudentID:     p.StudentID,
			StudentName:   p.Student.Name,
			PerformanceID: p.ID,
			Measurement:   p.Measurement,
			Value:         p.Value,
			Round:         p.Round,
			PersonalBest:  p.PersonalBest,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if lowerWins {
			return results[i].Value < results[j].Value
		}
		return results[i].Value > results[j].Value
	})

	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// IsPersonalBest reports whether value strictly beats every entry in the
// student's prior history for the same discipline category. An empty
// history counts as a personal best. The flag is decided once, at write
// time; later rows never rewrite it.
func IsPersonalBest(eventType EventType, value float64, history []float64) bool {
	lowerWins := eventType.LowerIsBetter()
	for _, prior := range history {
		if lowerWins && value >= prior {
			return false
		}
		if !lowerWins && value <= prior {
			return false
		}
	}
	return true
}
