package attendance

import (
	"math"
	"time"
)

type DailyStats struct {
	Date         string `json:"date"`
	TotalCount   int    `json:"total_count"`
	PresentCount int    `json:"present_count"`
	AbsentCount  int    `json:"absent_count"`
	LateCount    int    `json:"late_count"`
	Percentage   int    `json:"percentage"`
}

type MonthlyStats struct {
	Month             string `json:"month"`
	TrainingDays      int    `json:"training_days"`
	TotalRecords      int    `json:"total_records"`
	PresentRecords    int    `json:"present_records"`
	MonthlyPercentage int    `json:"monthly_percentage"`
}

// ComputeDailyStats summarizes one day's records for a coach.
func ComputeDailyStats(date time.Time, rows []Attendance) DailyStats {
	stats := DailyStats{Date: date.Format("2006-01-02")}
	for _, row := range rows {
		stats.TotalCount++
		if row.Present {
			stats.PresentCount++
		} else {
			stats.AbsentCount++
		}
		if row.Late {
			stats.LateCount++
		}
	}
	stats.Percentage = percentage(stats.PresentCount, stats.TotalCount)
	return stats
}

// ComputeMonthlyStats summarizes a month of records. Training days are
// distinct dates that have at least one record.
func ComputeMonthlyStats(month time.Time, rows []Attendance) MonthlyStats {
	stats := MonthlyStats{Month: month.Format("2006-01")}
	days := make(map[string]bool)
	for _, row := range rows {
		days[row.Date.Format("2006-01-02")] = true
		stats.TotalRecords++
		if row.Present {
			stats.PresentRecords++
		}
	}
	stats.TrainingDays = len(days)
	stats.MonthlyPercentage = percentage(stats.PresentRecords, stats.TotalRecords)
	return stats
}

// percentage returns 0 when total is 0 so empty months never divide by
// zero.
func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
