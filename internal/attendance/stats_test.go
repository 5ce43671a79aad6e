package attendance

import (
	"testing"
	"time"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return parsed
}

func row(t *testing.T, studentID uint, date string, present, late bool) Attendance {
	return Attendance{
		StudentID: studentID,
		Date:      day(t, date),
		Present:   present,
		Late:      late,
	}
}

func TestComputeDailyStats(t *testing.T) {
	date := day(t, "2026-03-02")
	rows := []Attendance{
		row(t, 1, "2026-03-02", true, false),
		row(t, 2, "2026-03-02", true, true),
		row(t, 3, "2026-03-02", false, false),
	}

	stats := ComputeDailyStats(date, rows)

	if stats.Date != "2026-03-02" {
		t.Errorf("date = %s, want 2026-03-02", stats.Date)
	}
	if stats.TotalCount != 3 || stats.PresentCount != 2 || stats.AbsentCount != 1 || stats.LateCount != 1 {
		t.Errorf("counts = total %d present %d absent %d late %d, want 3/2/1/1",
			stats.TotalCount, stats.PresentCount, stats.AbsentCount, stats.LateCount)
	}
	if stats.Percentage != 67 {
		t.Errorf("percentage = %d, want 67 (2/3 rounded)", stats.Percentage)
	}
}

func TestComputeDailyStatsEmptyDay(t *testing.T) {
	stats := ComputeDailyStats(day(t, "2026-03-02"), nil)

	if stats.TotalCount != 0 {
		t.Errorf("total = %d, want 0", stats.TotalCount)
	}
	if stats.Percentage != 0 {
		t.Errorf("percentage for empty day = %d, want 0", stats.Percentage)
	}
}

func TestComputeMonthlyStats(t *testing.T) {
	month := day(t, "2026-03-01")
	rows := []Attendance{
		// Two training days; the 2nd has two records, the 9th one.
		row(t, 1, "2026-03-02", true, false),
		row(t, 2, "2026-03-02", false, false),
		row(t, 1, "2026-03-09", true, false),
	}

	stats := ComputeMonthlyStats(month, rows)

	if stats.Month != "2026-03" {
		t.Errorf("month = %s, want 2026-03", stats.Month)
	}
	if stats.TrainingDays != 2 {
		t.Errorf("training days = %d, want 2 (distinct dates)", stats.TrainingDays)
	}
	if stats.TotalRecords != 3 || stats.PresentRecords != 2 {
		t.Errorf("records = total %d present %d, want 3/2", stats.TotalRecords, stats.PresentRecords)
	}
	if stats.MonthlyPercentage != 67 {
		t.Errorf("monthly percentage = %d, want 67", stats.MonthlyPercentage)
	}
}

func TestComputeMonthlyStatsEmptyMonth(t *testing.T) {
	stats := ComputeMonthlyStats(day(t, "2026-03-01"), nil)

	if stats.TrainingDays != 0 || stats.TotalRecords != 0 || stats.PresentRecords != 0 {
		t.Errorf("empty month stats = %+v, want zeros", stats)
	}
	if stats.MonthlyPercentage != 0 {
		t.Errorf("percentage for empty month = %d, want 0 (never a division error)", stats.MonthlyPercentage)
	}
}

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		part, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := percentage(tt.part, tt.total); got != tt.want {
			t.Errorf("percentage(%d, %d) = %d, want %d", tt.part, tt.total, got, tt.want)
		}
	}
}
