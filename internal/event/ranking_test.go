package event

import (
	"testing"

	"github.com/PatelKrunal-11/stride/internal/student"
)

func perf(id, studentID uint, round int, measurement string, value float64) Performance {
	p := Performance{
		StudentID:   studentID,
		Round:       round,
		Measurement: measurement,
		Value:       value,
		Student:     student.Student{Name: "student"},
	}
	p.ID = id
	return p
}

func TestRankRunningPicksBestRoundPerStudent(t *testing.T) {
	// A runs 13.2 then 12.8; B runs 12.9 once. A's best round beats B.
	performances := []Performance{
		perf(1, 100, 1, "13.2s", 13.2),
		perf(2, 100, 2, "12.8s", 12.8),
		perf(3, 200, 1, "12.9s", 12.9),
	}

	ranking := Rank(TypeRunning, performances)

	if len(ranking) != 2 {
		t.Fatalf("ranking length = %d, want 2", len(ranking))
	}
	if ranking[0].StudentID != 100 || ranking[0].Value != 12.8 || ranking[0].Rank != 1 {
		t.Errorf("first = {student %d, value %v, rank %d}, want {100, 12.8, 1}",
			ranking[0].StudentID, ranking[0].Value, ranking[0].Rank)
	}
	if ranking[1].StudentID != 200 || ranking[1].Value != 12.9 || ranking[1].Rank != 2 {
		t.Errorf("second = {student %d, value %v, rank %d}, want {200, 12.9, 2}",
			ranking[1].StudentID, ranking[1].Value, ranking[1].Rank)
	}
	if ranking[0].PerformanceID != 2 {
		t.Errorf("winning performance ID = %d, want 2 (A's second round)", ranking[0].PerformanceID)
	}
}

func TestRankFieldEventHigherWins(t *testing.T) {
	performances := []Performance{
		perf(1, 100, 1, "5.10m", 5.10),
		perf(2, 200, 1, "5.40m", 5.40),
	}

	ranking := Rank(TypeLongJump, performances)

	if len(ranking) != 2 {
		t.Fatalf("ranking length = %d, want 2", len(ranking))
	}
	if ranking[0].StudentID != 200 || ranking[0].Rank != 1 {
		t.Errorf("first = student %d rank %d, want student 200 rank 1", ranking[0].StudentID, ranking[0].Rank)
	}
	if ranking[1].StudentID != 100 || ranking[1].Rank != 2 {
		t.Errorf("second = student %d rank %d, want student 100 rank 2", ranking[1].StudentID, ranking[1].Rank)
	}
}

func TestRankDirectionOrdering(t *testing.T) {
	performances := []Performance{
		perf(1, 1, 1, "11.9s", 11.9),
		perf(2, 2, 1, "13.4s", 13.4),
		perf(3, 3, 1, "12.2s", 12.2),
		perf(4, 4, 1, "12.7s", 12.7),
	}

	running := Rank(TypeRunning, performances)
	for i := 1; i < len(running); i++ {
		if running[i-1].Value > running[i].Value {
			t.Errorf("running ranking not ascending at %d: %v > %v", i, running[i-1].Value, running[i].Value)
		}
	}

	field := Rank(TypeShotPut, performances)
	for i := 1; i < len(field); i++ {
		if field[i-1].Value < field[i].Value {
			t.Errorf("field ranking not descending at %d: %v < %v", i, field[i-1].Value, field[i].Value)
		}
	}
}

func TestRankDenseRanksNoGaps(t *testing.T) {
	performances := []Performance{
		perf(1, 1, 1, "12.0s", 12.0),
		perf(2, 2, 1, "12.0s", 12.0),
		perf(3, 3, 1, "12.5s", 12.5),
	}

	ranking := Rank(TypeRunning, performances)

	if len(ranking) != 3 {
		t.Fatalf("ranking length = %d, want 3", len(ranking))
	}
	for i, row := range ranking {
		if row.Rank != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, row.Rank, i+1)
		}
	}
	// Tied students keep encounter order and still get distinct ranks.
	if ranking[0].StudentID != 1 || ranking[1].StudentID != 2 {
		t.Errorf("tie order = %d, %d; want 1, 2", ranking[0].StudentID, ranking[1].StudentID)
	}
}

func TestRankExcludesBlankMeasurements(t *testing.T) {
	performances := []Performance{
		perf(1, 1, 1, "12.0s", 12.0),
		perf(2, 2, 1, "", 0),
		perf(3, 3, 1, "   ", 0),
	}

	ranking := Rank(TypeRunning, performances)

	if len(ranking) != 1 {
		t.Fatalf("ranking length = %d, want 1 (blank rows excluded, not trailing-ranked)", len(ranking))
	}
	if ranking[0].StudentID != 1 {
		t.Errorf("ranked student = %d, want 1", ranking[0].StudentID)
	}
}

func TestRankEmptyInput(t *testing.T) {
	if got := Rank(TypeRunning, nil); len(got) != 0 {
		t.Errorf("ranking of no performances = %d rows, want 0", len(got))
	}
	if got := Rank(TypeDiscus, []Performance{}); len(got) != 0 {
		t.Errorf("ranking of empty slice = %d rows, want 0", len(got))
	}
}

func TestIsPersonalBest(t *testing.T) {
	tests := []struct {
		name      string
		eventType EventType
		value     float64
		history   []float64
		want      bool
	}{
		{name: "first ever running", eventType: TypeRunning, value: 13.0, history: nil, want: true},
		{name: "running improvement", eventType: TypeRunning, value: 12.5, history: []float64{13.0, 12.8}, want: true},
		{name: "running equal is not a PB", eventType: TypeRunning, value: 12.8, history: []float64{13.0, 12.8}, want: false},
		{name: "running regression", eventType: TypeRunning, value: 13.5, history: []float64{12.8}, want: false},
		{name: "first ever jump", eventType: TypeLongJump, value: 4.2, history: nil, want: true},
		{name: "jump improvement", eventType: TypeLongJump, value: 5.5, history: []float64{5.1, 5.4}, want: true},
		{name: "jump equal is not a PB", eventType: TypeLongJump, value: 5.4, history: []float64{5.4}, want: false},
		{name: "jump regression", eventType: TypeLongJump, value: 5.0, history: []float64{5.4}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPersonalBest(tt.eventType, tt.value, tt.history); got != tt.want {
				t.Errorf("IsPersonalBest(%s, %v, %v) = %v, want %v",
					tt.eventType, tt.value, tt.history, got, tt.want)
			}
		})
	}
}
