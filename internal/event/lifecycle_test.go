package event

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeEventRepo is an in-memory EventRepository for controller tests.
type fakeEventRepo struct {
	events       map[uint]*Event
	participants map[uint]map[uint]bool
	performances []Performance
	nextPerfID   uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:       make(map[uint]*Event),
		participants: make(map[uint]map[uint]bool),
		nextPerfID:   1,
	}
}

func (f *fakeEventRepo) addEvent(e *Event) {
	f.events[e.ID] = e
}

func (f *fakeEventRepo) addParticipant(eventID, studentID uint) {
	if f.participants[eventID] == nil {
		f.participants[eventID] = make(map[uint]bool)
	}
	f.participants[eventID][studentID] = true
}

func (f *fakeEventRepo) CreateEvent(e *Event) error {
	if e.ID == 0 {
		e.ID = uint(len(f.events) + 1)
	}
	f.events[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetEventByID(id uint) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	clone := *e
	return &clone, nil
}

func (f *fakeEventRepo) GetEventsByCoach(coachID uint, page, limit int, filters map[string]interface{}) ([]Event, int64, error) {
	var out []Event
	for _, e := range f.events {
		if e.CoachID == coachID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventRepo) UpdateEvent(e *Event) error {
	f.events[e.ID] = e
	return nil
}

func (f *fakeEventRepo) DeleteEvent(id uint) error {
	delete(f.events, id)
	var kept []Performance
	for _, p := range f.performances {
		if p.EventID != id {
			kept = append(kept, p)
		}
	}
	f.performances = kept
	return nil
}

func (f *fakeEventRepo) StartEvent(eventID uint) error {
	e, ok := f.events[eventID]
	if !ok || e.Status != StatusPlanned {
		return ErrInvalidTransition
	}
	now := time.Now()
	e.Status = StatusInProgress
	e.StartedAt = &now
	return nil
}

func (f *fakeEventRepo) FinishEvent(eventID uint, results datatypes.JSON, ranks map[uint]int) error {
	e, ok := f.events[eventID]
	if !ok || e.Status != StatusInProgress {
		return ErrInvalidTransition
	}
	now := time.Now()
	e.Status = StatusCompleted
	e.CompletedAt = &now
	e.Results = results
	for i := range f.performances {
		if rank, ok := ranks[f.performances[i].ID]; ok {
			r := rank
			f.performances[i].Rank = &r
		}
	}
	return nil
}

func (f *fakeEventRepo) AddParticipant(p *EventParticipant) error {
	f.addParticipant(p.EventID, p.StudentID)
	return nil
}

func (f *fakeEventRepo) RemoveParticipant(eventID, studentID uint) error {
	delete(f.participants[eventID], studentID)
	return nil
}

func (f *fakeEventRepo) GetParticipants(eventID uint) ([]EventParticipant, error) {
	var out []EventParticipant
	for studentID := range f.participants[eventID] {
		out = append(out, EventParticipant{EventID: eventID, StudentID: studentID})
	}
	return out, nil
}

func (f *fakeEventRepo) IsParticipant(eventID, studentID uint) (bool, error) {
	return f.participants[eventID][studentID], nil
}

func (f *fakeEventRepo) CreatePerformance(p *Performance) error {
	p.ID = f.nextPerfID
	f.nextPerfID++
	f.performances = append(f.performances, *p)
	return nil
}

func (f *fakeEventRepo) GetPerformancesByEvent(eventID uint) ([]Performance, error) {
	var out []Performance
	for _, p := range f.performances {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) CountPerformancesByEvent(eventID uint) (int64, error) {
	rows, _ := f.GetPerformancesByEvent(eventID)
	return int64(len(rows)), nil
}

func (f *fakeEventRepo) GetPerformancesByStudent(studentID uint, page, limit int) ([]Performance, int64, error) {
	var out []Performance
	for _, p := range f.performances {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventRepo) GetStudentHistoryValues(studentID uint, eventType EventType) ([]float64, error) {
	var values []float64
	for _, p := range f.performances {
		e, ok := f.events[p.EventID]
		if ok && p.StudentID == studentID && e.Type == eventType {
			values = append(values, p.Value)
		}
	}
	return values, nil
}

func (f *fakeEventRepo) GetUpcomingByCoach(coachID uint, from, to time.Time, limit int) ([]Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetInProgressByCoach(coachID uint) ([]Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetRecentPersonalBests(coachID uint, limit int) ([]Performance, error) {
	return nil, nil
}

// fakeStudentRepo backs roster ownership checks.
type fakeStudentRepo struct {
	students map[uint]student.Student
}

func (f *fakeStudentRepo) CreateStudent(s *student.Student) error { return nil }

func (f *fakeStudentRepo) GetStudentByID(id uint) (*student.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeStudentRepo) GetStudentsByCoach(coachID uint, page, limit int, search string) ([]student.Student, int64, error) {
	return nil, 0, nil
}

func (f *fakeStudentRepo) GetStudentsByIDs(ids []uint) ([]student.Student, error) {
	var out []student.Student
	for _, id := range ids {
		if s, ok := f.students[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStudentRepo) UpdateStudent(s *student.Student) error { return nil }
func (f *fakeStudentRepo) DeleteStudent(id uint) error            { return nil }
func (f *fakeStudentRepo) CountByCoach(coachID uint) (int64, error) {
	return int64(len(f.students)), nil
}

const testCoachID uint = 42

func newTestController(repo *fakeEventRepo) *EventController {
	students := &fakeStudentRepo{students: map[uint]student.Student{}}
	for _, id := range []uint{100, 200} {
		s := student.Student{CoachID: testCoachID, Name: "student"}
		s.ID = id
		students.students[id] = s
	}
	return NewEventController(repo, students, &config.Config{})
}

func testRequest(t *testing.T, userID uint, eventID string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(http.MethodPost, "/", reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.AuthUserIDKey, userID)
	if eventID != "" {
		c.Params = gin.Params{{Key: "id", Value: eventID}}
	}
	return c, w
}

func seedEvent(repo *fakeEventRepo, status EventStatus, eventType EventType, rounds int) *Event {
	e := &Event{
		CoachID: testCoachID,
		Name:    "trials",
		Type:    eventType,
		Rounds:  rounds,
		Status:  status,
	}
	e.ID = 1
	repo.addEvent(e)
	repo.addParticipant(e.ID, 100)
	repo.addParticipant(e.ID, 200)
	return e
}

func TestStartEventFromPlanned(t *testing.T) {
	repo := newFakeEventRepo()
	seedEvent(repo, StatusPlanned, TypeRunning, 2)
	ec := newTestController(repo)

	c, w := testRequest(t, testCoachID, "1", nil)
	ec.StartEvent(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if repo.events[1].Status != StatusInProgress {
		t.Errorf("event status = %s, want in_progress", repo.events[1].Status)
	}
	if repo.events[1].StartedAt == nil {
		t.Error("StartedAt not set")
	}
}

func TestStartEventRejectedWhenNotPlanned(t *testing.T) {
	for _, status := range []EventStatus{StatusInProgress, StatusCompleted} {
		repo := newFakeEventRepo()
		seedEvent(repo, status, TypeRunning, 1)
		ec := newTestController(repo)

		c, w := testRequest(t, testCoachID, "1", nil)
		ec.StartEvent(c)

		if w.Code != http.StatusBadRequest {
			t.Errorf("start from %s: status = %d, want 400", status, w.Code)
		}
		if repo.events[1].Status != status {
			t.Errorf("start from %s mutated status to %s", status, repo.events[1].Status)
		}
	}
}

func TestFinishEventRequiresPerformances(t *testing.T) {
	repo := newFakeEventRepo()
	seedEvent(repo, StatusInProgress, TypeRunning, 1)
	ec := newTestController(repo)

	c, w := testRequest(t, testCoachID, "1", nil)
	ec.FinishEvent(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}
	if repo.events[1].Status != StatusInProgress {
		t.Errorf("event status = %s, want unchanged in_progress", repo.events[1].Status)
	}
}

func TestFinishEventRejectedWhenNotInProgress(t *testing.T) {
	repo := newFakeEventRepo()
	seedEvent(repo, StatusPlanned, TypeRunning, 1)
	ec := newTestController(repo)

	c, w := testRequest(t, testCoachID, "1", nil)
	ec.FinishEvent(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if repo.events[1].Status != StatusPlanned {
		t.Errorf("planned event mutated to %s", repo.events[1].Status)
	}
}

func TestFinishEventStoresRankingSnapshot(t *testing.T) {
	repo := newFakeEventRepo()
	seedEvent(repo, StatusInProgress, TypeRunning, 2)
	repo.performances = []Performance{
		perf(1, 100, 1, "13.2s", 13.2),
		perf(2, 100, 2, "12.8s", 12.8),
		perf(3, 200, 1, "12.9s", 12.9),
	}
	for i := range repo.performances {
		repo.performances[i].EventID = 1
	}
	repo.nextPerfID = 4
	ec := newTestController(repo)

	c, w := testRequest(t, testCoachID, "1", nil)
	ec.FinishEvent(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	e := repo.events[1]
	if e.Status != StatusCompleted {
		t.Errorf("event status = %s, want completed", e.Status)
	}
	if e.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}

	var snapshot []RankedResult
	if err := json.Unmarshal(e.Results, &snapshot); err != nil {
		t.Fatalf("results snapshot not valid JSON: %v", err)
	}
	if len(snapshot) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(snapshot))
	}
	if snapshot[0].StudentID != 100 || snapshot[0].Rank != 1 {
		t.Errorf("snapshot winner = student %d rank %d, want student 100 rank 1",
			snapshot[0].StudentID, snapshot[0].Rank)
	}

	// Rank is stamped on each student's best row only.
	for _, p := range repo.performances {
		switch p.ID {
		case 2:
			if p.Rank == nil || *p.Rank != 1 {
				t.Errorf("performance 2 rank = %v, want 1", p.Rank)
			}
		case 3:
			if p.Rank == nil || *p.Rank != 2 {
				t.Errorf("performance 3 rank = %v, want 2", p.Rank)
			}
		default:
			if p.Rank != nil {
				t.Errorf("performance %d rank = %d, want unset", p.ID, *p.Rank)
			}
		}
	}
}

func TestRecordPerformanceOnlyWhileInProgress(t *testing.T) {
	for _, status := range []EventStatus{StatusPlanned, StatusCompleted} {
		repo := newFakeEventRepo()
		seedEvent(repo, status, TypeRunning, 1)
		ec := newTestController(repo)

		c, w := testRequest(t, testCoachID, "1", RecordPerformanceRequest{StudentID: 100, Measurement: "12.8s"})
		ec.RecordPerformance(c)

		if w.Code != http.StatusBadRequest {
			t.Errorf("record during %s: status = %d, want 400", status, w.Code)
		}
		if len(repo.performances) != 0 {
			t.Errorf("record during %s wrote a row", status)
		}
	}
}

func TestRecordPerformanceValidation(t *testing.T) {
	tests := []struct {
		name string
		req  RecordPerformanceRequest
	}{
		{name: "round beyond event rounds", req: RecordPerformanceRequest{StudentID: 100, Round: 3, Measurement: "12.8s"}},
		{name: "not a participant", req: RecordPerformanceRequest{StudentID: 999, Measurement: "12.8s"}},
		{name: "blank measurement", req: RecordPerformanceRequest{StudentID: 100, Measurement: ""}},
		{name: "malformed measurement", req: RecordPerformanceRequest{StudentID: 100, Measurement: "fast"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			seedEvent(repo, StatusInProgress, TypeRunning, 2)
			ec := newTestController(repo)

			c, w := testRequest(t, testCoachID, "1", tt.req)
			ec.RecordPerformance(c)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
			if len(repo.performances) != 0 {
				t.Error("invalid request wrote a row")
			}
		})
	}
}

func TestRecordPerformanceFlagsPersonalBests(t *testing.T) {
	repo := newFakeEventRepo()
	seedEvent(repo, StatusInProgress, TypeRunning, 3)
	ec := newTestController(repo)

	record := func(measurement string) {
		t.Helper()
		c, w := testRequest(t, testCoachID, "1", RecordPerformanceRequest{StudentID: 100, Measurement: measurement})
		ec.RecordPerformance(c)
		if w.Code != http.StatusCreated {
			t.Fatalf("record %q: status = %d, want 201; body: %s", measurement, w.Code, w.Body.String())
		}
	}

	record("13.2s") // first ever for the discipline
	record("12.8s") // improvement
	record("13.0s") // slower than the best so far

	if len(repo.performances) != 3 {
		t.Fatalf("performance count = %d, want 3", len(repo.performances))
	}
	wantPB := []bool{true, true, false}
	for i, p := range repo.performances {
		if p.PersonalBest != wantPB[i] {
			t.Errorf("performance %d personal_best = %v, want %v", i+1, p.PersonalBest, wantPB[i])
		}
	}
	// Earlier flags are never rewritten by later rows.
	if !repo.performances[0].PersonalBest {
		t.Error("first row's personal-best flag was retroactively cleared")
	}
}

func TestEventOwnershipEnforced(t *testing.T) {
	repo := newFakeEventRepo()
	seedEvent(repo, StatusInProgress, TypeRunning, 1)
	ec := newTestController(repo)

	const otherCoach uint = 7
	c, w := testRequest(t, otherCoach, "1", nil)
	ec.StartEvent(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("foreign coach start: status = %d, want 403", w.Code)
	}
}

func TestUpdateEventRejectedWhenCompleted(t *testing.T) {
	repo := newFakeEventRepo()
	seedEvent(repo, StatusCompleted, TypeRunning, 1)
	ec := newTestController(repo)

	name := "renamed"
	c, w := testRequest(t, testCoachID, "1", UpdateEventRequest{Name: &name})
	ec.UpdateEvent(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if repo.events[1].Name != "trials" {
		t.Errorf("completed event was edited: name = %s", repo.events[1].Name)
	}
}
