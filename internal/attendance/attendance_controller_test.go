package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAttendanceRepo keys rows by (student, date) the way the unique
// index does, so an upsert always lands on a single row.
type fakeAttendanceRepo struct {
	rows map[string]*Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]*Attendance)}
}

func attendanceKey(studentID uint, date time.Time) string {
	return fmt.Sprintf("%d/%s", studentID, date.Format("2006-01-02"))
}

func (f *fakeAttendanceRepo) UpsertAttendance(a *Attendance) error {
	key := attendanceKey(a.StudentID, a.Date)
	if existing, ok := f.rows[key]; ok {
		existing.Present = a.Present
		existing.Late = a.Late
		existing.Notes = a.Notes
		return nil
	}
	clone := *a
	f.rows[key] = &clone
	return nil
}

func (f *fakeAttendanceRepo) GetByCoachAndDate(coachID uint, date time.Time) ([]Attendance, error) {
	var out []Attendance
	for _, a := range f.rows {
		if a.CoachID == coachID && a.Date.Equal(date) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetByStudent(studentID uint, from, to time.Time) ([]Attendance, error) {
	var out []Attendance
	for _, a := range f.rows {
		if a.StudentID == studentID && !a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetByCoachRange(coachID uint, from, to time.Time) ([]Attendance, error) {
	var out []Attendance
	for _, a := range f.rows {
		if a.CoachID == coachID && !a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

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

func (f *fakeStudentRepo) UpdateStudent(s *student.Student) error   { return nil }
func (f *fakeStudentRepo) DeleteStudent(id uint) error              { return nil }
func (f *fakeStudentRepo) CountByCoach(coachID uint) (int64, error) { return 0, nil }

const testCoachID uint = 5

func newTestController(repo *fakeAttendanceRepo) *AttendanceController {
	students := &fakeStudentRepo{students: map[uint]student.Student{}}
	for _, id := range []uint{1, 2} {
		s := student.Student{CoachID: testCoachID, Name: "student"}
		s.ID = id
		students.students[id] = s
	}
	return NewAttendanceController(repo, students, &config.Config{})
}

func postJSON(t *testing.T, userID uint, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.AuthUserIDKey, userID)
	return c, w
}

func boolPtr(v bool) *bool { return &v }

func TestMarkAttendanceTwiceKeepsOneRow(t *testing.T) {
	repo := newFakeAttendanceRepo()
	ac := newTestController(repo)

	c, w := postJSON(t, testCoachID, MarkAttendanceRequest{
		StudentID: 1, Date: "2026-03-02", Present: boolPtr(true),
	})
	ac.MarkAttendance(c)
	if w.Code != http.StatusOK {
		t.Fatalf("first mark: status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	c, w = postJSON(t, testCoachID, MarkAttendanceRequest{
		StudentID: 1, Date: "2026-03-02", Present: boolPtr(false), Late: true,
	})
	ac.MarkAttendance(c)
	if w.Code != http.StatusOK {
		t.Fatalf("second mark: status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	if len(repo.rows) != 1 {
		t.Fatalf("row count = %d, want 1 (upsert, not duplicate)", len(repo.rows))
	}
	for _, a := range repo.rows {
		if a.Present {
			t.Error("row reflects the first write, want the latest")
		}
		if !a.Late {
			t.Error("late flag from the latest write lost")
		}
	}
}

func TestMarkAttendanceForeignStudent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	ac := newTestController(repo)

	const otherCoach uint = 99
	c, w := postJSON(t, otherCoach, MarkAttendanceRequest{
		StudentID: 1, Date: "2026-03-02", Present: boolPtr(true),
	})
	ac.MarkAttendance(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403; body: %s", w.Code, w.Body.String())
	}
	if len(repo.rows) != 0 {
		t.Error("foreign mark wrote a row")
	}
}

func TestMarkAttendanceBadDate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	ac := newTestController(repo)

	c, w := postJSON(t, testCoachID, MarkAttendanceRequest{
		StudentID: 1, Date: "02-03-2026", Present: boolPtr(true),
	})
	ac.MarkAttendance(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}
}

func TestBulkMarkAttendance(t *testing.T) {
	repo := newFakeAttendanceRepo()
	ac := newTestController(repo)

	c, w := postJSON(t, testCoachID, BulkMarkAttendanceRequest{
		Date: "2026-03-02",
		Entries: []BulkAttendanceEntry{
			{StudentID: 1, Present: boolPtr(true)},
			{StudentID: 2, Present: boolPtr(false), Late: true},
		},
	})
	ac.BulkMarkAttendance(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if len(repo.rows) != 2 {
		t.Errorf("row count = %d, want 2", len(repo.rows))
	}
}

func TestBulkMarkAttendanceRejectsForeignStudent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	ac := newTestController(repo)

	c, w := postJSON(t, testCoachID, BulkMarkAttendanceRequest{
		Date: "2026-03-02",
		Entries: []BulkAttendanceEntry{
			{StudentID: 1, Present: boolPtr(true)},
			{StudentID: 999, Present: boolPtr(true)},
		},
	})
	ac.BulkMarkAttendance(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}
	if len(repo.rows) != 0 {
		t.Error("partial bulk write happened despite a foreign student")
	}
}
