package invite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/authz"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/mailer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeInviteRepo is an in-memory InviteRepository. Claims go through one
// mutex-guarded check-and-set, mirroring the store's conditional update.
type fakeInviteRepo struct {
	mu      sync.Mutex
	invites map[uint]*ParentInvite
	roles   map[uint]string
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{
		invites: make(map[uint]*ParentInvite),
		roles:   make(map[uint]string),
	}
}

func (f *fakeInviteRepo) CreateInvite(inv *ParentInvite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if inv.ID == 0 {
		inv.ID = uint(len(f.invites) + 1)
	}
	clone := *inv
	f.invites[inv.ID] = &clone
	return nil
}

func (f *fakeInviteRepo) GetInviteByID(id uint) (*ParentInvite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invites[id]
	if !ok {
		return nil, nil
	}
	clone := *inv
	return &clone, nil
}

func (f *fakeInviteRepo) GetInviteByCode(code string) (*ParentInvite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invites {
		if inv.InviteCode == code {
			clone := *inv
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeInviteRepo) GetInvitesByCoach(coachID uint, page, limit int) ([]ParentInvite, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ParentInvite
	for _, inv := range f.invites {
		if inv.CoachID == coachID {
			out = append(out, *inv)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeInviteRepo) ClaimInvite(inviteID, parentUserID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invites[inviteID]
	if !ok || inv.Claimed || inv.Expired() {
		return ErrAlreadyClaimed
	}
	now := time.Now()
	inv.Claimed = true
	inv.ClaimedAt = &now
	inv.ParentUserID = &parentUserID

	role := f.roles[parentUserID]
	if role != string(authz.RoleParent) && role != string(authz.RoleAdmin) {
		f.roles[parentUserID] = string(authz.RoleParent)
	}
	return nil
}

func (f *fakeInviteRepo) RevokeInvite(inviteID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invites[inviteID]
	if !ok || inv.Claimed {
		return ErrAlreadyClaimed
	}
	delete(f.invites, inviteID)
	return nil
}

func (f *fakeInviteRepo) GetCoachName(coachID uint) (string, error) {
	return "Coach Taylor", nil
}

func (f *fakeInviteRepo) GetStudentsByParent(parentUserID uint) ([]student.Student, error) {
	return nil, nil
}

func (f *fakeInviteRepo) IsParentLinked(parentUserID, studentID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invites {
		if inv.Claimed && inv.ParentUserID != nil && *inv.ParentUserID == parentUserID && inv.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
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
	return nil, nil
}

func (f *fakeStudentRepo) UpdateStudent(s *student.Student) error   { return nil }
func (f *fakeStudentRepo) DeleteStudent(id uint) error              { return nil }
func (f *fakeStudentRepo) CountByCoach(coachID uint) (int64, error) { return 0, nil }

const (
	testCoachID   uint = 1
	testStudentID uint = 10
)

func newTestController(repo *fakeInviteRepo) *InviteController {
	s := student.Student{CoachID: testCoachID, Name: "Alex"}
	s.ID = testStudentID
	students := &fakeStudentRepo{students: map[uint]student.Student{testStudentID: s}}

	cfg := &config.Config{}
	cfg.Invite.ExpiryDays = 14
	cfg.Invite.CodeLength = 16

	return NewInviteController(repo, students, &mailer.LogMailer{}, cfg)
}

func seedInvite(repo *fakeInviteRepo, code string, expiresAt *time.Time) *ParentInvite {
	inv := &ParentInvite{
		CoachID:    testCoachID,
		StudentID:  testStudentID,
		InviteCode: code,
		ParentName: "Sam",
		ExpiresAt:  expiresAt,
	}
	repo.CreateInvite(inv)
	return inv
}

func testRequest(t *testing.T, userID uint, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
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
	return c, w
}

func TestClaimInvitePromotesParent(t *testing.T) {
	repo := newFakeInviteRepo()
	seedInvite(repo, "abc123", nil)
	repo.roles[50] = string(authz.RoleCoach)
	ic := newTestController(repo)

	c, w := testRequest(t, 50, ClaimInviteRequest{InviteCode: "abc123"})
	ic.ClaimInvite(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	inv := repo.invites[1]
	if !inv.Claimed {
		t.Error("invite not marked claimed")
	}
	if inv.ParentUserID == nil || *inv.ParentUserID != 50 {
		t.Errorf("parent_user_id = %v, want 50", inv.ParentUserID)
	}
	if inv.ClaimedAt == nil {
		t.Error("claimed_at not set")
	}
	if repo.roles[50] != string(authz.RoleParent) {
		t.Errorf("claimer role = %s, want parent", repo.roles[50])
	}
}

func TestClaimInviteKeepsAdminRole(t *testing.T) {
	repo := newFakeInviteRepo()
	seedInvite(repo, "adm001", nil)
	repo.roles[80] = string(authz.RoleAdmin)
	ic := newTestController(repo)

	c, w := testRequest(t, 80, ClaimInviteRequest{InviteCode: "adm001"})
	ic.ClaimInvite(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	inv := repo.invites[1]
	if !inv.Claimed || inv.ParentUserID == nil || *inv.ParentUserID != 80 {
		t.Errorf("claim not recorded for admin: %+v", inv)
	}
	if repo.roles[80] != string(authz.RoleAdmin) {
		t.Errorf("admin role = %s, want admin (never demoted by a claim)", repo.roles[80])
	}
}

func TestClaimAlreadyClaimedInvite(t *testing.T) {
	repo := newFakeInviteRepo()
	inv := seedInvite(repo, "abc123", nil)
	if err := repo.ClaimInvite(inv.ID, 50); err != nil {
		t.Fatalf("seed claim failed: %v", err)
	}
	ic := newTestController(repo)

	c, w := testRequest(t, 60, ClaimInviteRequest{InviteCode: "abc123"})
	ic.ClaimInvite(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body: %s", w.Code, w.Body.String())
	}
	stored := repo.invites[inv.ID]
	if stored.ParentUserID == nil || *stored.ParentUserID != 50 {
		t.Errorf("parent_user_id = %v, want original claimer 50", stored.ParentUserID)
	}
	if _, promoted := repo.roles[60]; promoted {
		t.Error("losing claimer's role was mutated")
	}
}

func TestClaimExpiredInvite(t *testing.T) {
	repo := newFakeInviteRepo()
	expired := time.Now().Add(-time.Hour)
	inv := seedInvite(repo, "old123", &expired)
	ic := newTestController(repo)

	c, w := testRequest(t, 50, ClaimInviteRequest{InviteCode: "old123"})
	ic.ClaimInvite(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body: %s", w.Code, w.Body.String())
	}
	stored := repo.invites[inv.ID]
	if stored.Claimed || stored.ParentUserID != nil {
		t.Error("expired invite was mutated")
	}
}

func TestClaimUnknownCode(t *testing.T) {
	repo := newFakeInviteRepo()
	ic := newTestController(repo)

	c, w := testRequest(t, 50, ClaimInviteRequest{InviteCode: "nope"})
	ic.ClaimInvite(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body: %s", w.Code, w.Body.String())
	}
}

func TestConcurrentClaimsExactlyOneWins(t *testing.T) {
	repo := newFakeInviteRepo()
	seedInvite(repo, "race01", nil)
	ic := newTestController(repo)

	claimers := []uint{70, 71}
	codes := make([]int, len(claimers))

	var wg sync.WaitGroup
	for i, userID := range claimers {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			c, w := testRequest(t, userID, ClaimInviteRequest{InviteCode: "race01"})
			ic.ClaimInvite(c)
			codes[i] = w.Code
		}(i, userID)
	}
	wg.Wait()

	okCount, conflictCount := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			okCount++
		case http.StatusConflict:
			conflictCount++
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	if okCount != 1 || conflictCount != 1 {
		t.Fatalf("got %d winners and %d conflicts, want exactly 1 and 1", okCount, conflictCount)
	}

	inv := repo.invites[1]
	if inv.ParentUserID == nil {
		t.Fatal("no claimer recorded")
	}
	winner := *inv.ParentUserID
	if winner != 70 && winner != 71 {
		t.Errorf("claimer = %d, want one of the racers", winner)
	}
	if repo.roles[winner] != string(authz.RoleParent) {
		t.Errorf("winner role = %s, want parent", repo.roles[winner])
	}
	loser := claimers[0] + claimers[1] - winner
	if _, promoted := repo.roles[loser]; promoted {
		t.Error("loser's role was mutated")
	}
}

func TestValidateInvite(t *testing.T) {
	repo := newFakeInviteRepo()
	future := time.Now().Add(24 * time.Hour)
	s := student.Student{Name: "Alex"}
	s.ID = testStudentID
	inv := seedInvite(repo, "ok1234", &future)
	repo.invites[inv.ID].Student = &s

	claimedInv := seedInvite(repo, "used01", nil)
	if err := repo.ClaimInvite(claimedInv.ID, 50); err != nil {
		t.Fatalf("seed claim failed: %v", err)
	}

	expired := time.Now().Add(-time.Minute)
	seedInvite(repo, "late01", &expired)

	ic := newTestController(repo)

	tests := []struct {
		name string
		code string
		want int
	}{
		{name: "valid code", code: "ok1234", want: http.StatusOK},
		{name: "claimed code", code: "used01", want: http.StatusConflict},
		{name: "expired code", code: "late01", want: http.StatusConflict},
		{name: "unknown code", code: "nope", want: http.StatusConflict},
		{name: "missing code", code: "", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testRequest(t, 50, nil)
			c.Request = httptest.NewRequest(http.MethodGet, "/invites/validate?code="+tt.code, nil)
			ic.ValidateInvite(c)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusOK {
				var resp struct {
					Data InvitePreview `json:"data"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.Data.StudentName != "Alex" || resp.Data.CoachName != "Coach Taylor" {
					t.Errorf("preview = %+v, want Alex / Coach Taylor", resp.Data)
				}
			}
		})
	}

	// Validation never claims anything.
	if repo.invites[inv.ID].Claimed {
		t.Error("validate mutated the invite")
	}
}

func TestRevokeClaimedInviteRejected(t *testing.T) {
	repo := newFakeInviteRepo()
	inv := seedInvite(repo, "abc123", nil)
	if err := repo.ClaimInvite(inv.ID, 50); err != nil {
		t.Fatalf("seed claim failed: %v", err)
	}
	ic := newTestController(repo)

	c, w := testRequest(t, testCoachID, nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	ic.RevokeInvite(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}
	if _, ok := repo.invites[inv.ID]; !ok {
		t.Error("claimed invite was deleted")
	}
}

func TestCreateInviteGeneratesSingleUseCode(t *testing.T) {
	repo := newFakeInviteRepo()
	ic := newTestController(repo)

	c, w := testRequest(t, testCoachID, CreateInviteRequest{
		StudentID:  testStudentID,
		ParentName: "Sam",
	})
	ic.CreateInvite(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}
	if len(repo.invites) != 1 {
		t.Fatalf("invite count = %d, want 1", len(repo.invites))
	}
	for _, inv := range repo.invites {
		if inv.InviteCode == "" {
			t.Error("invite code not generated")
		}
		if inv.Claimed {
			t.Error("new invite already claimed")
		}
		if inv.ExpiresAt == nil {
			t.Error("default expiry not applied")
		}
	}
}

func TestCreateInviteForForeignStudent(t *testing.T) {
	repo := newFakeInviteRepo()
	ic := newTestController(repo)

	const otherCoach uint = 99
	c, w := testRequest(t, otherCoach, CreateInviteRequest{
		StudentID:  testStudentID,
		ParentName: "Sam",
	})
	ic.CreateInvite(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403; body: %s", w.Code, w.Body.String())
	}
	if len(repo.invites) != 0 {
		t.Error("invite was created for a foreign student")
	}
}
