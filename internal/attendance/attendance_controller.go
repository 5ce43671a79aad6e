package attendance

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/responses"
	"github.com/PatelKrunal-11/stride/pkg/utils"
)

const dateLayout = "2006-01-02"

type AttendanceController struct {
	repo        AttendanceRepository
	studentRepo student.StudentRepository
	appConfig   *config.Config
}

func NewAttendanceController(repo AttendanceRepository, studentRepo student.StudentRepository, appConfig *config.Config) *AttendanceController {
	return &AttendanceController{
		repo:        repo,
		studentRepo: studentRepo,
		appConfig:   appConfig,
	}
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// dateQuery reads a ?date= query param, defaulting to today.
func dateQuery(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return today(), nil
	}
	return parseDate(raw)
}

// @Summary      Mark attendance
// @Description  Marks one student's attendance for a day. Marking the same day again overwrites the previous record.
// @Tags         Attendance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        attendance body MarkAttendanceRequest true "Attendance record"
// @Success      200 {object} responses.SuccessResponse "Attendance marked"
// @Failure      400 {object} responses.ErrorResponse "Validation error"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Student belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Student not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /attendance [post]
func (ac *AttendanceController) MarkAttendance(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	s, err := ac.studentRepo.GetStudentByID(req.StudentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve student: "+err.Error())
		return
	}
	if s == nil {
		responses.NotFound(c, "Student")
		return
	}
	if s.CoachID != userID {
		responses.Forbidden(c, "Student belongs to another coach")
		return
	}

	record := &Attendance{
		CoachID:   userID,
		StudentID: req.StudentID,
		Date:      date,
		Present:   *req.Present,
		Late:      req.Late,
		Notes:     req.Notes,
	}

	if err := ac.repo.UpsertAttendance(record); err != nil {
		responses.InternalServerError(c, "Failed to mark attendance: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Attendance marked successfully", record)
}

// @Summary      Mark attendance in bulk
// @Description  Marks attendance for several students on the same day in one call, for whole-roster marking after a session.
// @Tags         Attendance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        attendance body BulkMarkAttendanceRequest true "Entries for one date"
// @Success      200 {object} responses.SuccessResponse "Attendance marked"
// @Failure      400 {object} responses.ErrorResponse "Validation error or foreign student"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /attendance/bulk [post]
func (ac *AttendanceController) BulkMarkAttendance(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req BulkMarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	ids := make([]uint, 0, len(req.Entries))
	for _, entry := range req.Entries {
		ids = append(ids, entry.StudentID)
	}

	students, err := ac.studentRepo.GetStudentsByIDs(ids)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify students: "+err.Error())
		return
	}
	owned := make(map[uint]bool, len(students))
	for _, s := range students {
		if s.CoachID == userID {
			owned[s.ID] = true
		}
	}
	for _, entry := range req.Entries {
		if !owned[entry.StudentID] {
			responses.BadRequest(c, "All students must be on your roster")
			return
		}
	}

	marked := 0
	for _, entry := range req.Entries {
		record := &Attendance{
			CoachID:   userID,
			StudentID: entry.StudentID,
			Date:      date,
			Present:   *entry.Present,
			Late:      entry.Late,
			Notes:     entry.Notes,
		}
		if err := ac.repo.UpsertAttendance(record); err != nil {
			responses.InternalServerError(c, "Failed to mark attendance: "+err.Error())
			return
		}
		marked++
	}

	responses.SendSuccess(c, http.StatusOK, "Attendance marked successfully", gin.H{
		"date":   date.Format(dateLayout),
		"marked": marked,
	})
}

// @Summary      List attendance for a day
// @Description  Returns the coach's attendance records for one date. Defaults to today.
// @Tags         Attendance
// @Security     BearerAuth
// @Produce      json
// @Param        date query string false "Date (YYYY-MM-DD)"
// @Success      200 {object} responses.SuccessResponse "Attendance retrieved"
// @Failure      400 {object} responses.ErrorResponse "Invalid date"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /attendance [get]
func (ac *AttendanceController) GetAttendanceByDate(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	date, err := dateQuery(c)
	if err != nil {
		responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	rows, err := ac.repo.GetByCoachAndDate(userID, date)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve attendance: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Attendance retrieved successfully", gin.H{
		"date":    date.Format(dateLayout),
		"records": rows,
	})
}

// @Summary      Get a student's attendance
// @Description  Returns one roster student's attendance records in a date range. Defaults to the last 30 days.
// @Tags         Attendance
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Student ID"
// @Param        from query string false "Range start (YYYY-MM-DD, inclusive)"
// @Param        to query string false "Range end (YYYY-MM-DD, exclusive)"
// @Success      200 {object} responses.SuccessResponse "Attendance retrieved"
// @Failure      400 {object} responses.ErrorResponse "Invalid range"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Student belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Student not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /attendance/students/{id} [get]
func (ac *AttendanceController) GetStudentAttendance(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	studentID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid student ID")
		return
	}

	s, err := ac.studentRepo.GetStudentByID(studentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve student: "+err.Error())
		return
	}
	if s == nil {
		responses.NotFound(c, "Student")
		return
	}
	if s.CoachID != userID {
		responses.Forbidden(c, "Student belongs to another coach")
		return
	}

	to := today().AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -31)
	if raw := c.Query("from"); raw != "" {
		if from, err = parseDate(raw); err != nil {
			responses.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = parseDate(raw); err != nil {
			responses.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
	}

	rows, err := ac.repo.GetByStudent(studentID, from, to)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve attendance: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Attendance retrieved successfully", rows)
}

// @Summary      Daily attendance stats
// @Description  Present, absent and late counts with an attendance percentage for one date. Defaults to today.
// @Tags         Attendance
// @Security     BearerAuth
// @Produce      json
// @Param        date query string false "Date (YYYY-MM-DD)"
// @Success      200 {object} responses.SuccessResponse "Stats computed"
// @Failure      400 {object} responses.ErrorResponse "Invalid date"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /attendance/stats/daily [get]
func (ac *AttendanceController) GetDailyStats(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	date, err := dateQuery(c)
	if err != nil {
		responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	rows, err := ac.repo.GetByCoachAndDate(userID, date)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve attendance: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Daily stats computed successfully", ComputeDailyStats(date, rows))
}

// @Summary      Monthly attendance stats
// @Description  Training days, record counts and attendance percentage for one month. Defaults to the current month.
// @Tags         Attendance
// @Security     BearerAuth
// @Produce      json
// @Param        month query string false "Month (YYYY-MM)"
// @Success      200 {object} responses.SuccessResponse "Stats computed"
// @Failure      400 {object} responses.ErrorResponse "Invalid month"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /attendance/stats/monthly [get]
func (ac *AttendanceController) GetMonthlyStats(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	month := time.Date(today().Year(), today().Month(), 1, 0, 0, 0, 0, time.UTC)
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			responses.BadRequest(c, "Invalid month, expected YYYY-MM")
			return
		}
		month = parsed
	}

	rows, err := ac.repo.GetByCoachRange(userID, month, month.AddDate(0, 1, 0))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve attendance: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Monthly stats computed successfully", ComputeMonthlyStats(month, rows))
}
