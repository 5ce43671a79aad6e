package parent

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/attendance"
	"github.com/PatelKrunal-11/stride/internal/event"
	"github.com/PatelKrunal-11/stride/internal/invite"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/responses"
	"github.com/PatelKrunal-11/stride/pkg/utils"
)

// ParentController serves the read-only surface for parents. Access to
// a student always goes through a claimed invite link.
type ParentController struct {
	inviteRepo     invite.InviteRepository
	studentRepo    student.StudentRepository
	eventRepo      event.EventRepository
	attendanceRepo attendance.AttendanceRepository
	appConfig      *config.Config
}

func NewParentController(
	inviteRepo invite.InviteRepository,
	studentRepo student.StudentRepository,
	eventRepo event.EventRepository,
	attendanceRepo attendance.AttendanceRepository,
	appConfig *config.Config,
) *ParentController {
	return &ParentController{
		inviteRepo:     inviteRepo,
		studentRepo:    studentRepo,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		appConfig:      appConfig,
	}
}

// linkedStudent fetches the student only when the caller holds a
// claimed invite for them. Writes the error response otherwise.
func (pc *ParentController) linkedStudent(c *gin.Context, parentUserID uint) *student.Student {
	studentID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid student ID")
		return nil
	}

	linked, err := pc.inviteRepo.IsParentLinked(parentUserID, studentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check link: "+err.Error())
		return nil
	}
	if !linked {
		responses.Forbidden(c, "You are not linked to this student")
		return nil
	}

	s, err := pc.studentRepo.GetStudentByID(studentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve student: "+err.Error())
		return nil
	}
	if s == nil {
		responses.NotFound(c, "Student")
		return nil
	}
	return s
}

// @Summary      List linked children
// @Description  Lists the students linked to the authenticated parent through claimed invites.
// @Tags         Parent
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse "Children retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /parent/children [get]
func (pc *ParentController) GetChildren(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	children, err := pc.inviteRepo.GetStudentsByParent(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve children: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Children retrieved successfully", children)
}

// @Summary      Get a linked child
// @Description  Returns one linked student's profile.
// @Tags         Parent
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Student ID"
// @Success      200 {object} responses.SuccessResponse "Child retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Not linked to this student"
// @Failure      404 {object} responses.ErrorResponse "Student not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /parent/children/{id} [get]
func (pc *ParentController) GetChild(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	s := pc.linkedStudent(c, userID)
	if s == nil {
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Child retrieved successfully", s)
}

// @Summary      Get a linked child's performances
// @Description  Returns a linked student's performance history with personal-best flags, newest first.
// @Tags         Parent
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Student ID"
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Success      200 {object} responses.PaginatedResponse "Performances retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Not linked to this student"
// @Failure      404 {object} responses.ErrorResponse "Student not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /parent/children/{id}/performances [get]
func (pc *ParentController) GetChildPerformances(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	s := pc.linkedStudent(c, userID)
	if s == nil {
		return
	}

	page := utils.ParsePositiveQueryInt(c, "page", 1)
	limit := utils.ParsePositiveQueryInt(c, "limit", 20)

	performances, total, err := pc.eventRepo.GetPerformancesByStudent(s.ID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve performances: "+err.Error())
		return
	}

	responses.SendPaginated(c, http.StatusOK, "Performances retrieved successfully", performances, total, page, limit)
}

// @Summary      Get a linked child's attendance
// @Description  Returns a linked student's attendance records for one month plus the month's summary. Defaults to the current month.
// @Tags         Parent
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Student ID"
// @Param        month query string false "Month (YYYY-MM)"
// @Success      200 {object} responses.SuccessResponse "Attendance retrieved"
// @Failure      400 {object} responses.ErrorResponse "Invalid month"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Not linked to this student"
// @Failure      404 {object} responses.ErrorResponse "Student not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /parent/children/{id}/attendance [get]
func (pc *ParentController) GetChildAttendance(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	s := pc.linkedStudent(c, userID)
	if s == nil {
		return
	}

	now := time.Now().UTC()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			responses.BadRequest(c, "Invalid month, expected YYYY-MM")
			return
		}
		month = parsed
	}

	rows, err := pc.attendanceRepo.GetByStudent(s.ID, month, month.AddDate(0, 1, 0))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve attendance: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Attendance retrieved successfully", gin.H{
		"records": rows,
		"stats":   attendance.ComputeMonthlyStats(month, rows),
	})
}
