package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/attendance"
	"github.com/PatelKrunal-11/stride/internal/event"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/responses"
)

const (
	upcomingWindowDays = 7
	upcomingLimit      = 10
	personalBestLimit  = 5
)

// DashboardController composes the coach landing screen from the other
// repositories. It owns no tables of its own.
type DashboardController struct {
	studentRepo    student.StudentRepository
	eventRepo      event.EventRepository
	attendanceRepo attendance.AttendanceRepository
	appConfig      *config.Config
}

func NewDashboardController(
	studentRepo student.StudentRepository,
	eventRepo event.EventRepository,
	attendanceRepo attendance.AttendanceRepository,
	appConfig *config.Config,
) *DashboardController {
	return &DashboardController{
		studentRepo:    studentRepo,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		appConfig:      appConfig,
	}
}

// @Summary      Coach dashboard
// @Description  Returns roster size, today's attendance summary, upcoming and in-progress events, and the latest personal bests.
// @Tags         Dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse "Dashboard retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /dashboard [get]
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	rosterSize, err := dc.studentRepo.CountByCoach(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to count students: "+err.Error())
		return
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	todayRows, err := dc.attendanceRepo.GetByCoachAndDate(userID, today)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve attendance: "+err.Error())
		return
	}

	upcoming, err := dc.eventRepo.GetUpcomingByCoach(userID, now, now.AddDate(0, 0, upcomingWindowDays), upcomingLimit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve upcoming events: "+err.Error())
		return
	}

	inProgress, err := dc.eventRepo.GetInProgressByCoach(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve events in progress: "+err.Error())
		return
	}

	personalBests, err := dc.eventRepo.GetRecentPersonalBests(userID, personalBestLimit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve personal bests: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Dashboard retrieved successfully", gin.H{
		"roster_size":           rosterSize,
		"attendance_today":      attendance.ComputeDailyStats(today, todayRows),
		"upcoming_events":       upcoming,
		"events_in_progress":    inProgress,
		"recent_personal_bests": personalBests,
	})
}
