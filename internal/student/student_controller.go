package student

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/pkg/responses"
	"github.com/PatelKrunal-11/stride/pkg/utils"
)

type StudentController struct {
	repo      StudentRepository
	appConfig *config.Config
}

func NewStudentController(repo StudentRepository, appConfig *config.Config) *StudentController {
	return &StudentController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// @Summary      Add a student to the roster
// @Description  Creates a student owned by the authenticated coach.
// @Tags         Students
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        student body CreateStudentRequest true "Student details"
// @Success      201 {object} responses.SuccessResponse "Student created"
// @Failure      400 {object} responses.ErrorResponse "Validation error"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /students [post]
func (sc *StudentController) CreateStudent(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	s := &Student{
		CoachID:           userID,
		Name:              req.Name,
		Gender:            req.Gender,
		DateOfBirth:       req.DateOfBirth,
		JoinedAt:          req.JoinedAt,
		MedicalConditions: req.MedicalConditions,
		Allergies:         req.Allergies,
		Notes:             req.Notes,
	}
	if req.EmergencyContact != nil {
		s.EmergencyContact = *req.EmergencyContact
	}

	if err := sc.repo.CreateStudent(s); err != nil {
		responses.InternalServerError(c, "Failed to create student: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Student created successfully", s)
}

// @Summary      List roster students
// @Description  Lists the authenticated coach's students with pagination and name search.
// @Tags         Students
// @Security     BearerAuth
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Param        search query string false "Filter by name"
// @Success      200 {object} responses.PaginatedResponse "Students retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /students [get]
func (sc *StudentController) GetStudents(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	page := utils.ParsePositiveQueryInt(c, "page", 1)
	limit := utils.ParsePositiveQueryInt(c, "limit", 10)
	search := c.Query("search")

	students, total, err := sc.repo.GetStudentsByCoach(userID, page, limit, search)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve students: "+err.Error())
		return
	}

	responses.SendPaginated(c, http.StatusOK, "Students retrieved successfully", students, total, page, limit)
}

// @Summary      Get a student
// @Description  Retrieves one student from the authenticated coach's roster.
// @Tags         Students
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Student ID"
// @Success      200 {object} responses.SuccessResponse "Student retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Student belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Student not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /students/{id} [get]
func (sc *StudentController) GetStudentByID(c *gin.Context) {
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

	s, err := sc.repo.GetStudentByID(studentID)
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

	responses.SendSuccess(c, http.StatusOK, "Student retrieved successfully", s)
}

// @Summary      Update a student
// @Description  Updates roster details for a student owned by the authenticated coach.
// @Tags         Students
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Student ID"
// @Param        student body UpdateStudentRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse "Student updated"
// @Failure      400 {object} responses.ErrorResponse "Validation error"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Student belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Student not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /students/{id} [put]
func (sc *StudentController) UpdateStudent(c *gin.Context) {
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

	s, err := sc.repo.GetStudentByID(studentID)
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

	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Gender != nil {
		s.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		s.DateOfBirth = req.DateOfBirth
	}
	if req.JoinedAt != nil {
		s.JoinedAt = req.JoinedAt
	}
	if req.MedicalConditions != nil {
		s.MedicalConditions = *req.MedicalConditions
	}
	if req.Allergies != nil {
		s.Allergies = *req.Allergies
	}
	if req.Notes != nil {
		s.Notes = *req.Notes
	}
	if req.EmergencyContact != nil {
		s.EmergencyContact = *req.EmergencyContact
	}

	if err := sc.repo.UpdateStudent(s); err != nil {
		responses.InternalServerError(c, "Failed to update student: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Student updated successfully", s)
}

// @Summary      Remove a student
// @Description  Deletes a student and all their performances, attendance records, event participations and parent invites.
// @Tags         Students
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Student ID"
// @Success      200 {object} responses.SuccessResponse "Student deleted"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Student belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Student not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /students/{id} [delete]
func (sc *StudentController) DeleteStudent(c *gin.Context) {
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

	s, err := sc.repo.GetStudentByID(studentID)
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

	if err := sc.repo.DeleteStudent(studentID); err != nil {
		responses.InternalServerError(c, "Failed to delete student: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Student deleted successfully", nil)
}
