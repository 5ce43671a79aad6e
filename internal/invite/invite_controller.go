package invite

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/mailer"
	"github.com/PatelKrunal-11/stride/pkg/responses"
	"github.com/PatelKrunal-11/stride/pkg/utils"
)

// invalidCodeMessage deliberately does not distinguish missing, claimed
// and expired codes.
const invalidCodeMessage = "Invite code is invalid or already used"

type InviteController struct {
	repo        InviteRepository
	studentRepo student.StudentRepository
	mail        mailer.Mailer
	appConfig   *config.Config
}

func NewInviteController(repo InviteRepository, studentRepo student.StudentRepository, mail mailer.Mailer, appConfig *config.Config) *InviteController {
	return &InviteController{
		repo:        repo,
		studentRepo: studentRepo,
		mail:        mail,
		appConfig:   appConfig,
	}
}

func (ic *InviteController) sendInviteEmail(c *gin.Context, inv *ParentInvite, studentName string) {
	if inv.ParentEmail == "" {
		return
	}
	subject := fmt.Sprintf("You're invited to follow %s on Stride", studentName)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your coach invited you to follow <strong>%s</strong>'s training progress.</p><p>Open the Stride app and enter this invite code:</p><p><strong>%s</strong></p>",
		inv.ParentName, studentName, inv.InviteCode,
	)
	if ic.appConfig.App.FrontendURL != "" {
		body += fmt.Sprintf("<p>Or claim it directly: %s/invites/claim?code=%s</p>", ic.appConfig.App.FrontendURL, inv.InviteCode)
	}
	// Invite stays usable through the code even when delivery fails.
	if err := ic.mail.Send(c.Request.Context(), inv.ParentEmail, subject, body); err != nil {
		log.Printf("Failed to send invite email for invite %d: %v", inv.ID, err)
	}
}

// @Summary      Create a parent invite
// @Description  Issues a single-use invite code linking a parent to one roster student. Emails the code when a parent email is given.
// @Tags         Invites
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        invite body CreateInviteRequest true "Invite details"
// @Success      201 {object} responses.SuccessResponse "Invite created"
// @Failure      400 {object} responses.ErrorResponse "Validation error"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Student belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Student not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /invites [post]
func (ic *InviteController) CreateInvite(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	s, err := ic.studentRepo.GetStudentByID(req.StudentID)
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

	expiryDays := req.ExpiryDays
	if expiryDays == 0 {
		expiryDays = ic.appConfig.Invite.ExpiryDays
	}
	expiresAt := time.Now().AddDate(0, 0, expiryDays)

	inv := &ParentInvite{
		CoachID:     userID,
		StudentID:   req.StudentID,
		InviteCode:  utils.GenerateRandomToken(ic.appConfig.Invite.CodeLength),
		ParentName:  req.ParentName,
		ParentEmail: req.ParentEmail,
		ParentPhone: req.ParentPhone,
		ExpiresAt:   &expiresAt,
	}

	if err := ic.repo.CreateInvite(inv); err != nil {
		responses.InternalServerError(c, "Failed to create invite: "+err.Error())
		return
	}

	ic.sendInviteEmail(c, inv, s.Name)

	responses.SendSuccess(c, http.StatusCreated, "Invite created successfully", inv)
}

// @Summary      List invites
// @Description  Lists the authenticated coach's invites with their claim state.
// @Tags         Invites
// @Security     BearerAuth
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200 {object} responses.PaginatedResponse "Invites retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /invites [get]
func (ic *InviteController) GetInvites(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	page := utils.ParsePositiveQueryInt(c, "page", 1)
	limit := utils.ParsePositiveQueryInt(c, "limit", 10)

	invites, total, err := ic.repo.GetInvitesByCoach(userID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve invites: "+err.Error())
		return
	}

	responses.SendPaginated(c, http.StatusOK, "Invites retrieved successfully", invites, total, page, limit)
}

// @Summary      Revoke an invite
// @Description  Deletes an unclaimed invite so its code can no longer be used. Claimed invites cannot be revoked.
// @Tags         Invites
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Invite ID"
// @Success      200 {object} responses.SuccessResponse "Invite revoked"
// @Failure      400 {object} responses.ErrorResponse "Invite already claimed"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Invite belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Invite not found"
// @Failure      409 {object} responses.ErrorResponse "Invite claimed concurrently"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /invites/{id} [delete]
func (ic *InviteController) RevokeInvite(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	inviteID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid invite ID")
		return
	}

	inv, err := ic.repo.GetInviteByID(inviteID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch invite: "+err.Error())
		return
	}
	if inv == nil {
		responses.NotFound(c, "Invite")
		return
	}
	if inv.CoachID != userID {
		responses.Forbidden(c, "Invite belongs to another coach")
		return
	}

	if inv.Claimed {
		responses.BadRequest(c, "Invite cannot be revoked in its current state")
		return
	}

	if err := ic.repo.RevokeInvite(inviteID); err != nil {
		if errors.Is(err, ErrAlreadyClaimed) {
			responses.Conflict(c, "Invite was claimed in the meantime")
			return
		}
		responses.InternalServerError(c, "Failed to revoke invite: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Invite revoked successfully", nil)
}

// @Summary      Validate an invite code
// @Description  Looks up an invite code and returns who it links to. Does not claim the code.
// @Tags         Invites
// @Security     BearerAuth
// @Produce      json
// @Param        code query string true "Invite code"
// @Success      200 {object} responses.SuccessResponse "Invite is valid"
// @Failure      400 {object} responses.ErrorResponse "Missing code"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      409 {object} responses.ErrorResponse "Code invalid, claimed or expired"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /invites/validate [get]
func (ic *InviteController) ValidateInvite(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		responses.BadRequest(c, "Invite code is required")
		return
	}

	inv, err := ic.repo.GetInviteByCode(code)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch invite: "+err.Error())
		return
	}
	if inv == nil || inv.Claimed || inv.Expired() {
		responses.Conflict(c, invalidCodeMessage)
		return
	}

	coachName, err := ic.repo.GetCoachName(inv.CoachID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch coach: "+err.Error())
		return
	}

	preview := InvitePreview{
		InviteCode: inv.InviteCode,
		CoachName:  coachName,
		ExpiresAt:  inv.ExpiresAt,
	}
	if inv.Student != nil {
		preview.StudentName = inv.Student.Name
	}

	responses.SendSuccess(c, http.StatusOK, "Invite is valid", preview)
}

// @Summary      Claim an invite
// @Description  Claims a single-use invite code, linking the caller to the student and promoting the caller to the parent role. A code can only ever be claimed once.
// @Tags         Invites
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        claim body ClaimInviteRequest true "Invite code"
// @Success      200 {object} responses.SuccessResponse "Invite claimed"
// @Failure      400 {object} responses.ErrorResponse "Validation error"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      409 {object} responses.ErrorResponse "Code invalid, claimed or expired"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /invites/claim [post]
func (ic *InviteController) ClaimInvite(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req ClaimInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	inv, err := ic.repo.GetInviteByCode(req.InviteCode)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch invite: "+err.Error())
		return
	}
	if inv == nil || inv.Claimed || inv.Expired() {
		responses.Conflict(c, invalidCodeMessage)
		return
	}

	if err := ic.repo.ClaimInvite(inv.ID, userID); err != nil {
		if errors.Is(err, ErrAlreadyClaimed) {
			responses.Conflict(c, invalidCodeMessage)
			return
		}
		responses.InternalServerError(c, "Failed to claim invite: "+err.Error())
		return
	}

	var studentName string
	if inv.Student != nil {
		studentName = inv.Student.Name
	}

	responses.SendSuccess(c, http.StatusOK, "Invite claimed successfully", gin.H{
		"student_id":   inv.StudentID,
		"student_name": studentName,
	})
}
