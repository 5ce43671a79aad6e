package event

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/responses"
	"github.com/PatelKrunal-11/stride/pkg/utils"
)

type EventController struct {
	repo        EventRepository
	studentRepo student.StudentRepository
	appConfig   *config.Config
}

func NewEventController(repo EventRepository, studentRepo student.StudentRepository, appConfig *config.Config) *EventController {
	return &EventController{
		repo:        repo,
		studentRepo: studentRepo,
		appConfig:   appConfig,
	}
}

// ownedStudentIDs verifies every ID belongs to the coach's roster and
// returns the set that passed.
func (ec *EventController) ownedStudentIDs(coachID uint, ids []uint) ([]uint, error) {
	students, err := ec.studentRepo.GetStudentsByIDs(ids)
	if err != nil {
		return nil, err
	}
	owned := make(map[uint]bool, len(students))
	for _, s := range students {
		if s.CoachID == coachID {
			owned[s.ID] = true
		}
	}
	var result []uint
	for _, id := range ids {
		if owned[id] {
			result = append(result, id)
		}
	}
	return result, nil
}

// @Summary      Create an event
// @Description  Schedules a new training event for the authenticated coach, optionally with initial participants.
// @Tags         Events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        event body CreateEventRequest true "Event details"
// @Success      201 {object} responses.SuccessResponse "Event created"
// @Failure      400 {object} responses.ErrorResponse "Validation error"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events [post]
func (ec *EventController) CreateEvent(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	rounds := req.Rounds
	if rounds == 0 {
		rounds = 1
	}

	e := &Event{
		CoachID:     userID,
		Name:        req.Name,
		Type:        req.Type,
		ScheduledAt: req.ScheduledAt,
		Rounds:      rounds,
		Status:      StatusPlanned,
	}

	if len(req.ParticipantIDs) > 0 {
		owned, err := ec.ownedStudentIDs(userID, req.ParticipantIDs)
		if err != nil {
			responses.InternalServerError(c, "Failed to verify participants: "+err.Error())
			return
		}
		if len(owned) != len(req.ParticipantIDs) {
			responses.BadRequest(c, "All participants must be students on your roster")
			return
		}
		for _, studentID := range owned {
			e.Participants = append(e.Participants, EventParticipant{StudentID: studentID})
		}
	}

	if err := ec.repo.CreateEvent(e); err != nil {
		responses.InternalServerError(c, "Failed to create event: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Event created successfully", e)
}

// @Summary      List events
// @Description  Lists the authenticated coach's events with optional status and type filters.
// @Tags         Events
// @Security     BearerAuth
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Param        status query string false "Filter by status" Enums(planned, in_progress, completed)
// @Param        type query string false "Filter by event type" Enums(running, long_jump, high_jump, shot_put, javelin, discus)
// @Success      200 {object} responses.PaginatedResponse "Events retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events [get]
func (ec *EventController) GetEvents(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	page := utils.ParsePositiveQueryInt(c, "page", 1)
	limit := utils.ParsePositiveQueryInt(c, "limit", 10)

	filters := make(map[string]interface{})
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if eventType := c.Query("type"); eventType != "" {
		filters["type"] = eventType
	}

	events, total, err := ec.repo.GetEventsByCoach(userID, page, limit, filters)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve events: "+err.Error())
		return
	}

	responses.SendPaginated(c, http.StatusOK, "Events retrieved successfully", events, total, page, limit)
}

// @Summary      Get an event
// @Description  Retrieves one event with its participants.
// @Tags         Events
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse "Event retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Event belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Event not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events/{id} [get]
func (ec *EventController) GetEventByID(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	eventID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event: "+err.Error())
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.CoachID != userID {
		responses.Forbidden(c, "Event belongs to another coach")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Event retrieved successfully", e)
}

// @Summary      Update an event
// @Description  Updates event details. Completed events cannot be edited.
// @Tags         Events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Event ID"
// @Param        event body UpdateEventRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse "Event updated"
// @Failure      400 {object} responses.ErrorResponse "Validation error or event completed"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Event belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Event not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events/{id} [put]
func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	eventID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event: "+err.Error())
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.CoachID != userID {
		responses.Forbidden(c, "Event belongs to another coach")
		return
	}

	if e.Status == StatusCompleted {
		responses.BadRequest(c, "Completed events cannot be edited")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.ScheduledAt != nil {
		e.ScheduledAt = *req.ScheduledAt
	}
	if req.Rounds != nil {
		e.Rounds = *req.Rounds
	}

	if err := ec.repo.UpdateEvent(e); err != nil {
		responses.InternalServerError(c, "Failed to update event: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Event updated successfully", e)
}

// @Summary      Delete an event
// @Description  Deletes an event and all its performance and participant records.
// @Tags         Events
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse "Event deleted"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Event belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Event not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events/{id} [delete]
func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	eventID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event: "+err.Error())
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.CoachID != userID {
		responses.Forbidden(c, "Event belongs to another coach")
		return
	}

	if err := ec.repo.DeleteEvent(eventID); err != nil {
		responses.InternalServerError(c, "Failed to delete event: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Event deleted successfully", nil)
}

// @Summary      Start an event
// @Description  Moves a planned event into progress so performances can be recorded.
// @Tags         Events
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse "Event started"
// @Failure      400 {object} responses.ErrorResponse "Event cannot be started in its current state"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Event belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Event not found"
// @Failure      409 {object} responses.ErrorResponse "Event state changed concurrently"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events/{id}/start [post]
func (ec *EventController) StartEvent(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	eventID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event: "+err.Error())
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.CoachID != userID {
		responses.Forbidden(c, "You are not authorized to start this event")
		return
	}

	if e.Status != StatusPlanned {
		responses.BadRequest(c, "Event cannot be started in its current state")
		return
	}

	if err := ec.repo.StartEvent(eventID); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			responses.Conflict(c, "Event state changed, please reload")
			return
		}
		responses.InternalServerError(c, "Failed to start event: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Event started successfully", nil)
}

// @Summary      Finish an event
// @Description  Completes an in-progress event. Requires at least one recorded performance; computes and stores the final ranking.
// @Tags         Events
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse "Event completed with final ranking"
// @Failure      400 {object} responses.ErrorResponse "No performances recorded or event not in progress"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Event belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Event not found"
// @Failure      409 {object} responses.ErrorResponse "Event state changed concurrently"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events/{id}/finish [post]
func (ec *EventController) FinishEvent(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	eventID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event: "+err.Error())
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.CoachID != userID {
		responses.Forbidden(c, "You are not authorized to finish this event")
		return
	}

	if e.Status != StatusInProgress {
		responses.BadRequest(c, "Event cannot be finished in its current state")
		return
	}

	count, err := ec.repo.CountPerformancesByEvent(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to count performances: "+err.Error())
		return
	}
	if count == 0 {
		responses.BadRequest(c, "Cannot finish an event with no recorded performances")
		return
	}

	performances, err := ec.repo.GetPerformancesByEvent(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load performances: "+err.Error())
		return
	}

	ranking := Rank(e.Type, performances)

	snapshot, err := json.Marshal(ranking)
	if err != nil {
		responses.InternalServerError(c, "Failed to encode ranking: "+err.Error())
		return
	}

	ranks := make(map[uint]int, len(ranking))
	for _, row := range ranking {
		ranks[row.PerformanceID] = row.Rank
	}

	if err := ec.repo.FinishEvent(eventID, datatypes.JSON(snapshot), ranks); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			responses.Conflict(c, "Event state changed, please reload")
			return
		}
		responses.InternalServerError(c, "Failed to finish event: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Event completed successfully", gin.H{"ranking": ranking})
}

// @Summary      Add participants to an event
// @Description  Adds roster students to the event. Not allowed once the event is completed.
// @Tags         Events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Event ID"
// @Param        participants body AddParticipantsRequest true "Student IDs to add"
// @Success      200 {object} responses.SuccessResponse "Participants added"
// @Failure      400 {object} responses.ErrorResponse "Validation error or event completed"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Event belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Event not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events/{id}/participants [post]
func (ec *EventController) AddParticipants(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	eventID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event: "+err.Error())
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.CoachID != userID {
		responses.Forbidden(c, "Event belongs to another coach")
		return
	}

	if e.Status == StatusCompleted {
		responses.BadRequest(c, "Participants cannot be changed on a completed event")
		return
	}

	var req AddParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	owned, err := ec.ownedStudentIDs(userID, req.StudentIDs)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify participants: "+err.Error())
		return
	}
	if len(owned) != len(req.StudentIDs) {
		responses.BadRequest(c, "All participants must be students on your roster")
		return
	}

	added := make([]uint, 0, len(owned))
	for _, studentID := range owned {
		exists, err := ec.repo.IsParticipant(eventID, studentID)
		if err != nil {
			responses.InternalServerError(c, "Failed to check participant: "+err.Error())
			return
		}
		if exists {
			continue // already on the event
		}
		if err := ec.repo.AddParticipant(&EventParticipant{EventID: eventID, StudentID: studentID}); err != nil {
			responses.InternalServerError(c, "Failed to add participant: "+err.Error())
			return
		}
		added = append(added, studentID)
	}

	responses.SendSuccess(c, http.StatusOK, "Participants added successfully", gin.H{"added": added})
}

// @Summary      Remove a participant from an event
// @Description  Removes a student from the event. Not allowed once the event is completed.
// @Tags         Events
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Event ID"
// @Param        studentId path int true "Student ID"
// @Success      200 {object} responses.SuccessResponse "Participant removed"
// @Failure      400 {object} responses.ErrorResponse "Event completed"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Event belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Event or participant not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events/{id}/participants/{studentId} [delete]
func (ec *EventController) RemoveParticipant(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	eventID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}
	studentID, err := utils.ParseIDParam(c, "studentId")
	if err != nil {
		responses.BadRequest(c, "Invalid student ID")
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event: "+err.Error())
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.CoachID != userID {
		responses.Forbidden(c, "Event belongs to another coach")
		return
	}

	if e.Status == StatusCompleted {
		responses.BadRequest(c, "Participants cannot be changed on a completed event")
		return
	}

	if err := ec.repo.RemoveParticipant(eventID, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Participant")
			return
		}
		responses.InternalServerError(c, "Failed to remove participant: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Participant removed successfully", nil)
}

// @Summary      Record a performance
// @Description  Records a measurement for a participant in a round. Only allowed while the event is in progress. Flags personal bests against the student's history for the discipline.
// @Tags         Performances
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Event ID"
// @Param        performance body RecordPerformanceRequest true "Performance details"
// @Success      201 {object} responses.SuccessResponse "Performance recorded"
// @Failure      400 {object} responses.ErrorResponse "Validation error, bad measurement, bad round or event not in progress"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Event belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Event not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events/{id}/performances [post]
func (ec *EventController) RecordPerformance(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	eventID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event: "+err.Error())
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.CoachID != userID {
		responses.Forbidden(c, "Event belongs to another coach")
		return
	}

	if e.Status != StatusInProgress {
		responses.BadRequest(c, "Performances can only be recorded while the event is in progress")
		return
	}

	var req RecordPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	round := req.Round
	if round == 0 {
		round = 1
	}
	if round > e.Rounds {
		responses.BadRequest(c, "Round exceeds the number of rounds for this event")
		return
	}

	isParticipant, err := ec.repo.IsParticipant(eventID, req.StudentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check participant: "+err.Error())
		return
	}
	if !isParticipant {
		responses.BadRequest(c, "Student is not a participant of this event")
		return
	}

	measurement, err := ParseMeasurement(req.Measurement, e.Type)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			responses.BadRequest(c, parseErr.Error())
			return
		}
		responses.BadRequest(c, "Invalid measurement")
		return
	}

	history, err := ec.repo.GetStudentHistoryValues(req.StudentID, e.Type)
	if err != nil {
		responses.InternalServerError(c, "Failed to load performance history: "+err.Error())
		return
	}

	p := &Performance{
		EventID:      eventID,
		StudentID:    req.StudentID,
		Round:        round,
		Measurement:  measurement.Raw,
		Value:        measurement.Value,
		PersonalBest: IsPersonalBest(e.Type, measurement.Value, history),
	}

	if err := ec.repo.CreatePerformance(p); err != nil {
		responses.InternalServerError(c, "Failed to record performance: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Performance recorded successfully", p)
}

// @Summary      List event performances
// @Description  Lists every recorded performance for the event, newest round order first.
// @Tags         Performances
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse "Performances retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Event belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Event not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events/{id}/performances [get]
func (ec *EventController) GetEventPerformances(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	eventID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event: "+err.Error())
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.CoachID != userID {
		responses.Forbidden(c, "Event belongs to another coach")
		return
	}

	performances, err := ec.repo.GetPerformancesByEvent(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve performances: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Performances retrieved successfully", performances)
}

// @Summary      Get event ranking
// @Description  Computes the current ranking from recorded performances: best row per student, lower time wins for running, greater distance wins for field events.
// @Tags         Performances
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse "Ranking computed"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Event belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Event not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /events/{id}/ranking [get]
func (ec *EventController) GetEventRanking(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	eventID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event: "+err.Error())
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.CoachID != userID {
		responses.Forbidden(c, "Event belongs to another coach")
		return
	}

	performances, err := ec.repo.GetPerformancesByEvent(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve performances: "+err.Error())
		return
	}

	ranking := Rank(e.Type, performances)

	responses.SendSuccess(c, http.StatusOK, "Ranking computed successfully", gin.H{
		"event_id": e.ID,
		"type":     e.Type,
		"status":   e.Status,
		"ranking":  ranking,
	})
}

// @Summary      Get a student's performance history
// @Description  Lists a roster student's performances across all events, newest first, including event details and personal-best flags.
// @Tags         Performances
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Student ID"
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Success      200 {object} responses.PaginatedResponse "Performance history retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Student belongs to another coach"
// @Failure      404 {object} responses.ErrorResponse "Student not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /students/{id}/performances [get]
func (ec *EventController) GetStudentPerformances(c *gin.Context) {
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

	s, err := ec.studentRepo.GetStudentByID(studentID)
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

	page := utils.ParsePositiveQueryInt(c, "page", 1)
	limit := utils.ParsePositiveQueryInt(c, "limit", 20)

	performances, total, err := ec.repo.GetPerformancesByStudent(studentID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve performances: "+err.Error())
		return
	}

	responses.SendPaginated(c, http.StatusOK, "Performance history retrieved successfully", performances, total, page, limit)
}
