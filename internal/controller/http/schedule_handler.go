// Package http exposes the core operations over a JSON API.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkhasanoff/academy-backend/internal/model"
	"github.com/mkhasanoff/academy-backend/internal/service"
)

type ScheduleHandler struct {
	schedules *service.ScheduleService
}

func NewScheduleHandler(schedules *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// Check runs a conflict check without persisting anything.
// POST /api/schedule/check
func (h *ScheduleHandler) Check(c *gin.Context) {
	req, candidate, weekStart, ok := h.bindSchedule(c)
	if !ok {
		return
	}

	conflicts, err := h.schedules.CheckAssignment(c.Request.Context(), req.OwnerID, candidate, weekStart)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toConflictsResponse(conflicts))
}

// Assign persists the candidate availability when conflict-free; otherwise
// returns the conflict list with 409 and writes nothing.
// POST /api/schedule/assign
func (h *ScheduleHandler) Assign(c *gin.Context) {
	req, candidate, weekStart, ok := h.bindSchedule(c)
	if !ok {
		return
	}

	conflicts, err := h.schedules.AssignAvailability(c.Request.Context(), req.OwnerID, candidate, weekStart)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(conflicts) > 0 {
		c.JSON(http.StatusConflict, toConflictsResponse(conflicts))
		return
	}

	c.JSON(http.StatusCreated, toConflictsResponse(nil))
}

// RemoveAvailability deletes one availability entry.
// DELETE /api/owners/:id/availability/:entry_id
func (h *ScheduleHandler) RemoveAvailability(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || ownerID <= 0 {
		writeError(c, &model.ValidationError{Field: "id", Reason: "must be a positive integer"})
		return
	}
	entryID, err := strconv.ParseInt(c.Param("entry_id"), 10, 64)
	if err != nil {
		writeError(c, &model.ValidationError{Field: "entry_id", Reason: "must be an integer"})
		return
	}

	if err := h.schedules.RemoveAvailability(c.Request.Context(), ownerID, entryID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) bindSchedule(c *gin.Context) (*weeklyScheduleRequest, model.WeeklySchedule, time.Time, bool) {
	var req weeklyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, time.Time{}, false
	}

	candidate, err := req.schedule()
	if err != nil {
		writeError(c, err)
		return nil, nil, time.Time{}, false
	}
	weekStart, err := req.weekStart()
	if err != nil {
		writeError(c, err)
		return nil, nil, time.Time{}, false
	}

	return &req, candidate, weekStart, true
}

// writeError maps domain failures onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case model.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNoActiveSubscription):
		c.JSON(http.StatusNotFound, gin.H{"error": "cannot calculate: no active subscription for this period"})
	case errors.Is(err, model.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "subscription changed concurrently, re-check current state before retrying"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
