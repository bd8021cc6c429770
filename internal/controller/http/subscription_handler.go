package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkhasanoff/academy-backend/internal/model"
	"github.com/mkhasanoff/academy-backend/internal/service"
)

type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptions *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// Activate binds a student to a plan, replacing any active binding.
// POST /api/students/:id/subscriptions
func (h *SubscriptionHandler) Activate(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}

	var req activateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscriptionID, err := uuid.Parse(req.SubscriptionID)
	if err != nil {
		writeError(c, &model.ValidationError{Field: "subscription_id", Reason: "must be a uuid"})
		return
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(c, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}

	ss, err := h.subscriptions.Activate(c.Request.Context(), studentID, subscriptionID, start, end)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ss)
}

// Deactivate marks a binding inactive. Idempotent, always 204 on success.
// DELETE /api/subscriptions/:id
func (h *SubscriptionHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, &model.ValidationError{Field: "id", Reason: "must be a uuid"})
		return
	}

	if err := h.subscriptions.Deactivate(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CurrentActive returns the binding covering as_of (default now).
// GET /api/students/:id/subscription?as_of=2026-03-15
func (h *SubscriptionHandler) CurrentActive(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := parseDate("as_of", raw)
		if err != nil {
			writeError(c, err)
			return
		}
		asOf = parsed
	}

	ss, err := h.subscriptions.CurrentActive(c.Request.Context(), studentID, asOf)
	if err != nil {
		writeError(c, err)
		return
	}
	if ss == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active subscription"})
		return
	}

	c.JSON(http.StatusOK, ss)
}

func studentIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, &model.ValidationError{Field: "id", Reason: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, &model.ValidationError{Field: field, Reason: "expected YYYY-MM-DD"}
	}
	return t.UTC(), nil
}
