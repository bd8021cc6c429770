package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkhasanoff/academy-backend/internal/model"
	"github.com/mkhasanoff/academy-backend/internal/service"
)

type BillingHandler struct {
	billing    *service.BillingService
	attendance *service.AttendanceService
}

func NewBillingHandler(billing *service.BillingService, attendance *service.AttendanceService) *BillingHandler {
	return &BillingHandler{
		billing:    billing,
		attendance: attendance,
	}
}

// Calculate reconciles a student's billing for a period.
// GET /api/students/:id/billing?from=2026-03-01&to=2026-04-01
func (h *BillingHandler) Calculate(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	calc, err := h.billing.Calculate(c.Request.Context(), studentID, from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBillingResponse(calc))
}

// Sessions lists a student's sessions with attendance outcomes.
// GET /api/students/:id/sessions?from=...&to=...
func (h *BillingHandler) Sessions(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	pairs, err := h.attendance.SessionsInRange(c.Request.Context(), studentID, from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": toSessionBodies(pairs)})
}

// MarkAttendance records a student's outcome for a session (upsert).
// PUT /api/sessions/:id/attendance
func (h *BillingHandler) MarkAttendance(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, &model.ValidationError{Field: "id", Reason: "must be a uuid"})
		return
	}

	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.attendance.Mark(c.Request.Context(), req.StudentID, sessionID, model.AttendanceStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func rangeParams(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := parseDate("from", c.Query("from"))
	if err != nil {
		writeError(c, err)
		return time.Time{}, time.Time{}, false
	}
	to, err := parseDate("to", c.Query("to"))
	if err != nil {
		writeError(c, err)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
