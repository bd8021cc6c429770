package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the handlers into a gin engine with logging and a
// per-request timeout.
func NewRouter(
	env string,
	requestTimeout time.Duration,
	logger *zap.Logger,
	schedules *ScheduleHandler,
	subscriptions *SubscriptionHandler,
	billing *BillingHandler,
) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(RequestTimeout(requestTimeout))

	api := r.Group("/api")
	{
		api.POST("/schedule/check", schedules.Check)
		api.POST("/schedule/assign", schedules.Assign)
		api.DELETE("/owners/:id/availability/:entry_id", schedules.RemoveAvailability)

		api.POST("/students/:id/subscriptions", subscriptions.Activate)
		api.GET("/students/:id/subscription", subscriptions.CurrentActive)
		api.DELETE("/subscriptions/:id", subscriptions.Deactivate)

		api.GET("/students/:id/sessions", billing.Sessions)
		api.GET("/students/:id/billing", billing.Calculate)
		api.PUT("/sessions/:id/attendance", billing.MarkAttendance)
	}

	return r
}
