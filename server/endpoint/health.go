package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scribe/component"
)

// Aggregate service states.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// Service identifies the running gateway in endpoint bodies.
type Service struct {
	Name    string
	Version string
	// Provider is the transcription backend selected at startup.
	Provider string
}

// HealthReport is the /health body.
type HealthReport struct {
	Status     string             `json:"status"`
	Service    string             `json:"service"`
	Provider   string             `json:"provider,omitempty"`
	Timestamp  string             `json:"timestamp"`
	Components []component.Health `json:"components,omitempty"`
}

// Aggregate folds component states into one service state. Any unhealthy
// component wins over degraded ones.
func Aggregate(components []component.Health) string {
	status := StatusHealthy
	for _, ch := range components {
		switch ch.Status {
		case component.StatusUnhealthy:
			return StatusUnhealthy
		case component.StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}

// Health reports the aggregate state, the selected provider and every
// component. Unhealthy answers 503.
func Health(svc Service, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var components []component.Health
		if checker != nil {
			components = checker(c.Request.Context())
		}

		report := HealthReport{
			Status:     Aggregate(components),
			Service:    svc.Name,
			Provider:   svc.Provider,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Components: components,
		}
		httpStatus := http.StatusOK
		if report.Status == StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}
		c.JSON(httpStatus, report)
	}
}
