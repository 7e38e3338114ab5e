package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Readiness returns a handler for readiness probes. The service is not ready
// while any component reports unhealthy.
func Readiness(svc Service, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ready"
		httpStatus := http.StatusOK

		if checker != nil && Aggregate(checker(c.Request.Context())) == StatusUnhealthy {
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"service":   svc.Name,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
