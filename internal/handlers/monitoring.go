package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

func checkMonitoringKey(c *gin.Context) bool {
	expected := strings.TrimSpace(os.Getenv("MONITORING_API_KEY"))
	if expected == "" {
		detail(c, http.StatusServiceUnavailable, "Monitoring API is disabled")
		return false
	}

	provided := strings.TrimSpace(c.GetHeader("X-Monitoring-Key"))
	if provided == "" || provided != expected {
		detail(c, http.StatusUnauthorized, "Invalid monitoring key")
		return false
	}
	return true
}

// MonitorStatus returns a runtime snapshot, gated by the monitoring key.
func (a *API) MonitorStatus(c *gin.Context) {
	if !checkMonitoringKey(c) {
		return
	}
	c.JSON(http.StatusOK, a.Monitoring.Snapshot())
}
