package handlers

import (
	"net/http"

	"timerange/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest health snapshot. Missing backends degrade
// the status but the picker endpoints keep serving.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	state := "ok"
	if !status.Mongo || !status.Redis {
		state = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": state, "checks": status})
}
