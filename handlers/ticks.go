package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"timerange/timeline"

	"github.com/gin-gonic/gin"
)

// TicksHandler returns the ticks of ?start=&end= (RFC 3339) for ?count=,
// without a session.
func TicksHandler(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid start", "message": err.Error()})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid end", "message": err.Error()})
		return
	}
	count := timeline.DefaultTicksNumber
	if raw := c.Query("count"); raw != "" {
		if count, err = strconv.Atoi(raw); err != nil || count < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid count"})
			return
		}
		if count > timeline.MaxTicksNumber {
			respondError(c, "Invalid count", fmt.Errorf("%w: %d", timeline.ErrTooManyTicks, count))
			return
		}
	}

	domain := timeline.Interval{Start: start, End: end}
	mapper, err := timeline.NewMapper(domain)
	if err != nil {
		respondError(c, "Invalid timeline", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticks": mapper.Ticks(count, timeline.FormatTick)})
}
