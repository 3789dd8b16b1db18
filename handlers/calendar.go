package handlers

import (
	"net/http"
	"time"

	"citaflow/models"
	"citaflow/services/availability"
	"citaflow/utils"

	"github.com/gin-gonic/gin"
)

// ResolveMonthCalendar renders the 42-cell month grid for the anchor date
// (defaults to today).
func ResolveMonthCalendar(c *gin.Context) {
	anchor, ok := parseAnchor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"cells": availability.ResolveMonth(anchor, time.Now())})
}

// ResolveWeekCalendar renders the 7-cell Sunday-started week for the anchor
// date (defaults to today).
func ResolveWeekCalendar(c *gin.Context) {
	anchor, ok := parseAnchor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"cells": availability.ResolveWeek(anchor, time.Now())})
}

func parseAnchor(c *gin.Context) (time.Time, bool) {
	raw := c.Query("anchor")
	if raw == "" {
		return time.Now(), true
	}
	anchor, err := time.ParseInLocation(models.DateLayout, raw, time.Local)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid anchor date", err.Error())
		return time.Time{}, false
	}
	return anchor, true
}
