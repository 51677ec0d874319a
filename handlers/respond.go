package handlers

import (
	"net/http"
	"time"

	"swatrental/middleware"
	"swatrental/models"
	"swatrental/utils"

	"github.com/gin-gonic/gin"
)

// dateLayouts are tried in order when parsing request dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, utils.Validation(field + " must be a date (YYYY-MM-DD or RFC3339)")
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": data})
}

func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondError(c *gin.Context, err error) {
	utils.JSONError(c, err)
}

func badRequest(c *gin.Context, err error) {
	respondError(c, utils.Validation("Invalid request body: "+err.Error()))
}

// currentActor aborts with Unauthorized when the auth middleware did not run.
func currentActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, utils.NewError(utils.KindUnauthorized, "Not authorized"))
	}
	return actor, ok
}
