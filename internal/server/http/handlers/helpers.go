package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserIDParam extracts the numeric user identifier from the route. The
// second return value is false for malformed or non-positive identifiers.
func UserIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
