package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter; invalid values come back as 0
// and fall out naturally as not-found lookups.
func pathID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
