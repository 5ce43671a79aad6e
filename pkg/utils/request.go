package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam parses a numeric path parameter into a uint ID.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ParsePositiveQueryInt reads a query parameter as a positive int, falling
// back to the default when missing or invalid.
func ParsePositiveQueryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
