package handlers

import (
	"fmt"
	"strconv"

	"lawyerconnect/middleware"
	"lawyerconnect/models"

	"github.com/gin-gonic/gin"
)

// int64Param parses a numeric path parameter. Malformed ids read as unknown.
func int64Param(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s %q: %w", name, c.Param(name), models.ErrNotFound)
	}
	return id, nil
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

func callerID(c *gin.Context) string {
	return middleware.CurrentUserID(c)
}

func callerRole(c *gin.Context) string {
	return c.GetString(middleware.ContextRole)
}
