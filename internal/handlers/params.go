package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/middleware"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

func paramID(c *gin.Context, name string) (uuid.UUID, error) {
	return parseID(c.Param(name))
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, httperr.ErrValidation("invalid_id")
	}
	return id, nil
}

// isSelfOrAdmin reports whether the caller is ownerUserID or an admin.
func isSelfOrAdmin(c *gin.Context, ownerUserID uuid.UUID) bool {
	if c.GetString(middleware.ContextUserRole) == models.RoleAdmin {
		return true
	}
	caller := middleware.CurrentUserID(c)
	return caller != nil && *caller == ownerUserID
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}

func isDoctor(c *gin.Context) bool {
	return c.GetString(middleware.ContextUserRole) == models.RoleDoctor
}
