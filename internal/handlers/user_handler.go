package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/middleware"
	ucUser "github.com/BruksfildServices01/healthhub-scheduler/internal/usecase/user"
)

// UserHandler is the account administration surface. List and Delete are
// mounted behind the admin role; Profile checks the caller itself.
type UserHandler struct {
	list    *ucUser.ListUsers
	profile *ucUser.GetProfile
	remove  *ucUser.DeleteUser
	log     *zap.Logger
}

func NewUserHandler(
	list *ucUser.ListUsers,
	profile *ucUser.GetProfile,
	remove *ucUser.DeleteUser,
	log *zap.Logger,
) *UserHandler {
	return &UserHandler{
		list:    list,
		profile: profile,
		remove:  remove,
		log:     log,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.list.Execute(c.Request.Context(), c.Query("role"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Profile(c *gin.Context) {
	id, err := paramID(c, "userId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if !isSelfOrAdmin(c, id) {
		httperr.Respond(c, h.log, httperr.ErrForbidden("forbidden"))
		return
	}

	p, err := h.profile.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, p)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "userId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
