package audit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/handler"
	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/service/audit"
)

type Handler struct {
	service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	logs := r.Group("/audit-logs")
	{
		logs.GET("", h.ListAuditLogs)
	}
}

// ListAuditLogs is scoped to the caller's organization regardless of the
// filters supplied.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	filters := &model.AuditLogFilters{OrganizationID: actor.OrganizationID}

	if id := c.Query("user_id"); id != "" {
		userID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
			return
		}
		filters.UserID = userID
	}
	if action := c.Query("action"); action != "" {
		filters.Action = action
	}
	if entity := c.Query("entity"); entity != "" {
		filters.EntityName = entity
	}
	if date := c.Query("start_date"); date != "" {
		start, err := time.Parse(time.RFC3339, date)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid start date"))
			return
		}
		filters.StartDate = start
	}
	if date := c.Query("end_date"); date != "" {
		end, err := time.Parse(time.RFC3339, date)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid end date"))
			return
		}
		filters.EndDate = end
	}

	logs, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(logs))
}
