package elderly

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/handler"
	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/service/elderly"
)

type Handler struct {
	service *elderly.Service
}

func NewHandler(service *elderly.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/elderly")
	{
		group.POST("", h.CreateElderly)
		group.GET("", h.ListElderly)
		group.GET("/:id", h.GetElderly)
		group.PUT("/:id", h.UpdateElderly)
		group.DELETE("/:id", h.DeleteElderly)
		group.GET("/:id/caregivers", h.ListCaregivers)
		group.POST("/:id/caregivers/:caregiverId", h.AssignCaregiver)
		group.DELETE("/:id/caregivers/:caregiverId", h.RemoveCaregiver)
	}
}

func (h *Handler) CreateElderly(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	var req model.CreateElderlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	e, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(e))
}

func (h *Handler) GetElderly(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid elderly ID"))
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(e))
}

func (h *Handler) ListElderly(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	list, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) UpdateElderly(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid elderly ID"))
		return
	}

	var req model.UpdateElderlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	e, err := h.service.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(e))
}

func (h *Handler) DeleteElderly(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid elderly ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListCaregivers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid elderly ID"))
		return
	}

	caregivers, err := h.service.ListCaregivers(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(caregivers))
}

func (h *Handler) AssignCaregiver(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	elderlyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid elderly ID"))
		return
	}
	caregiverID, err := uuid.Parse(c.Param("caregiverId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid caregiver ID"))
		return
	}

	if err := h.service.AssignCaregiver(c.Request.Context(), actor, elderlyID, caregiverID); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(nil))
}

func (h *Handler) RemoveCaregiver(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	elderlyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid elderly ID"))
		return
	}
	caregiverID, err := uuid.Parse(c.Param("caregiverId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid caregiver ID"))
		return
	}

	if err := h.service.RemoveCaregiver(c.Request.Context(), actor, elderlyID, caregiverID); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
