package caregiver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/handler"
	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/service/caregiver"
)

type Handler struct {
	service *caregiver.Service
}

func NewHandler(service *caregiver.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	caregivers := r.Group("/caregivers")
	{
		caregivers.POST("", h.CreateCaregiver)
		caregivers.GET("", h.ListCaregivers)
		caregivers.GET("/:id", h.GetCaregiver)
		caregivers.PUT("/:id", h.UpdateCaregiver)
		caregivers.DELETE("/:id", h.DeleteCaregiver)
		caregivers.GET("/:id/elderly", h.ListElderly)
	}
}

func (h *Handler) CreateCaregiver(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	var req model.CreateCaregiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	cg, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(cg))
}

func (h *Handler) GetCaregiver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid caregiver ID"))
		return
	}

	cg, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(cg))
}

func (h *Handler) ListCaregivers(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if specialty := c.Query("specialty"); specialty != "" {
		caregivers, err := h.service.FindBySpecialty(c.Request.Context(), actor, specialty)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(caregivers))
		return
	}

	caregivers, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(caregivers))
}

func (h *Handler) UpdateCaregiver(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid caregiver ID"))
		return
	}

	var req model.UpdateCaregiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	cg, err := h.service.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(cg))
}

func (h *Handler) DeleteCaregiver(c *gin.Context) {
	actor, err := handler.ActorFromContext(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid caregiver ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListElderly(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid caregiver ID"))
		return
	}

	elderly, err := h.service.ListElderly(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(elderly))
}
