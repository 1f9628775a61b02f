package handler

import (
	"net/http"

	"github.com/Eursukkul/paddle-center/booking-service/internal/dto"
	"github.com/Eursukkul/paddle-center/booking-service/internal/middleware"
	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"github.com/Eursukkul/paddle-center/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ResourceHandler struct {
	catalog      service.CatalogService
	availability service.AvailabilityService
}

func NewResourceHandler(catalog service.CatalogService, availability service.AvailabilityService) *ResourceHandler {
	return &ResourceHandler{catalog: catalog, availability: availability}
}

func (h *ResourceHandler) RegisterRoutes(g *echo.Group) {
	resources := g.Group("/resources")
	resources.GET("", h.ListResources)
	resources.GET("/:id", h.GetResource)
	resources.GET("/:id/slots", h.ListSlots)

	resources.POST("", h.CreateResource, middleware.RequireAdmin)
	resources.PATCH("/:id", h.RenameResource, middleware.RequireAdmin)
	resources.DELETE("/:id", h.DeleteResource, middleware.RequireAdmin)
	resources.POST("/:id/slots", h.CreateSlot, middleware.RequireAdmin)
}

func (h *ResourceHandler) ListResources(c echo.Context) error {
	kind := models.ResourceKind(c.QueryParam("kind"))
	if kind == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "kind is required")
	}

	resources, err := h.catalog.List(c.Request().Context(), kind)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToResourceResponses(resources))
}

func (h *ResourceHandler) GetResource(c echo.Context) error {
	resource, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToResourceResponse(resource))
}

func (h *ResourceHandler) CreateResource(c echo.Context) error {
	var req dto.CreateResourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resource, err := h.catalog.Create(c.Request().Context(), models.ResourceKind(req.Kind), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToResourceResponse(resource))
}

func (h *ResourceHandler) RenameResource(c echo.Context) error {
	var req dto.RenameResourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resource, err := h.catalog.Rename(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToResourceResponse(resource))
}

func (h *ResourceHandler) DeleteResource(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ResourceHandler) ListSlots(c echo.Context) error {
	after, err := parseAfter(c)
	if err != nil {
		return err
	}

	slots, err := h.availability.ListOpenSlots(c.Request().Context(), c.Param("id"), after)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToSlotResponses(slots))
}

func (h *ResourceHandler) CreateSlot(c echo.Context) error {
	var req dto.CreateSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: startTime must be "+dto.SlotTimeFormats)
	}
	if req.StartTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "startTime is required")
	}

	slot, err := h.availability.AddSlot(c.Request().Context(), c.Param("id"), req.StartTime.Time)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToSlotResponse(slot))
}
