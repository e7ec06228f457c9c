package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/serenica/retreat-backoffice/internal/dto"
	"github.com/serenica/retreat-backoffice/internal/models"
	"github.com/serenica/retreat-backoffice/internal/service"
	"gorm.io/datatypes"
)

type RetreatHandler struct {
	svc         service.RetreatService
	waitlistSvc service.WaitlistService
}

func NewRetreatHandler(svc service.RetreatService, waitlistSvc service.WaitlistService) *RetreatHandler {
	return &RetreatHandler{svc: svc, waitlistSvc: waitlistSvc}
}

func (h *RetreatHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/retreats")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/availability", h.Availability)
}

func (h *RetreatHandler) Create(c echo.Context) error {
	var req dto.CreateRetreatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Title == "" || req.Capacity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "title and capacity (>0) are required")
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !endDate.After(startDate) {
		return echo.NewHTTPError(http.StatusBadRequest, "endDate must be after startDate")
	}

	retreatType := models.RetreatType(req.Type)
	if retreatType == "" {
		retreatType = models.RetreatWellness
	}

	retreat := &models.Retreat{
		Title:     req.Title,
		Capacity:  req.Capacity,
		Price:     req.Price,
		StartDate: startDate,
		EndDate:   endDate,
		Location:  req.Location,
		Type:      retreatType,
		Amenities: datatypes.JSON(req.Amenities),
	}
	if err := h.svc.CreateRetreat(c.Request().Context(), retreat); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, retreat)
}

func (h *RetreatHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid retreat id")
	}

	retreat, err := h.svc.GetRetreat(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrRetreatNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "retreat not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, retreat)
}

func (h *RetreatHandler) List(c echo.Context) error {
	retreats, err := h.svc.ListRetreats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, retreats)
}

// Availability returns the capacity snapshot for a candidate interval. With
// no interval given it falls back to the retreat's own date range.
func (h *RetreatHandler) Availability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid retreat id")
	}

	retreat, err := h.svc.GetRetreat(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrRetreatNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "retreat not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	checkIn, checkOut := retreat.StartDate, retreat.EndDate
	if raw := c.QueryParam("checkIn"); raw != "" {
		if checkIn, err = parseDate(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if raw := c.QueryParam("checkOut"); raw != "" {
		if checkOut, err = parseDate(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	snapshot, err := h.waitlistSvc.AvailableSpots(c.Request().Context(), retreat.ID, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, service.ErrRetreatNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		RetreatID:        retreat.ID,
		CapacitySnapshot: *snapshot,
	})
}
