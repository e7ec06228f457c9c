package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/serenica/retreat-backoffice/internal/dto"
	"github.com/serenica/retreat-backoffice/internal/models"
	"github.com/serenica/retreat-backoffice/internal/service"
)

type WaitlistHandler struct {
	svc service.WaitlistService
}

func NewWaitlistHandler(svc service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{svc: svc}
}

func (h *WaitlistHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/waitlist")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PATCH("", h.Update)
	g.DELETE("", h.Delete)
}

func (h *WaitlistHandler) List(c echo.Context) error {
	page, limit := parsePagination(c)
	retreatID, err := optionalUintQuery(c, "retreatId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entries, total, err := h.svc.List(c.Request().Context(), retreatID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := dto.WaitlistListResponse{
		Waitlist:   make([]dto.WaitlistEntryResponse, len(entries)),
		Pagination: dto.NewPagination(page, limit, total),
	}
	for i := range entries {
		resp.Waitlist[i] = dto.ToWaitlistEntryResponse(&entries[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *WaitlistHandler) Create(c echo.Context) error {
	var req dto.CreateWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.RetreatID == 0 || req.GuestData.Email == "" || req.CheckInDate == "" ||
		req.CheckOutDate == "" || req.GuestCount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest,
			"retreatId, guestData, checkInDate, checkOutDate and guestCount are required")
	}

	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !checkOut.After(checkIn) {
		return echo.NewHTTPError(http.StatusBadRequest, "checkOutDate must be after checkInDate")
	}

	booking, err := h.svc.Join(c.Request().Context(), service.JoinWaitlistInput{
		RetreatID: req.RetreatID,
		Guest: models.Guest{
			FirstName: req.GuestData.FirstName,
			LastName:  req.GuestData.LastName,
			Email:     req.GuestData.Email,
			Phone:     req.GuestData.Phone,
		},
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		GuestCount:   req.GuestCount,
		Priority:     models.WaitlistPriority(req.Priority),
		Notes:        req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRetreatNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidPriority):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// Update dispatches on the PATCH body's action field. Promotion outcomes are
// always 200 with a {promoted, errors} payload; per-booking capacity
// conflicts are payload strings, not HTTP errors.
func (h *WaitlistHandler) Update(c echo.Context) error {
	var req dto.WaitlistActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var (
		result *service.PromotionResult
		err    error
	)
	switch req.Action {
	case "promote":
		if len(req.BookingIDs) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "bookingIds is required for promote")
		}
		result, err = h.svc.Promote(c.Request().Context(), req.BookingIDs)
	case "autoPromote":
		if req.RetreatID == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "retreatId is required for autoPromote")
		}
		result, err = h.svc.AutoPromote(c.Request().Context(), req.RetreatID)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "missing or invalid action")
	}

	if err != nil {
		if errors.Is(err, service.ErrRetreatNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, result)
}

func (h *WaitlistHandler) Delete(c echo.Context) error {
	raw := c.QueryParam("bookingId")
	bookingID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bookingId")
	}

	if err := h.svc.Remove(c.Request().Context(), uint(bookingID)); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "waitlist entry not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "waitlist entry removed"})
}
