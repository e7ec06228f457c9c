package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/serenica/retreat-backoffice/internal/pms"
)

// PMSFetcher is the slice of the PMS client the handler needs.
type PMSFetcher interface {
	FetchRooms(ctx context.Context) ([]pms.Room, error)
	FetchGuests(ctx context.Context) ([]pms.GuestRecord, error)
}

type PMSHandler struct {
	client PMSFetcher
}

func NewPMSHandler(client PMSFetcher) *PMSHandler {
	return &PMSHandler{client: client}
}

func (h *PMSHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/pms")
	g.GET("/rooms", h.Rooms)
	g.GET("/guests", h.Guests)
}

func (h *PMSHandler) Rooms(c echo.Context) error {
	rooms, err := h.client.FetchRooms(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *PMSHandler) Guests(c echo.Context) error {
	guests, err := h.client.FetchGuests(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, guests)
}
