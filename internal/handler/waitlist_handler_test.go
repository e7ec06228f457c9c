package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/serenica/retreat-backoffice/internal/dto"
	"github.com/serenica/retreat-backoffice/internal/models"
	"github.com/serenica/retreat-backoffice/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock WaitlistService ---

type mockWaitlistService struct {
	joinFn      func(ctx context.Context, input service.JoinWaitlistInput) (*models.Booking, error)
	listFn      func(ctx context.Context, retreatID *uint, page, limit int) ([]service.WaitlistEntry, int64, error)
	removeFn    func(ctx context.Context, bookingID uint) error
	promoteFn   func(ctx context.Context, bookingIDs []uint) (*service.PromotionResult, error)
	autoFn      func(ctx context.Context, retreatID uint) (*service.PromotionResult, error)
	availableFn func(ctx context.Context, retreatID uint, checkIn, checkOut time.Time) (*service.CapacitySnapshot, error)
}

func (m *mockWaitlistService) Join(ctx context.Context, input service.JoinWaitlistInput) (*models.Booking, error) {
	return m.joinFn(ctx, input)
}
func (m *mockWaitlistService) List(ctx context.Context, retreatID *uint, page, limit int) ([]service.WaitlistEntry, int64, error) {
	return m.listFn(ctx, retreatID, page, limit)
}
func (m *mockWaitlistService) Remove(ctx context.Context, bookingID uint) error {
	return m.removeFn(ctx, bookingID)
}
func (m *mockWaitlistService) Promote(ctx context.Context, bookingIDs []uint) (*service.PromotionResult, error) {
	return m.promoteFn(ctx, bookingIDs)
}
func (m *mockWaitlistService) AutoPromote(ctx context.Context, retreatID uint) (*service.PromotionResult, error) {
	return m.autoFn(ctx, retreatID)
}
func (m *mockWaitlistService) AvailableSpots(ctx context.Context, retreatID uint, checkIn, checkOut time.Time) (*service.CapacitySnapshot, error) {
	return m.availableFn(ctx, retreatID, checkIn, checkOut)
}

func newWaitlistContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- Tests ---

func TestWaitlistList_Handler(t *testing.T) {
	queuedAt := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := &mockWaitlistService{
		listFn: func(ctx context.Context, retreatID *uint, page, limit int) ([]service.WaitlistEntry, int64, error) {
			require.NotNil(t, retreatID)
			assert.Equal(t, uint(3), *retreatID)
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, limit)
			return []service.WaitlistEntry{
				{
					Booking: models.Booking{
						ID: 11, RetreatID: 3, NumberOfGuests: 2,
						Status: models.StatusCancelled,
						Notes:  models.FormatWaitlistTag(models.PriorityVIP, queuedAt, ""),
					},
					Priority:       models.PriorityVIP,
					QueuedAt:       queuedAt,
					AvailableSpots: 4,
					CanBePromoted:  true,
				},
			}, 12, nil
		},
	}

	c, rec := newWaitlistContext(t, http.MethodGet, "/api/v1/waitlist?retreatId=3&page=2&limit=5", "")

	h := NewWaitlistHandler(svc)
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.WaitlistListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Waitlist, 1)
	assert.Equal(t, uint(11), resp.Waitlist[0].ID)
	assert.Equal(t, models.PriorityVIP, resp.Waitlist[0].Priority)
	assert.True(t, resp.Waitlist[0].CanBePromoted)
	assert.Equal(t, int64(12), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestWaitlistCreate_Handler_Success(t *testing.T) {
	svc := &mockWaitlistService{
		joinFn: func(ctx context.Context, input service.JoinWaitlistInput) (*models.Booking, error) {
			assert.Equal(t, uint(1), input.RetreatID)
			assert.Equal(t, "mina@example.com", input.Guest.Email)
			assert.Equal(t, models.PriorityVIP, input.Priority)
			return &models.Booking{
				ID:        7,
				RetreatID: input.RetreatID,
				Status:    models.StatusCancelled,
				Notes:     models.FormatWaitlistTag(input.Priority, time.Now().UTC(), ""),
			}, nil
		},
	}

	body := `{
		"retreatId": 1,
		"guestData": {"firstName": "Mina", "email": "mina@example.com"},
		"checkInDate": "2026-06-10",
		"checkOutDate": "2026-06-14",
		"guestCount": 2,
		"priority": "VIP"
	}`
	c, rec := newWaitlistContext(t, http.MethodPost, "/api/v1/waitlist", body)

	h := NewWaitlistHandler(svc)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.ID)
	assert.Contains(t, resp.Notes, "WAITLIST:VIP:")
}

func TestWaitlistCreate_Handler_MissingFields(t *testing.T) {
	h := NewWaitlistHandler(&mockWaitlistService{})

	body := `{"retreatId": 1, "guestCount": 2}`
	c, _ := newWaitlistContext(t, http.MethodPost, "/api/v1/waitlist", body)

	err := h.Create(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestWaitlistCreate_Handler_RetreatMissing(t *testing.T) {
	svc := &mockWaitlistService{
		joinFn: func(ctx context.Context, input service.JoinWaitlistInput) (*models.Booking, error) {
			return nil, service.ErrRetreatNotFound
		},
	}

	body := `{
		"retreatId": 99,
		"guestData": {"email": "mina@example.com"},
		"checkInDate": "2026-06-10",
		"checkOutDate": "2026-06-14",
		"guestCount": 2
	}`
	c, _ := newWaitlistContext(t, http.MethodPost, "/api/v1/waitlist", body)

	err := NewWaitlistHandler(svc).Create(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestWaitlistUpdate_Promote_PartialSuccess(t *testing.T) {
	svc := &mockWaitlistService{
		promoteFn: func(ctx context.Context, bookingIDs []uint) (*service.PromotionResult, error) {
			assert.Equal(t, []uint{1, 2}, bookingIDs)
			return &service.PromotionResult{
				Promoted: []uint{1},
				Errors:   []string{"booking 2: insufficient capacity: 1 available, 3 requested"},
			}, nil
		},
	}

	body := `{"action": "promote", "bookingIds": [1, 2]}`
	c, rec := newWaitlistContext(t, http.MethodPatch, "/api/v1/waitlist", body)

	// Mixed results are a success path, never an HTTP error.
	require.NoError(t, NewWaitlistHandler(svc).Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp service.PromotionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []uint{1}, resp.Promoted)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "booking 2")
}

func TestWaitlistUpdate_AutoPromote(t *testing.T) {
	svc := &mockWaitlistService{
		autoFn: func(ctx context.Context, retreatID uint) (*service.PromotionResult, error) {
			assert.Equal(t, uint(4), retreatID)
			return &service.PromotionResult{Promoted: []uint{10, 12}, Errors: []string{}}, nil
		},
	}

	body := `{"action": "autoPromote", "retreatId": 4}`
	c, rec := newWaitlistContext(t, http.MethodPatch, "/api/v1/waitlist", body)

	require.NoError(t, NewWaitlistHandler(svc).Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp service.PromotionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []uint{10, 12}, resp.Promoted)
	assert.Empty(t, resp.Errors)
}

func TestWaitlistUpdate_BadRequests(t *testing.T) {
	h := NewWaitlistHandler(&mockWaitlistService{})

	cases := []struct {
		name string
		body string
	}{
		{"missing action", `{}`},
		{"unknown action", `{"action": "defragment"}`},
		{"promote without ids", `{"action": "promote"}`},
		{"autoPromote without retreat", `{"action": "autoPromote"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newWaitlistContext(t, http.MethodPatch, "/api/v1/waitlist", tc.body)

			err := h.Update(c)

			he, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Code)
		})
	}
}

func TestWaitlistDelete_Handler(t *testing.T) {
	svc := &mockWaitlistService{
		removeFn: func(ctx context.Context, bookingID uint) error {
			assert.Equal(t, uint(8), bookingID)
			return nil
		},
	}

	c, rec := newWaitlistContext(t, http.MethodDelete, "/api/v1/waitlist?bookingId=8", "")

	require.NoError(t, NewWaitlistHandler(svc).Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWaitlistDelete_Handler_NotFound(t *testing.T) {
	svc := &mockWaitlistService{
		removeFn: func(ctx context.Context, bookingID uint) error {
			return service.ErrBookingNotFound
		},
	}

	c, _ := newWaitlistContext(t, http.MethodDelete, "/api/v1/waitlist?bookingId=8", "")

	err := NewWaitlistHandler(svc).Delete(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestWaitlistDelete_Handler_InvalidID(t *testing.T) {
	c, _ := newWaitlistContext(t, http.MethodDelete, "/api/v1/waitlist?bookingId=abc", "")

	err := NewWaitlistHandler(&mockWaitlistService{}).Delete(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
