// Package pms is a thin adapter for the eZee property-management system:
// it fetches vendor records over REST and translates the vendor's field
// names into this app's shapes. Nothing is cached or retried.
package pms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Room struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

type GuestRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Client struct {
	baseURL    string
	authCode   string
	hotelCode  string
	httpClient *http.Client
}

func NewClient(baseURL, authCode, hotelCode string) *Client {
	return &Client{
		baseURL:    baseURL,
		authCode:   authCode,
		hotelCode:  hotelCode,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// envelope is the vendor's response wrapper.
type envelope struct {
	Status  string          `json:"Status"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

type vendorRoom struct {
	RoomID       string `json:"Room_ID"`
	RoomName     string `json:"Room_Name"`
	RoomTypeName string `json:"RoomType_Name"`
	RoomStatus   string `json:"Room_Status"`
}

type vendorGuest struct {
	GuestID   string `json:"Guest_ID"`
	FirstName string `json:"First_Name"`
	LastName  string `json:"Last_Name"`
	Email     string `json:"Email"`
	Mobile    string `json:"Mobile"`
}

func (c *Client) FetchRooms(ctx context.Context) ([]Room, error) {
	data, err := c.get(ctx, "/rooms")
	if err != nil {
		return nil, err
	}

	var vendorRooms []vendorRoom
	if err := json.Unmarshal(data, &vendorRooms); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}

	rooms := make([]Room, len(vendorRooms))
	for i, v := range vendorRooms {
		rooms[i] = Room{
			ID:     v.RoomID,
			Name:   v.RoomName,
			Type:   v.RoomTypeName,
			Status: v.RoomStatus,
		}
	}
	return rooms, nil
}

func (c *Client) FetchGuests(ctx context.Context) ([]GuestRecord, error) {
	data, err := c.get(ctx, "/guests")
	if err != nil {
		return nil, err
	}

	var vendorGuests []vendorGuest
	if err := json.Unmarshal(data, &vendorGuests); err != nil {
		return nil, fmt.Errorf("decode guests: %w", err)
	}

	guests := make([]GuestRecord, len(vendorGuests))
	for i, v := range vendorGuests {
		guests[i] = GuestRecord{
			ID:        v.GuestID,
			FirstName: v.FirstName,
			LastName:  v.LastName,
			Email:     v.Email,
			Phone:     v.Mobile,
		}
	}
	return guests, nil
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	q := u.Query()
	q.Set("AuthCode", c.authCode)
	q.Set("HotelCode", c.hotelCode)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pms request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pms HTTP error %d: %s", resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode pms response: %w", err)
	}
	if env.Status != "Success" {
		return nil, fmt.Errorf("pms status error: %s - %s", env.Status, env.Message)
	}
	return env.Data, nil
}
