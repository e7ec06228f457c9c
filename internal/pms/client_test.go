package pms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRooms_TranslatesVendorShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rooms", r.URL.Path)
		assert.Equal(t, "ac-123", r.URL.Query().Get("AuthCode"))
		assert.Equal(t, "HTL9", r.URL.Query().Get("HotelCode"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Status": "Success",
			"Data": [
				{"Room_ID": "101", "Room_Name": "Lotus", "RoomType_Name": "Deluxe", "Room_Status": "Occupied"},
				{"Room_ID": "102", "Room_Name": "Fern", "RoomType_Name": "Standard", "Room_Status": "Vacant"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "ac-123", "HTL9")
	rooms, err := client.FetchRooms(context.Background())

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, Room{ID: "101", Name: "Lotus", Type: "Deluxe", Status: "Occupied"}, rooms[0])
	assert.Equal(t, "Vacant", rooms[1].Status)
}

func TestFetchGuests_TranslatesVendorShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/guests", r.URL.Path)
		w.Write([]byte(`{
			"Status": "Success",
			"Data": [{"Guest_ID": "G-7", "First_Name": "Mina", "Last_Name": "K", "Email": "mina@example.com", "Mobile": "555-0101"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "ac", "h")
	guests, err := client.FetchGuests(context.Background())

	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, GuestRecord{
		ID:        "G-7",
		FirstName: "Mina",
		LastName:  "K",
		Email:     "mina@example.com",
		Phone:     "555-0101",
	}, guests[0])
}

func TestFetch_VendorStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Status": "Fail", "Message": "invalid auth code"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad", "h")
	_, err := client.FetchRooms(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid auth code")
}

func TestFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "ac", "h")
	_, err := client.FetchRooms(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
