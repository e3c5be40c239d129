package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klokku/meeting-fatigue/internal/utils"
	"github.com/klokku/meeting-fatigue/pkg/meeting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

var now = time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)

type fakeGoogle struct {
	t        *testing.T
	pages    []map[string]any
	queries  []map[string]string
	tokens   []string
	userinfo map[string]any
	status   int
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.tokens = append(f.tokens, r.Header.Get("Authorization"))
	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/calendars/primary/events":
		query := map[string]string{}
		for key := range r.URL.Query() {
			query[key] = r.URL.Query().Get(key)
		}
		f.queries = append(f.queries, query)
		page := 0
		if token := r.URL.Query().Get("pageToken"); token == "page-2" {
			page = 1
		}
		assert.NoError(f.t, json.NewEncoder(w).Encode(f.pages[page]))
	case "/oauth2/v2/userinfo":
		assert.NoError(f.t, json.NewEncoder(w).Encode(f.userinfo))
	default:
		f.t.Errorf("unexpected request: %s", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, fake *fakeGoogle) *Client {
	fake.t = t
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return NewClient(&utils.MockClock{FixedNow: now}, option.WithEndpoint(server.URL+"/"))
}

func TestClient_GetEvents(t *testing.T) {
	fake := &fakeGoogle{pages: []map[string]any{
		{
			"items": []map[string]any{
				{
					"id":          "1",
					"summary":     "Daily Standup",
					"description": "team sync",
					"status":      "confirmed",
					"start":       map[string]string{"dateTime": "2024-03-01T09:00:00Z"},
					"end":         map[string]string{"dateTime": "2024-03-01T09:15:00Z"},
					"attendees":   []map[string]string{{"email": "a@example.com"}, {"email": "b@example.com"}},
					"organizer":   map[string]string{"email": "a@example.com"},
				},
				{
					"id":     "2",
					"status": "cancelled",
					"start":  map[string]string{"dateTime": "2024-03-02T09:00:00Z"},
					"end":    map[string]string{"dateTime": "2024-03-02T09:15:00Z"},
				},
				{
					"id":      "3",
					"summary": "Offsite",
					"start":   map[string]string{"date": "2024-03-03"},
					"end":     map[string]string{"date": "2024-03-04"},
				},
			},
			"nextPageToken": "page-2",
		},
		{
			"items": []map[string]any{
				{
					"id":    "4",
					"start": map[string]string{"dateTime": "2024-03-05T10:00:00+01:00"},
					"end":   map[string]string{"dateTime": "2024-03-05T11:00:00+01:00"},
				},
			},
		},
	}}
	client := newTestClient(t, fake)

	events, err := client.GetEvents(context.Background(), "access-token", 30)

	require.NoError(t, err)
	assert.Equal(t, []meeting.RawEvent{
		{
			Id:          "1",
			Summary:     "Daily Standup",
			Description: "team sync",
			Start:       "2024-03-01T09:00:00Z",
			End:         "2024-03-01T09:15:00Z",
			Attendees:   []string{"a@example.com", "b@example.com"},
			Organizer:   "a@example.com",
			Status:      "confirmed",
		},
		{
			Id:      "4",
			Summary: "No Title",
			Start:   "2024-03-05T10:00:00+01:00",
			End:     "2024-03-05T11:00:00+01:00",
			Status:  "confirmed",
		},
	}, events)

	require.Len(t, fake.queries, 2)
	query := fake.queries[0]
	assert.Equal(t, "2024-03-01T12:00:00Z", query["timeMin"])
	assert.Equal(t, "2024-03-31T12:00:00Z", query["timeMax"])
	assert.Equal(t, "true", query["singleEvents"])
	assert.Equal(t, "startTime", query["orderBy"])
	assert.Equal(t, "2500", query["maxResults"])
	assert.Equal(t, "Bearer access-token", fake.tokens[0])
}

func TestClient_GetEvents_Empty(t *testing.T) {
	client := newTestClient(t, &fakeGoogle{pages: []map[string]any{{"items": []any{}}}})

	events, err := client.GetEvents(context.Background(), "access-token", 7)

	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestClient_GetEvents_Unauthorized(t *testing.T) {
	client := newTestClient(t, &fakeGoogle{status: http.StatusUnauthorized})

	_, err := client.GetEvents(context.Background(), "expired", 30)

	assert.Error(t, err)
}

func TestClient_MissingToken(t *testing.T) {
	client := NewClient(&utils.MockClock{FixedNow: now})

	_, err := client.GetEvents(context.Background(), "", 30)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = client.GetUserInfo(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestClient_GetUserInfo(t *testing.T) {
	client := newTestClient(t, &fakeGoogle{userinfo: map[string]any{
		"email":   "me@example.com",
		"name":    "Jo Doe",
		"picture": "https://example.com/me.png",
	}})

	info, err := client.GetUserInfo(context.Background(), "access-token")

	require.NoError(t, err)
	assert.Equal(t, meeting.UserInfo{Email: "me@example.com", Name: "Jo Doe", Picture: "https://example.com/me.png"}, info)
}

func TestClient_GetUserInfo_Unauthorized(t *testing.T) {
	client := newTestClient(t, &fakeGoogle{status: http.StatusUnauthorized})

	_, err := client.GetUserInfo(context.Background(), "expired")

	assert.Error(t, err)
}
