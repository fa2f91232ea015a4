package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/doula/internal/logging"
	"github.com/tOgg1/doula/internal/models"
)

type fakeBackend struct {
	timelines map[int]string
	lastChat  models.ChatRequest
	lastBody  map[string]any
}

func newFakeBackend(t *testing.T, fb *fakeBackend) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/timeline/{id:[0-9]+}", func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(req)["id"])
		body, ok := fb.timelines[id]
		if !ok {
			http.Error(w, `{"detail":"User not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}).Methods(http.MethodGet)
	r.HandleFunc("/onboarding", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "application/json", req.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(req.Body).Decode(&fb.lastBody))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"user_id":7,"due_date":"2026-10-08","current_week":20,"current_day":3,"message":"Welcome"}`)
	}).Methods(http.MethodPost)
	r.HandleFunc("/chat", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&fb.lastChat))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response":"Mild swelling is **common**."}`)
	}).Methods(http.MethodPost)
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"status":"healthy"}`)
	}).Methods(http.MethodGet)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(Config{BaseURL: baseURL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return client
}

func TestFetchTimelinePreservesOrder(t *testing.T) {
	srv := newFakeBackend(t, &fakeBackend{timelines: map[int]string{
		7: `[
			{"id":5,"title":"Anatomy Scan","description":"Big ultrasound","week_start":18,"week_end":22,"is_completed":false,"category":"Medical"},
			{"id":2,"title":"NIPT","description":"Screening","week_start":10,"week_end":14,"is_completed":true,"category":"Test","normal_values":"Low risk"},
			{"id":9,"title":"Kick Counts","description":"Track movement","week_start":28,"week_end":40,"is_completed":false,"category":"Lifestyle"}
		]`,
	}})
	client := newTestClient(t, srv.URL)

	events, err := client.FetchTimeline(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, []int{5, 2, 9}, []int{events[0].ID, events[1].ID, events[2].ID})
	require.Equal(t, "Low risk", events[1].NormalValues)
	require.True(t, events[1].IsCompleted)
}

func TestFetchTimelineEmptyList(t *testing.T) {
	srv := newFakeBackend(t, &fakeBackend{timelines: map[int]string{7: `[]`}})
	client := newTestClient(t, srv.URL)

	events, err := client.FetchTimeline(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, events)
	require.Empty(t, events)
}

func TestFetchTimelineMalformed(t *testing.T) {
	cases := map[int]string{
		1: `{"detail":"not a list"}`,
		2: `null`,
		3: `[{"id":1,"title":"x","week_start":"ten","week_end":12}]`,
		4: `[{"id":1,"title":"x","week_start":12,"week_end":10}]`,
		5: `[not json`,
	}
	srv := newFakeBackend(t, &fakeBackend{timelines: cases})
	client := newTestClient(t, srv.URL)

	for id := range cases {
		_, err := client.FetchTimeline(context.Background(), id)
		require.Error(t, err, "user %d", id)
		require.True(t, errors.Is(err, ErrMalformedResponse), "user %d: %v", id, err)
		require.Equal(t, KindMalformed, Classify(err))
	}
}

func TestFetchTimelineServerError(t *testing.T) {
	srv := newFakeBackend(t, &fakeBackend{})
	client := newTestClient(t, srv.URL)

	_, err := client.FetchTimeline(context.Background(), 99)
	require.Error(t, err)
	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	require.Equal(t, http.StatusNotFound, serverErr.Status)
	require.Equal(t, KindServer, Classify(err))
	require.Contains(t, UserMessage(err), "Server Error: 404")
}

func TestFetchTimelineNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := newTestClient(t, url)
	_, err := client.FetchTimeline(context.Background(), 7)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNetwork))
	require.Equal(t, KindNetwork, Classify(err))
	require.Equal(t, "Connection Error: could not reach the server", UserMessage(err))
}

func TestFetchTimelineCanceled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	client := newTestClient(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := client.FetchTimeline(ctx, 7)
	require.Error(t, err)
	require.Equal(t, KindCanceled, Classify(err))
}

func TestOnboardSendsSelectedDateField(t *testing.T) {
	fb := &fakeBackend{}
	srv := newFakeBackend(t, fb)
	client := newTestClient(t, srv.URL)

	result, err := client.Onboard(context.Background(), models.OnboardingRequest{
		Name:             "Dana",
		IsFirstPregnancy: false,
		Mode:             models.DateModeDueDate,
		Date:             time.Date(2026, 10, 8, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, 7, result.UserID)
	require.Equal(t, 20, result.CurrentWeek)
	require.Equal(t, "2026-10-08", fb.lastBody["due_date"])
	require.NotContains(t, fb.lastBody, "last_menstrual_period")
	require.Equal(t, false, fb.lastBody["is_first_pregnancy"])
}

func TestChatRoundTrip(t *testing.T) {
	fb := &fakeBackend{}
	srv := newFakeBackend(t, fb)
	client := newTestClient(t, srv.URL)

	reply, err := client.Chat(context.Background(), models.ChatRequest{UserID: 7, Message: "Is swelling normal?"})
	require.NoError(t, err)
	require.Equal(t, "Mild swelling is **common**.", reply.Response)
	require.Equal(t, 7, fb.lastChat.UserID)
	require.Equal(t, "Is swelling normal?", fb.lastChat.Message)
}

func TestHealth(t *testing.T) {
	srv := newFakeBackend(t, &fakeBackend{})
	client := newTestClient(t, srv.URL+"/")
	require.NoError(t, client.Health(context.Background()))
	require.Equal(t, srv.URL, client.BaseURL())
}

func TestRequestLogsUseContextLogger(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var clientLogs, scopedLogs bytes.Buffer
	clientLogger := zerolog.New(&clientLogs)
	srv := newFakeBackend(t, &fakeBackend{})
	client, err := New(Config{BaseURL: srv.URL, Logger: &clientLogger})
	require.NoError(t, err)

	ctx := logging.WithContext(context.Background(), logging.WithUser(zerolog.New(&scopedLogs), 7))
	require.NoError(t, client.Health(ctx))
	require.Contains(t, scopedLogs.String(), `"user_id":7`)
	require.Contains(t, scopedLogs.String(), "request completed")
	require.Empty(t, clientLogs.String())

	require.NoError(t, client.Health(context.Background()))
	require.Contains(t, clientLogs.String(), "request completed")
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New(Config{BaseURL: "localhost:8000"})
	require.Error(t, err)

	_, err = New(Config{})
	require.Error(t, err)
}
