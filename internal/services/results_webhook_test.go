package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"team_polls/configs"
	"team_polls/internal/db/models"
	"team_polls/internal/polls"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWebhook(url string, attempts uint) *resultsWebhook {
	webhook := NewResultsWebhook(configs.Webhook{URL: url, Timeout: time.Second, Attempts: attempts}, zap.NewNop().Sugar()).(*resultsWebhook)
	webhook.delay = time.Millisecond
	return webhook
}

func TestResultsWebhook_PostsClosedPoll(t *testing.T) {
	var received pollEvent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	poll := &models.Poll{ID: "p1", Question: "Lunch?", Status: models.PollStatusClosed, BallotKind: models.BallotKindSingle}
	results := &polls.Results{PollID: "p1", TotalVotes: 3, Options: []polls.OptionResult{{Text: "Pizza", Count: 3, Percentage: 100}}}

	err := newTestWebhook(server.URL, 3).PollClosed(context.Background(), poll, results)
	require.NoError(t, err)

	assert.Equal(t, EventPollClosed, received.Event)
	assert.Equal(t, "p1", received.PollID)
	require.NotNil(t, received.Results)
	assert.Equal(t, 3, received.Results.TotalVotes)
	assert.Equal(t, "Pizza", received.Results.Options[0].Text)
}

func TestResultsWebhook_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestWebhook(server.URL, 3).PollOpened(context.Background(), &models.Poll{ID: "p1"})
	assert.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestResultsWebhook_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	err := newTestWebhook(server.URL, 5).PollOpened(context.Background(), &models.Poll{ID: "p1"})
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestResultsWebhook_GivesUpAfterAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := newTestWebhook(server.URL, 2).PollOpened(context.Background(), &models.Poll{ID: "p1"})
	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
