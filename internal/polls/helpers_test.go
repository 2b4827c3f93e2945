package polls

import (
	"context"
	"testing"
	"time"

	"team_polls/configs"
	"team_polls/internal/db/models"
	"team_polls/internal/metrics"
	"team_polls/internal/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthorizer struct {
	admins map[string]bool
	denied map[string]bool
}

func (a stubAuthorizer) CanCreate(_ context.Context, _, userID string) error {
	if a.denied[userID] {
		return ErrForbidden
	}
	return nil
}

func (a stubAuthorizer) CanManage(_ context.Context, poll *models.Poll, userID string) error {
	if a.admins[userID] || poll.CreatorID == userID {
		return nil
	}
	return ErrForbidden
}

func (a stubAuthorizer) CanAdminister(_ context.Context, _, userID string) error {
	if a.admins[userID] {
		return nil
	}
	return ErrForbidden
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type testEnv struct {
	service *Service
	machine *StateMachine
	store   *testutil.Store
	clock   *fakeClock
	metrics *metrics.MetricService
}

func newTestEnv(t *testing.T, options ...ServiceOption) *testEnv {
	t.Helper()

	logger := zap.NewNop().Sugar()
	ms := metrics.NewMetricService(prometheus.NewRegistry())
	store := testutil.NewStore()
	clock := &fakeClock{now: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}
	machine := NewStateMachine(store.PollRepository(), ms, logger)
	authorizer := stubAuthorizer{admins: map[string]bool{"admin": true}, denied: map[string]bool{"viewer": true}}

	options = append([]ServiceOption{WithClock(clock.Now)}, options...)
	service := NewService(
		configs.Polls{VoterTokenSecret: "secret", MaxPollsPerUserPerDay: 5},
		store.PollRepository(),
		store.VoteRepository(),
		machine,
		authorizer,
		ms,
		logger,
		options...,
	)

	return &testEnv{service: service, machine: machine, store: store, clock: clock, metrics: ms}
}

func (e *testEnv) createPoll(t *testing.T, kind models.BallotKind, options ...string) *models.Poll {
	t.Helper()

	poll, err := e.service.CreatePoll(context.Background(), CreatePollRequest{
		Question:   "What's for lunch?",
		Options:    options,
		BallotKind: kind,
		TeamID:     "team",
		ChannelID:  "channel",
		CreatorID:  "creator",
	})
	require.NoError(t, err)

	return poll
}

func optionID(t *testing.T, poll *models.Poll, text string) string {
	t.Helper()

	for _, option := range poll.Options {
		if option.Text == text {
			return option.ID
		}
	}
	t.Fatalf("option %q not found", text)
	return ""
}
