package repositories

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"team_polls/configs"
	"team_polls/internal/db"
	"team_polls/internal/db/models"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type repositorySuite struct {
	suite.Suite
	db    *pg.DB
	polls PollRepository
	votes VoteRepository
	roles UserRoleRepository
}

func TestRepositorySuite(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	suite.Run(t, &repositorySuite{})
}

func (s *repositorySuite) SetupSuite() {
	config := configs.DB{
		URL:             os.Getenv("TEST_DATABASE_URL"),
		ConnectAttempts: 3,
		MigrationsDir:   "../../../migrations",
	}

	database, err := db.StartDB(context.Background(), config, zap.NewNop().Sugar())
	s.Require().NoError(err)

	s.db = database
	s.polls = NewPollRepository(database)
	s.votes = NewVoteRepository(database)
	s.roles = NewUserRoleRepository(database)
}

func (s *repositorySuite) TearDownSuite() {
	s.Require().NoError(s.db.Close())
}

func (s *repositorySuite) TearDownTest() {
	_, err := s.db.Exec("TRUNCATE voter_markers, ballots, options, polls, user_roles")
	s.Require().NoError(err)
}

func (s *repositorySuite) createPoll(kind models.BallotKind, status models.PollStatus, texts ...string) *models.Poll {
	poll := &models.Poll{
		ID:         uuid.NewString(),
		Question:   "Lunch?",
		TeamID:     "team",
		ChannelID:  "channel",
		CreatorID:  "creator",
		BallotKind: kind,
		Status:     status,
		Anonymous:  true,
		CreatedAt:  time.Now(),
	}
	for i, text := range texts {
		poll.Options = append(poll.Options, &models.Option{ID: uuid.NewString(), Text: text, Position: i})
	}

	created, err := s.polls.Create(context.Background(), poll, CreationLimit{})
	s.Require().NoError(err)

	return created
}

func (s *repositorySuite) TestCreateAndGetOne() {
	poll := s.createPoll(models.BallotKindSingle, models.PollStatusOpen, "Pizza", "Sushi")

	s.Equal(models.PollStatusOpen, poll.Status)
	s.Require().Len(poll.Options, 2)
	s.Equal("Pizza", poll.Options[0].Text)
	s.Equal("Sushi", poll.Options[1].Text)

	_, err := s.polls.GetOne(context.Background(), uuid.NewString())
	s.ErrorIs(err, ErrNotFound)
}

func (s *repositorySuite) TestCreateRejectsCaseInsensitiveDuplicates() {
	poll := &models.Poll{
		ID:         uuid.NewString(),
		Question:   "Lunch?",
		TeamID:     "team",
		ChannelID:  "channel",
		CreatorID:  "creator",
		BallotKind: models.BallotKindSingle,
		Status:     models.PollStatusOpen,
		Anonymous:  true,
		Options: []*models.Option{
			{ID: uuid.NewString(), Text: "Pizza", Position: 0},
			{ID: uuid.NewString(), Text: "pizza", Position: 1},
		},
	}

	_, err := s.polls.Create(context.Background(), poll, CreationLimit{})
	s.ErrorIs(err, ErrDuplicateOption)

	_, err = s.polls.GetOne(context.Background(), poll.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *repositorySuite) TestCreationLimitHoldsUnderConcurrency() {
	limit := CreationLimit{Max: 3, Since: time.Now().Add(-time.Hour)}

	var (
		wg                sync.WaitGroup
		created, rejected int32
	)

	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			poll := &models.Poll{
				ID:         uuid.NewString(),
				Question:   "Lunch?",
				TeamID:     "team",
				ChannelID:  "channel",
				CreatorID:  "creator",
				BallotKind: models.BallotKindSingle,
				Status:     models.PollStatusOpen,
				Anonymous:  true,
				CreatedAt:  time.Now(),
				Options: []*models.Option{
					{ID: uuid.NewString(), Text: "A", Position: 0},
					{ID: uuid.NewString(), Text: "B", Position: 1},
				},
			}

			_, err := s.polls.Create(context.Background(), poll, limit)
			switch {
			case err == nil:
				atomic.AddInt32(&created, 1)
			case errors.Is(err, ErrCreationLimit):
				atomic.AddInt32(&rejected, 1)
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(3), created)
	s.Equal(int32(9), rejected)
}

func (s *repositorySuite) TestGetManyByTeam() {
	ctx := context.Background()

	closed := s.createPoll(models.BallotKindSingle, models.PollStatusClosed, "A", "B")
	open := s.createPoll(models.BallotKindSingle, models.PollStatusOpen, "C", "D")

	polls, err := s.polls.GetManyByTeam(ctx, "team", []models.PollStatus{models.PollStatusOpen}, 10)
	s.Require().NoError(err)
	s.Require().Len(polls, 1)
	s.Equal(open.ID, polls[0].ID)
	s.Len(polls[0].Options, 2)

	polls, err = s.polls.GetManyByTeam(ctx, "team", nil, 10)
	s.Require().NoError(err)
	s.Require().Len(polls, 2)
	s.Equal(open.ID, polls[0].ID)
	s.Equal(closed.ID, polls[1].ID)

	polls, err = s.polls.GetManyByTeam(ctx, "other", nil, 10)
	s.Require().NoError(err)
	s.Empty(polls)
}

func (s *repositorySuite) TestUpdateStatusIsCompareAndSwap() {
	ctx := context.Background()
	poll := s.createPoll(models.BallotKindSingle, models.PollStatusOpen, "A", "B")

	s.NoError(s.polls.UpdateStatus(ctx, poll.ID, models.PollStatusOpen, models.PollStatusClosed, time.Now()))
	s.ErrorIs(s.polls.UpdateStatus(ctx, poll.ID, models.PollStatusOpen, models.PollStatusClosed, time.Now()), ErrStatusConflict)

	closed, err := s.polls.GetOne(ctx, poll.ID)
	s.Require().NoError(err)
	s.Equal(models.PollStatusClosed, closed.Status)
	s.NotNil(closed.ClosedAt)
}

func (s *repositorySuite) TestGetManyDue() {
	ctx := context.Background()
	now := time.Now()
	past, future := now.Add(-time.Minute), now.Add(time.Hour)

	due := s.createPoll(models.BallotKindSingle, models.PollStatusScheduled, "A", "B")
	_, err := s.db.Model((*models.Poll)(nil)).
		Set("scheduled_open_at = ?, scheduled_close_at = ?", past, future).
		Where("id = ?", due.ID).
		Update()
	s.Require().NoError(err)

	notDue := s.createPoll(models.BallotKindSingle, models.PollStatusScheduled, "A", "B")
	_, err = s.db.Model((*models.Poll)(nil)).
		Set("scheduled_open_at = ?, scheduled_close_at = ?", future, future.Add(time.Hour)).
		Where("id = ?", notDue.ID).
		Update()
	s.Require().NoError(err)

	polls, err := s.polls.GetManyDue(ctx, models.PollStatusScheduled, now, 10)
	s.Require().NoError(err)
	s.Require().Len(polls, 1)
	s.Equal(due.ID, polls[0].ID)
}

func (s *repositorySuite) TestSubmitRejectsSecondMarker() {
	ctx := context.Background()
	poll := s.createPoll(models.BallotKindSingle, models.PollStatusOpen, "Pizza", "Sushi")

	vote := Vote{PollID: poll.ID, OptionID: poll.Options[0].ID, Marker: "m1", CastAt: time.Now()}
	options, err := s.votes.Submit(ctx, vote)
	s.Require().NoError(err)
	s.Equal(1, options[0].VoteCount)

	vote.OptionID = poll.Options[1].ID
	_, err = s.votes.Submit(ctx, vote)
	s.ErrorIs(err, ErrMarkerExists)

	tally, err := s.votes.GetTally(ctx, poll.ID)
	s.Require().NoError(err)
	s.Equal(1, tally.Options[0].VoteCount)
	s.Equal(0, tally.Options[1].VoteCount)
}

func (s *repositorySuite) TestSubmitRejectsClosedPollAndForeignOption() {
	ctx := context.Background()
	poll := s.createPoll(models.BallotKindSingle, models.PollStatusOpen, "A", "B")
	other := s.createPoll(models.BallotKindSingle, models.PollStatusOpen, "C", "D")

	_, err := s.votes.Submit(ctx, Vote{PollID: poll.ID, OptionID: other.Options[0].ID, Marker: "m", CastAt: time.Now()})
	s.ErrorIs(err, ErrOptionNotFound)

	s.Require().NoError(s.polls.UpdateStatus(ctx, poll.ID, models.PollStatusOpen, models.PollStatusClosed, time.Now()))

	_, err = s.votes.Submit(ctx, Vote{PollID: poll.ID, OptionID: poll.Options[0].ID, Marker: "m", CastAt: time.Now()})
	s.ErrorIs(err, ErrPollNotOpen)
}

func (s *repositorySuite) TestConcurrentSameMarker() {
	ctx := context.Background()
	poll := s.createPoll(models.BallotKindSingle, models.PollStatusOpen, "A", "B")

	var accepted, rejected int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.votes.Submit(ctx, Vote{PollID: poll.ID, OptionID: poll.Options[i%2].ID, Marker: "same", CastAt: time.Now()})
			if err == nil {
				atomic.AddInt32(&accepted, 1)
			} else if err == ErrMarkerExists {
				atomic.AddInt32(&rejected, 1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), accepted)
	s.Equal(int32(9), rejected)

	count, err := s.db.Model((*models.Ballot)(nil)).Where("poll_id = ?", poll.ID).Count()
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *repositorySuite) TestWithdrawAndRecount() {
	ctx := context.Background()
	poll := s.createPoll(models.BallotKindMultiple, models.PollStatusOpen, "A", "B")

	vote := Vote{PollID: poll.ID, OptionID: poll.Options[0].ID, Marker: "m-a", CastAt: time.Now()}
	_, err := s.votes.Submit(ctx, vote)
	s.Require().NoError(err)

	options, err := s.votes.Withdraw(ctx, vote)
	s.Require().NoError(err)
	s.Equal(0, options[0].VoteCount)

	_, err = s.votes.Withdraw(ctx, vote)
	s.ErrorIs(err, ErrMarkerMissing)

	_, err = s.votes.Submit(ctx, vote)
	s.Require().NoError(err)

	_, err = s.db.Model((*models.Option)(nil)).Set("vote_count = 42").Where("poll_id = ?", poll.ID).Update()
	s.Require().NoError(err)

	options, err = s.votes.Recount(ctx, poll.ID)
	s.Require().NoError(err)
	s.Equal(1, options[0].VoteCount)
	s.Equal(0, options[1].VoteCount)
}

func (s *repositorySuite) TestUserRoleUpsert() {
	ctx := context.Background()

	_, err := s.roles.Upsert(ctx, &models.UserRole{TeamID: "team", UserID: "u1", Role: models.UserRoleViewer, AssignedBy: "admin", AssignedAt: time.Now()})
	s.Require().NoError(err)
	_, err = s.roles.Upsert(ctx, &models.UserRole{TeamID: "team", UserID: "u1", Role: models.UserRoleAdmin, AssignedBy: "admin", AssignedAt: time.Now()})
	s.Require().NoError(err)

	role, err := s.roles.GetOne(ctx, "team", "u1")
	s.Require().NoError(err)
	s.Equal(models.UserRoleAdmin, role.Role)

	roles, err := s.roles.GetManyByTeam(ctx, "team")
	s.Require().NoError(err)
	s.Len(roles, 1)

	_, err = s.roles.GetOne(ctx, "team", "u2")
	s.ErrorIs(err, ErrNotFound)
}
