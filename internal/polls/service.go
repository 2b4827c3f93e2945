package polls

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"team_polls/configs"
	"team_polls/internal/db/models"
	"team_polls/internal/db/repositories"
	"team_polls/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListLimit is how many polls ListPolls returns.
const ListLimit = 10

// Authorizer decides who may create and manage polls in a team.
type Authorizer interface {
	CanCreate(ctx context.Context, teamID, userID string) error
	CanManage(ctx context.Context, poll *models.Poll, userID string) error
	CanAdminister(ctx context.Context, teamID, userID string) error
}

type EditDraftRequest struct {
	PollID           string
	RequesterID      string
	Question         string
	Options          []string
	BallotKind       models.BallotKind
	ScheduledOpenAt  *time.Time
	ScheduledCloseAt *time.Time
}

type ServiceOption func(*Service)

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func WithValidators(validators ...Validator) ServiceOption {
	return func(s *Service) {
		s.validators = append(s.validators, validators...)
	}
}

// Service is the single entry point for poll operations.
type Service struct {
	config     configs.Polls
	polls      repositories.PollRepository
	ledger     *Ledger
	tally      *TallyAggregator
	machine    *StateMachine
	authorizer Authorizer
	tokens     *TokenDeriver
	validators []Validator
	metrics    *metrics.MetricService
	logger     *zap.SugaredLogger
	now        func() time.Time
}

func NewService(
	config configs.Polls,
	polls repositories.PollRepository,
	votes repositories.VoteRepository,
	machine *StateMachine,
	authorizer Authorizer,
	metrics *metrics.MetricService,
	logger *zap.SugaredLogger,
	options ...ServiceOption,
) *Service {
	s := &Service{
		config:     config,
		polls:      polls,
		ledger:     NewLedger(votes, metrics, logger),
		tally:      NewTallyAggregator(votes),
		machine:    machine,
		authorizer: authorizer,
		tokens:     NewTokenDeriver(config.VoterTokenSecret),
		metrics:    metrics,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *Service) CreatePoll(ctx context.Context, request CreatePollRequest) (*models.Poll, error) {
	now := s.now()

	if err := request.normalize(now); err != nil {
		return nil, err
	}

	for _, validator := range s.validators {
		if err := validator.Validate(ctx, request); err != nil {
			if errors.Is(err, ErrValidation) {
				return nil, err
			}
			return nil, newValidationError(err.Error())
		}
	}

	if err := s.authorizer.CanCreate(ctx, request.TeamID, request.CreatorID); err != nil {
		return nil, err
	}

	poll := &models.Poll{
		ID:               uuid.NewString(),
		Question:         request.Question,
		TeamID:           request.TeamID,
		ChannelID:        request.ChannelID,
		CreatorID:        request.CreatorID,
		BallotKind:       request.BallotKind,
		Anonymous:        true,
		CreatedAt:        now,
		ScheduledOpenAt:  request.ScheduledOpenAt,
		ScheduledCloseAt: request.ScheduledCloseAt,
		Options:          newOptions(request.Options),
	}

	switch {
	case request.KeepDraft:
		poll.Status = models.PollStatusDraft
	case request.ScheduledOpenAt != nil:
		poll.Status = models.PollStatusScheduled
	default:
		poll.Status = models.PollStatusOpen
		poll.OpenedAt = &now
	}

	limit := repositories.CreationLimit{
		Max:   s.config.MaxPollsPerUserPerDay,
		Since: now.Add(-24 * time.Hour),
	}

	created, err := s.polls.Create(ctx, poll, limit)
	switch {
	case errors.Is(err, repositories.ErrDuplicateOption):
		return nil, newValidationError("option texts must be unique")
	case errors.Is(err, repositories.ErrCreationLimit):
		return nil, fmt.Errorf("%w: %d polls per day", ErrRateLimited, s.config.MaxPollsPerUserPerDay)
	case err != nil:
		s.logger.Errorw("failed to create poll", "error", err, "team_id", request.TeamID)
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	s.metrics.PollsCreated.WithLabelValues(created.Status.String()).Inc()
	s.logger.Infow("poll created", "poll_id", created.ID, "status", created.Status, "ballot_kind", created.BallotKind)

	return created, nil
}

func (s *Service) SubmitVote(ctx context.Context, pollID, voterID, optionID string) ([]OptionCount, error) {
	poll, err := s.votablePoll(ctx, pollID, voterID, optionID)
	if err != nil {
		return nil, err
	}

	token := s.tokens.VoterToken(poll.TeamID, poll.ID, voterID)

	counts, err := s.ledger.SubmitVote(ctx, poll, token, optionID, s.now())
	if err != nil {
		s.logVoteError(err, poll.ID)
		return nil, err
	}

	return counts, nil
}

func (s *Service) WithdrawVote(ctx context.Context, pollID, voterID, optionID string) ([]OptionCount, error) {
	poll, err := s.votablePoll(ctx, pollID, voterID, optionID)
	if err != nil {
		return nil, err
	}

	token := s.tokens.VoterToken(poll.TeamID, poll.ID, voterID)

	counts, err := s.ledger.WithdrawVote(ctx, poll, token, optionID)
	if err != nil {
		s.logVoteError(err, poll.ID)
		return nil, err
	}

	return counts, nil
}

func (s *Service) ClosePoll(ctx context.Context, pollID, requesterID string) (*models.Poll, error) {
	return s.manualTransition(ctx, pollID, requesterID, models.PollStatusClosed)
}

func (s *Service) OpenPoll(ctx context.Context, pollID, requesterID string) (*models.Poll, error) {
	return s.manualTransition(ctx, pollID, requesterID, models.PollStatusOpen)
}

// SchedulePoll hands a draft with a schedule over to the scheduler.
func (s *Service) SchedulePoll(ctx context.Context, pollID, requesterID string) (*models.Poll, error) {
	return s.manualTransition(ctx, pollID, requesterID, models.PollStatusScheduled)
}

func (s *Service) GetPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	if !isUUID(pollID) {
		return nil, ErrNotFound
	}

	poll, err := s.polls.GetOne(ctx, pollID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	return poll, nil
}

func (s *Service) GetResults(ctx context.Context, pollID string) (*Results, error) {
	if !isUUID(pollID) {
		return nil, ErrNotFound
	}

	return s.tally.GetResults(ctx, pollID)
}

func (s *Service) EditDraft(ctx context.Context, request EditDraftRequest) (*models.Poll, error) {
	poll, err := s.GetPoll(ctx, request.PollID)
	if err != nil {
		return nil, err
	}

	if err = s.authorizer.CanManage(ctx, poll, request.RequesterID); err != nil {
		return nil, err
	}

	if poll.Status != models.PollStatusDraft {
		return nil, fmt.Errorf("%w: only drafts can be edited", ErrInvalidTransition)
	}

	create := CreatePollRequest{
		Question:         request.Question,
		Options:          request.Options,
		BallotKind:       request.BallotKind,
		ScheduledOpenAt:  request.ScheduledOpenAt,
		ScheduledCloseAt: request.ScheduledCloseAt,
		TeamID:           poll.TeamID,
		ChannelID:        poll.ChannelID,
		CreatorID:        poll.CreatorID,
	}
	if err = create.normalize(s.now()); err != nil {
		return nil, err
	}

	poll.Question = create.Question
	poll.BallotKind = create.BallotKind
	poll.ScheduledOpenAt = create.ScheduledOpenAt
	poll.ScheduledCloseAt = create.ScheduledCloseAt
	poll.Options = newOptions(create.Options)

	updated, err := s.polls.UpdateDraft(ctx, poll)
	switch {
	case errors.Is(err, repositories.ErrStatusConflict):
		return nil, fmt.Errorf("%w: poll is no longer a draft", ErrInvalidTransition)
	case errors.Is(err, repositories.ErrDuplicateOption):
		return nil, newValidationError("option texts must be unique")
	case errors.Is(err, repositories.ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}

	return updated, nil
}

// DuplicatePoll creates a fresh poll with the same question and options and no votes in
// the given team and channel. Permission and the daily limit apply to that team.
func (s *Service) DuplicatePoll(ctx context.Context, pollID, requesterID, teamID, channelID string, keepDraft bool) (*models.Poll, error) {
	source, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(source.Options))
	for _, option := range source.Options {
		texts = append(texts, option.Text)
	}

	return s.CreatePoll(ctx, CreatePollRequest{
		Question:   source.Question,
		Options:    texts,
		BallotKind: source.BallotKind,
		TeamID:     teamID,
		ChannelID:  channelID,
		CreatorID:  requesterID,
		KeepDraft:  keepDraft,
	})
}

// ListPolls returns the newest polls of a team, only open ones unless includeAll is set.
func (s *Service) ListPolls(ctx context.Context, teamID string, includeAll bool) ([]*models.Poll, error) {
	var statuses []models.PollStatus
	if !includeAll {
		statuses = []models.PollStatus{models.PollStatusOpen}
	}

	polls, err := s.polls.GetManyByTeam(ctx, teamID, statuses, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}

	return polls, nil
}

func (s *Service) Recount(ctx context.Context, pollID, requesterID string) (*Results, error) {
	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if err = s.authorizer.CanAdminister(ctx, poll.TeamID, requesterID); err != nil {
		return nil, err
	}

	results, err := s.tally.Recount(ctx, poll.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("poll recounted", "poll_id", poll.ID, "requester_id", requesterID, "total_votes", results.TotalVotes)

	return results, nil
}

func (s *Service) manualTransition(ctx context.Context, pollID, requesterID string, to models.PollStatus) (*models.Poll, error) {
	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if err = s.authorizer.CanManage(ctx, poll, requesterID); err != nil {
		return nil, err
	}

	return s.machine.Transition(ctx, poll.ID, to, TriggerManual, s.now())
}

func (s *Service) votablePoll(ctx context.Context, pollID, voterID, optionID string) (*models.Poll, error) {
	if strings.TrimSpace(voterID) == "" {
		return nil, newValidationError("voter id is required")
	}

	if !isUUID(optionID) {
		return nil, fmt.Errorf("%w: option", ErrNotFound)
	}

	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if err = EnsureVotable(poll); err != nil {
		return nil, err
	}

	if poll.Option(optionID) == nil {
		return nil, fmt.Errorf("%w: option", ErrNotFound)
	}

	return poll, nil
}

func (s *Service) logVoteError(err error, pollID string) {
	switch {
	case errors.Is(err, ErrAlreadyVoted), errors.Is(err, ErrNotVoted),
		errors.Is(err, ErrPollNotOpen), errors.Is(err, ErrNotFound), errors.Is(err, ErrValidation):
		s.logger.Infow("vote rejected", "reason", err, "poll_id", pollID)
	default:
		s.logger.Errorw("failed to record vote", "error", err, "poll_id", pollID)
	}
}

func newOptions(texts []string) []*models.Option {
	options := make([]*models.Option, 0, len(texts))
	for i, text := range texts {
		options = append(options, &models.Option{
			ID:       uuid.NewString(),
			Text:     text,
			Position: i,
		})
	}
	return options
}

// isUUID accepts only the canonical 36 character form; uuid.Parse also takes urn and braced
// forms that the database rejects.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}
