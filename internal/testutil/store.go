// Package testutil provides an in-memory store that keeps the same atomicity
// guarantees as the PostgreSQL repositories: every write runs under one lock,
// the way each repository write runs in one transaction.
package testutil

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"team_polls/internal/db/models"
	"team_polls/internal/db/repositories"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.Mutex
	polls      map[string]*models.Poll
	created    map[string]int
	markers    map[string]map[string]struct{}
	ballots    map[string][]*models.Ballot
	roles      map[string]*models.UserRole
	nextRoleID int64
}

func NewStore() *Store {
	return &Store{
		polls:   make(map[string]*models.Poll),
		created: make(map[string]int),
		markers: make(map[string]map[string]struct{}),
		ballots: make(map[string][]*models.Ballot),
		roles:   make(map[string]*models.UserRole),
	}
}

func (s *Store) PollRepository() repositories.PollRepository {
	return &pollStore{s}
}

func (s *Store) VoteRepository() repositories.VoteRepository {
	return &voteStore{s}
}

func (s *Store) UserRoleRepository() repositories.UserRoleRepository {
	return &roleStore{s}
}

// Markers returns the marker keys stored for a poll.
func (s *Store) Markers(pollID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.markers[pollID]))
	for key := range s.markers[pollID] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Ballots returns copies of the ballots stored for a poll.
func (s *Store) Ballots(pollID string) []models.Ballot {
	s.mu.Lock()
	defer s.mu.Unlock()

	ballots := make([]models.Ballot, 0, len(s.ballots[pollID]))
	for _, ballot := range s.ballots[pollID] {
		ballots = append(ballots, *ballot)
	}
	return ballots
}

// SetVoteCount overwrites a cached count, simulating drift for recount tests.
func (s *Store) SetVoteCount(pollID, optionID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if poll, ok := s.polls[pollID]; ok {
		if option := poll.Option(optionID); option != nil {
			option.VoteCount = count
		}
	}
}

func clonePoll(poll *models.Poll) *models.Poll {
	cloned := *poll
	cloned.Options = cloneOptions(poll.Options)
	return &cloned
}

func cloneOptions(options []*models.Option) []*models.Option {
	cloned := make([]*models.Option, 0, len(options))
	for _, option := range options {
		copied := *option
		cloned = append(cloned, &copied)
	}
	sort.SliceStable(cloned, func(i, j int) bool {
		return cloned[i].Position < cloned[j].Position
	})
	return cloned
}

func hasDuplicateText(options []*models.Option) bool {
	seen := make(map[string]struct{}, len(options))
	for _, option := range options {
		key := strings.ToLower(option.Text)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

type pollStore struct {
	*Store
}

func (s *pollStore) Create(_ context.Context, request *models.Poll, limit repositories.CreationLimit) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit.Max > 0 && s.countCreatedSince(request.TeamID, request.CreatorID, limit.Since) >= limit.Max {
		return nil, repositories.ErrCreationLimit
	}

	if hasDuplicateText(request.Options) {
		return nil, repositories.ErrDuplicateOption
	}

	poll := clonePoll(request)
	if poll.ID == "" {
		poll.ID = uuid.NewString()
	}
	if poll.Status == "" {
		poll.Status = models.PollStatusDraft
	}
	for _, option := range poll.Options {
		option.PollID = poll.ID
	}

	s.polls[poll.ID] = poll
	s.created[poll.ID] = len(s.created)

	return clonePoll(poll), nil
}

func (s *pollStore) UpdateDraft(_ context.Context, request *models.Poll) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[request.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if poll.Status != models.PollStatusDraft {
		return nil, repositories.ErrStatusConflict
	}
	if hasDuplicateText(request.Options) {
		return nil, repositories.ErrDuplicateOption
	}

	poll.Question = request.Question
	poll.BallotKind = request.BallotKind
	poll.ScheduledOpenAt = request.ScheduledOpenAt
	poll.ScheduledCloseAt = request.ScheduledCloseAt
	poll.Options = cloneOptions(request.Options)
	for _, option := range poll.Options {
		option.PollID = poll.ID
	}

	return clonePoll(poll), nil
}

func (s *pollStore) UpdateStatus(_ context.Context, pollID string, from, to models.PollStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[pollID]
	if !ok || poll.Status != from {
		return repositories.ErrStatusConflict
	}

	poll.Status = to
	switch to {
	case models.PollStatusOpen:
		poll.OpenedAt = &at
	case models.PollStatusClosed:
		poll.ClosedAt = &at
	}

	return nil
}

func (s *pollStore) GetOne(_ context.Context, pollID string) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[pollID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	return clonePoll(poll), nil
}

func (s *pollStore) GetManyDue(_ context.Context, status models.PollStatus, before time.Time, limit int) ([]*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]*models.Poll, 0)
	for _, poll := range s.polls {
		if poll.Status != status {
			continue
		}

		var at *time.Time
		switch status {
		case models.PollStatusScheduled:
			at = poll.ScheduledOpenAt
		case models.PollStatusOpen:
			at = poll.ScheduledCloseAt
		}

		if at != nil && !at.After(before) {
			due = append(due, clonePoll(poll))
		}
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].CreatedAt.Before(due[j].CreatedAt)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	return due, nil
}

func (s *pollStore) countCreatedSince(teamID, creatorID string, since time.Time) int {
	count := 0
	for _, poll := range s.polls {
		if poll.TeamID == teamID && poll.CreatorID == creatorID && !poll.CreatedAt.Before(since) {
			count++
		}
	}
	return count
}

func (s *pollStore) GetManyByTeam(_ context.Context, teamID string, statuses []models.PollStatus, limit int) ([]*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	polls := make([]*models.Poll, 0)
	for _, poll := range s.polls {
		if poll.TeamID == teamID && (len(statuses) == 0 || slices.Contains(statuses, poll.Status)) {
			polls = append(polls, clonePoll(poll))
		}
	}

	sort.SliceStable(polls, func(i, j int) bool {
		if polls[i].CreatedAt.Equal(polls[j].CreatedAt) {
			return s.created[polls[i].ID] > s.created[polls[j].ID]
		}
		return polls[i].CreatedAt.After(polls[j].CreatedAt)
	})

	if limit > 0 && len(polls) > limit {
		polls = polls[:limit]
	}

	return polls, nil
}

type voteStore struct {
	*Store
}

func (s *voteStore) Submit(_ context.Context, vote repositories.Vote) ([]*models.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, err := s.openPoll(vote)
	if err != nil {
		return nil, err
	}

	markers, ok := s.markers[vote.PollID]
	if !ok {
		markers = make(map[string]struct{})
		s.markers[vote.PollID] = markers
	}
	if _, exists := markers[vote.Marker]; exists {
		return nil, repositories.ErrMarkerExists
	}
	markers[vote.Marker] = struct{}{}

	s.ballots[vote.PollID] = append(s.ballots[vote.PollID], &models.Ballot{
		ID:       uuid.NewString(),
		PollID:   vote.PollID,
		OptionID: vote.OptionID,
		CastAt:   vote.CastAt,
	})
	poll.Option(vote.OptionID).VoteCount++

	return cloneOptions(poll.Options), nil
}

func (s *voteStore) Withdraw(_ context.Context, vote repositories.Vote) ([]*models.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, err := s.openPoll(vote)
	if err != nil {
		return nil, err
	}

	if _, exists := s.markers[vote.PollID][vote.Marker]; !exists {
		return nil, repositories.ErrMarkerMissing
	}
	delete(s.markers[vote.PollID], vote.Marker)

	ballots := s.ballots[vote.PollID]
	for i, ballot := range ballots {
		if ballot.OptionID == vote.OptionID {
			s.ballots[vote.PollID] = append(ballots[:i:i], ballots[i+1:]...)
			break
		}
	}

	if option := poll.Option(vote.OptionID); option.VoteCount > 0 {
		option.VoteCount--
	}

	return cloneOptions(poll.Options), nil
}

func (s *voteStore) GetTally(_ context.Context, pollID string) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[pollID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	return clonePoll(poll), nil
}

func (s *voteStore) Recount(_ context.Context, pollID string) ([]*models.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[pollID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	for _, option := range poll.Options {
		option.VoteCount = 0
	}
	for _, ballot := range s.ballots[pollID] {
		if option := poll.Option(ballot.OptionID); option != nil {
			option.VoteCount++
		}
	}

	return cloneOptions(poll.Options), nil
}

func (s *voteStore) openPoll(vote repositories.Vote) (*models.Poll, error) {
	poll, ok := s.polls[vote.PollID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if poll.Status != models.PollStatusOpen {
		return nil, repositories.ErrPollNotOpen
	}
	if poll.Option(vote.OptionID) == nil {
		return nil, repositories.ErrOptionNotFound
	}
	return poll, nil
}

type roleStore struct {
	*Store
}

func roleKey(teamID, userID string) string {
	return teamID + "\x00" + userID
}

func (s *roleStore) Upsert(_ context.Context, request *models.UserRole) (*models.UserRole, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := roleKey(request.TeamID, request.UserID)
	if existing, ok := s.roles[key]; ok {
		request.ID = existing.ID
	} else {
		s.nextRoleID++
		request.ID = s.nextRoleID
	}

	stored := *request
	s.roles[key] = &stored

	return request, nil
}

func (s *roleStore) GetOne(_ context.Context, teamID, userID string) (*models.UserRole, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roles[roleKey(teamID, userID)]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	copied := *role
	return &copied, nil
}

func (s *roleStore) GetManyByTeam(_ context.Context, teamID string) ([]*models.UserRole, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roles := make([]*models.UserRole, 0)
	for _, role := range s.roles {
		if role.TeamID == teamID {
			copied := *role
			roles = append(roles, &copied)
		}
	}

	sort.Slice(roles, func(i, j int) bool {
		return roles[i].UserID < roles[j].UserID
	})

	return roles, nil
}
