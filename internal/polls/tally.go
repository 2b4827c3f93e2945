package polls

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"team_polls/internal/db/models"
	"team_polls/internal/db/repositories"
)

type OptionResult struct {
	OptionID   string  `json:"option_id"`
	Text       string  `json:"text"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Results struct {
	PollID     string            `json:"poll_id"`
	Question   string            `json:"question"`
	Status     models.PollStatus `json:"status"`
	BallotKind models.BallotKind `json:"ballot_kind"`
	Options    []OptionResult    `json:"options"`
	TotalVotes int               `json:"total_votes"`
	// Leaders holds every option sharing the top count; empty while nobody voted.
	Leaders   []OptionResult `json:"leaders"`
	CloseRace bool           `json:"close_race"`
}

type TallyAggregator struct {
	votes repositories.VoteRepository
}

func NewTallyAggregator(votes repositories.VoteRepository) *TallyAggregator {
	return &TallyAggregator{votes: votes}
}

func (a *TallyAggregator) GetResults(ctx context.Context, pollID string) (*Results, error) {
	poll, err := a.votes.GetTally(ctx, pollID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read tally: %w", err)
	}

	return NewResults(poll), nil
}

// Recount rebuilds cached counts from ballots and returns the fresh results.
func (a *TallyAggregator) Recount(ctx context.Context, pollID string) (*Results, error) {
	_, err := a.votes.Recount(ctx, pollID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to recount: %w", err)
	}

	return a.GetResults(ctx, pollID)
}

func NewResults(poll *models.Poll) *Results {
	results := &Results{
		PollID:     poll.ID,
		Question:   poll.Question,
		Status:     poll.Status,
		BallotKind: poll.BallotKind,
		Options:    make([]OptionResult, 0, len(poll.Options)),
		Leaders:    make([]OptionResult, 0),
	}

	for _, option := range poll.Options {
		results.TotalVotes += option.VoteCount
	}

	for _, option := range poll.Options {
		results.Options = append(results.Options, OptionResult{
			OptionID:   option.ID,
			Text:       option.Text,
			Count:      option.VoteCount,
			Percentage: percentage(option.VoteCount, results.TotalVotes),
		})
	}

	if results.TotalVotes == 0 {
		return results
	}

	ranked := make([]OptionResult, len(results.Options))
	copy(ranked, results.Options)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	for _, option := range ranked {
		if option.Count != ranked[0].Count {
			break
		}
		results.Leaders = append(results.Leaders, option)
	}

	if len(ranked) >= 2 && results.TotalVotes > 2 {
		results.CloseRace = ranked[0].Count-ranked[1].Count <= 1
	}

	return results
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
