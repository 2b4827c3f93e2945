package polls

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"team_polls/internal/db/models"
)

const (
	MaxQuestionLength = 500
	MaxOptionLength   = 100
	MinOptions        = 2
	MaxOptions        = 20
)

// Validator is an extra check run on every create request after the built-in rules.
type Validator interface {
	Validate(ctx context.Context, request CreatePollRequest) error
}

type ValidatorFunc func(ctx context.Context, request CreatePollRequest) error

func (f ValidatorFunc) Validate(ctx context.Context, request CreatePollRequest) error {
	return f(ctx, request)
}

type CreatePollRequest struct {
	Question         string
	Options          []string
	BallotKind       models.BallotKind
	ScheduledOpenAt  *time.Time
	ScheduledCloseAt *time.Time
	TeamID           string
	ChannelID        string
	CreatorID        string
	// KeepDraft stores an unscheduled poll as a draft instead of opening it.
	KeepDraft bool
}

// normalize trims the question and options and reports every rule the request breaks.
func (r *CreatePollRequest) normalize(now time.Time) error {
	var problems []string

	r.Question = strings.TrimSpace(r.Question)
	problems = append(problems, validateQuestion(r.Question)...)

	for i := range r.Options {
		r.Options[i] = strings.TrimSpace(r.Options[i])
	}
	problems = append(problems, validateOptions(r.Options)...)

	if r.BallotKind == "" {
		r.BallotKind = models.BallotKindSingle
	}
	if !r.BallotKind.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown ballot kind %q", r.BallotKind))
	}

	problems = append(problems, validateSchedule(r.ScheduledOpenAt, r.ScheduledCloseAt, now)...)

	if strings.TrimSpace(r.TeamID) == "" {
		problems = append(problems, "team id is required")
	}
	if strings.TrimSpace(r.ChannelID) == "" {
		problems = append(problems, "channel id is required")
	}
	if strings.TrimSpace(r.CreatorID) == "" {
		problems = append(problems, "creator id is required")
	}

	if len(problems) > 0 {
		return newValidationError(problems...)
	}

	return nil
}

func validateQuestion(question string) []string {
	length := utf8.RuneCountInString(question)
	if length == 0 {
		return []string{"question must not be blank"}
	} else if length > MaxQuestionLength {
		return []string{fmt.Sprintf("question must be at most %d characters", MaxQuestionLength)}
	}
	return nil
}

func validateOptions(options []string) []string {
	var problems []string

	if len(options) < MinOptions || len(options) > MaxOptions {
		problems = append(problems, fmt.Sprintf("a poll needs between %d and %d options, got %d", MinOptions, MaxOptions, len(options)))
	}

	seen := make(map[string]struct{}, len(options))
	for i, option := range options {
		length := utf8.RuneCountInString(option)
		if length == 0 {
			problems = append(problems, fmt.Sprintf("option %d must not be blank", i+1))
			continue
		} else if length > MaxOptionLength {
			problems = append(problems, fmt.Sprintf("option %d must be at most %d characters", i+1, MaxOptionLength))
		}

		key := strings.ToLower(option)
		if _, ok := seen[key]; ok {
			problems = append(problems, fmt.Sprintf("option %q is listed more than once", option))
		}
		seen[key] = struct{}{}
	}

	return problems
}

func validateSchedule(openAt, closeAt *time.Time, now time.Time) []string {
	switch {
	case openAt == nil && closeAt == nil:
		return nil
	case openAt == nil || closeAt == nil:
		return []string{"scheduled polls need both an open and a close time"}
	}

	var problems []string
	if !openAt.After(now) {
		problems = append(problems, "scheduled open time must be in the future")
	}
	if closeAt.Before(*openAt) {
		problems = append(problems, "scheduled close time must not be before the open time")
	}
	return problems
}
