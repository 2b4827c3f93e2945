package models

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	PollStatus string
	BallotKind string
)

func (s PollStatus) String() string {
	return string(s)
}

func (s PollStatus) CapitalizedString() string {
	return cases.Title(language.English).String(s.String())
}

func (k BallotKind) String() string {
	return string(k)
}

func (k BallotKind) CapitalizedString() string {
	return cases.Title(language.English).String(k.String())
}

func (k BallotKind) IsValid() bool {
	return k == BallotKindSingle || k == BallotKindMultiple
}

const (
	PollStatusDraft     PollStatus = "draft"
	PollStatusScheduled PollStatus = "scheduled"
	PollStatusOpen      PollStatus = "open"
	PollStatusClosed    PollStatus = "closed"

	BallotKindSingle   BallotKind = "single"
	BallotKindMultiple BallotKind = "multiple"
)

type Poll struct {
	ID               string     `json:"id" pg:",pk,type:uuid"`
	Question         string     `json:"question" pg:",notnull"`
	TeamID           string     `json:"team_id" pg:",notnull"`
	ChannelID        string     `json:"channel_id" pg:",notnull"`
	CreatorID        string     `json:"creator_id" pg:",notnull"`
	BallotKind       BallotKind `json:"ballot_kind" pg:",notnull"`
	Status           PollStatus `json:"status" pg:",notnull,default:'draft'"`
	Anonymous        bool       `json:"anonymous" pg:",notnull,use_zero"`
	CreatedAt        time.Time  `json:"created_at" pg:",notnull,default:now()"`
	ScheduledOpenAt  *time.Time `json:"scheduled_open_at"`
	ScheduledCloseAt *time.Time `json:"scheduled_close_at"`
	OpenedAt         *time.Time `json:"opened_at"`
	ClosedAt         *time.Time `json:"closed_at"`
	Options          []*Option  `json:"options" pg:"rel:has-many"`
}

// Option returns the poll option with the given id, or nil.
func (p *Poll) Option(optionID string) *Option {
	for _, option := range p.Options {
		if option.ID == optionID {
			return option
		}
	}
	return nil
}
