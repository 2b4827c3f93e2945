package models

import "time"

// Ballot is one accepted vote for one option. It carries nothing about the voter.
type Ballot struct {
	ID       string    `json:"id" pg:",pk,type:uuid"`
	PollID   string    `json:"poll_id" pg:",notnull,type:uuid"`
	OptionID string    `json:"option_id" pg:",notnull,type:uuid"`
	CastAt   time.Time `json:"cast_at" pg:",notnull,default:now()"`
}
