package models

// VoterMarker proves that a voter already took part in a poll. Marker is a one-way
// key derived from the voter token (and the option for multiple-choice polls), so
// markers can neither be traced to a person nor joined to ballots.
type VoterMarker struct {
	PollID string `json:"-" pg:",pk,type:uuid"`
	Marker string `json:"-" pg:",pk"`
}
