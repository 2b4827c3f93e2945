package models

type Option struct {
	ID        string `json:"id" pg:",pk,type:uuid"`
	PollID    string `json:"poll_id" pg:",notnull,type:uuid"`
	Text      string `json:"text" pg:",notnull"`
	Position  int    `json:"position" pg:",notnull,use_zero"`
	VoteCount int    `json:"vote_count" pg:",notnull,use_zero"`
}
