package domain

import "time"

type ReplyCreationData struct {
	BoardId BoardId
	Content Content
	Replyer Writer
	// nil starts a new thread rooted at the created reply
	GroupId *ReplyId
}

type ReplyUpdateData struct {
	Id      ReplyId
	BoardId BoardId
	Content Content
	Replyer Writer
	GroupId ReplyId
}

type Reply struct {
	Id        ReplyId   `json:"id"`
	BoardId   BoardId   `json:"board_id"`
	GroupId   ReplyId   `json:"group_id"`
	Content   Content   `json:"content"`
	Replyer   Writer    `json:"replyer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"-"`
}

// IsGroupRoot reports whether the reply anchors its own thread
func (r Reply) IsGroupRoot() bool {
	return r.Id == r.GroupId
}

type ReplySummary struct {
	Id        ReplyId   `json:"id"`
	BoardId   BoardId   `json:"board_id"`
	GroupId   ReplyId   `json:"group_id"`
	Content   Content   `json:"content"`
	Replyer   Writer    `json:"replyer"`
	CreatedAt time.Time `json:"created_at"`
}
