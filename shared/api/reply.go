package api

import (
	"github.com/itchan-dev/threadboard/shared/domain"
)

// Request DTOs

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required"`
	Replyer string `json:"replyer" validate:"required"`
	// null or 0 starts a new thread
	GroupId *int64 `json:"group_id,omitempty"`
}

type UpdateReplyRequest struct {
	BoardId int64  `json:"board_id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required"`
	Replyer string `json:"replyer" validate:"required"`
	GroupId int64  `json:"group_id" validate:"required,gt=0"`
}

// Response DTOs

type ReplyResponse struct {
	domain.Reply
}

type ReplyListResponse struct {
	domain.Page[domain.ReplySummary]
}
