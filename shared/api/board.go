package api

import (
	"github.com/itchan-dev/threadboard/shared/domain"
)

// Request DTOs

type CreateBoardRequest struct {
	Title       string   `json:"title" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	Writer      string   `json:"writer" validate:"required"`
	Attachments []string `json:"attachments,omitempty" validate:"omitempty,dive,required"`
}

type UpdateBoardRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Writer  string `json:"writer" validate:"required"`
}

// Response DTOs

// IdResponse is returned by create, update and delete endpoints
type IdResponse struct {
	Id int64 `json:"id"`
}

type BoardResponse struct {
	domain.Board
}

type BoardListResponse struct {
	domain.Page[domain.BoardSummary]
}
