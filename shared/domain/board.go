package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Title       Title
	Content     Content
	Writer      Writer
	Attachments Attachments
}

type BoardUpdateData struct {
	Id      BoardId
	Title   Title
	Content Content
	Writer  Writer
}

type Board struct {
	Id          BoardId     `json:"id"`
	Title       Title       `json:"title"`
	Content     Content     `json:"content"`
	Writer      Writer      `json:"writer"`
	Attachments Attachments `json:"attachments"`
	ViewCount   int64       `json:"view_count"`
	ReplyCount  int64       `json:"reply_count"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	IsDeleted   bool        `json:"-"`
}

// BoardSummary is a list row: no content and no attachments
type BoardSummary struct {
	Id         BoardId   `json:"id"`
	Title      Title     `json:"title"`
	Writer     Writer    `json:"writer"`
	ViewCount  int64     `json:"view_count"`
	ReplyCount int64     `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type BoardListRequest struct {
	PageRequest
	Fields  SearchFields
	Keyword string
	// calendar days in UTC, both inclusive
	From *time.Time
	To   *time.Time
}

// HasKeyword reports whether the request filters by text
func (r BoardListRequest) HasKeyword() bool {
	return r.Keyword != "" && !r.Fields.Empty()
}
