package domain

import "github.com/lib/pq"

type (
	BoardId = int64
	ReplyId = int64

	Title       = string
	Content     = string
	Writer      = string
	Attachments = pq.StringArray // stored attachment names, to save into postgres text[]
)
