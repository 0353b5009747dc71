package service

import (
	"context"

	"github.com/itchan-dev/threadboard/shared/domain"
	"github.com/itchan-dev/threadboard/shared/errors"
	"github.com/itchan-dev/threadboard/shared/logger"
	"github.com/itchan-dev/threadboard/shared/middleware/metrics"
)

type ReplyService interface {
	Create(ctx context.Context, creationData domain.ReplyCreationData) (domain.ReplyId, error)
	Get(ctx context.Context, id domain.ReplyId) (domain.Reply, error)
	Update(ctx context.Context, updateData domain.ReplyUpdateData) (domain.ReplyId, error)
	Delete(ctx context.Context, id domain.ReplyId) (domain.ReplyId, error)
	List(ctx context.Context, boardId domain.BoardId, page domain.PageRequest) (domain.Page[domain.ReplySummary], error)
}

type Reply struct {
	storage   ReplyStorage
	validator ReplyValidator
	paging    Paging
}

type ReplyStorage interface {
	CreateReply(ctx context.Context, creationData domain.ReplyCreationData) (domain.ReplyId, error)
	GetReply(ctx context.Context, id domain.ReplyId) (domain.Reply, error)
	UpdateReply(ctx context.Context, updateData domain.ReplyUpdateData) error
	DeleteReply(ctx context.Context, id domain.ReplyId) error
	ListReplies(ctx context.Context, boardId domain.BoardId, page domain.PageRequest) ([]domain.ReplySummary, int64, error)
}

type ReplyValidator interface {
	Reply(content string) error
	Writer(replyer string) error
}

func NewReply(storage ReplyStorage, validator ReplyValidator, paging Paging) ReplyService {
	return &Reply{storage, validator, paging}
}

func (r *Reply) Create(ctx context.Context, creationData domain.ReplyCreationData) (domain.ReplyId, error) {
	creationData.Content = sanitize(creationData.Content)
	creationData.Replyer = sanitize(creationData.Replyer)
	if err := r.validateText(creationData.Content, creationData.Replyer); err != nil {
		return 0, err
	}
	if creationData.GroupId != nil && *creationData.GroupId <= 0 {
		return 0, errors.NewValidationError("Group id must be positive")
	}

	id, err := r.storage.CreateReply(ctx, creationData)
	if err != nil {
		return 0, err
	}
	metrics.RepliesCreated.Inc()
	logger.Log.Debug("reply created", "reply_id", id, "board_id", creationData.BoardId)
	return id, nil
}

func (r *Reply) Get(ctx context.Context, id domain.ReplyId) (domain.Reply, error) {
	return r.storage.GetReply(ctx, id)
}

func (r *Reply) Update(ctx context.Context, updateData domain.ReplyUpdateData) (domain.ReplyId, error) {
	updateData.Content = sanitize(updateData.Content)
	updateData.Replyer = sanitize(updateData.Replyer)
	if err := r.validateText(updateData.Content, updateData.Replyer); err != nil {
		return 0, err
	}
	if updateData.BoardId <= 0 {
		return 0, errors.NewValidationError("Board id is required")
	}
	if updateData.GroupId <= 0 {
		return 0, errors.NewValidationError("Group id must be positive")
	}

	if err := r.storage.UpdateReply(ctx, updateData); err != nil {
		return 0, err
	}
	return updateData.Id, nil
}

func (r *Reply) Delete(ctx context.Context, id domain.ReplyId) (domain.ReplyId, error) {
	if err := r.storage.DeleteReply(ctx, id); err != nil {
		return 0, err
	}
	metrics.RepliesDeleted.Inc()
	return id, nil
}

func (r *Reply) List(ctx context.Context, boardId domain.BoardId, page domain.PageRequest) (domain.Page[domain.ReplySummary], error) {
	page = page.Normalize(r.paging.DefaultSize, r.paging.MaxSize)

	replies, total, err := r.storage.ListReplies(ctx, boardId, page)
	if err != nil {
		return domain.Page[domain.ReplySummary]{}, err
	}
	return domain.NewPage(page, total, replies), nil
}

func (r *Reply) validateText(content, replyer string) error {
	if err := r.validator.Reply(content); err != nil {
		return err
	}
	return r.validator.Writer(replyer)
}
