package service

import (
	"context"
	"strings"

	"github.com/itchan-dev/threadboard/backend/internal/utils"
	"github.com/itchan-dev/threadboard/shared/domain"
	"github.com/itchan-dev/threadboard/shared/errors"
	"github.com/itchan-dev/threadboard/shared/logger"
	"github.com/itchan-dev/threadboard/shared/middleware/metrics"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, creationData domain.BoardCreationData) (domain.BoardId, error)
	Get(ctx context.Context, id domain.BoardId) (domain.Board, error)
	Update(ctx context.Context, updateData domain.BoardUpdateData) (domain.BoardId, error)
	Delete(ctx context.Context, id domain.BoardId) (domain.BoardId, error)
	List(ctx context.Context, req domain.BoardListRequest) (domain.Page[domain.BoardSummary], error)
	IncrementViewCount(ctx context.Context, id domain.BoardId) error
}

type Board struct {
	storage   BoardStorage
	validator BoardValidator
	paging    Paging
}

type BoardStorage interface {
	CreateBoard(ctx context.Context, creationData domain.BoardCreationData) (domain.BoardId, error)
	GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error)
	UpdateBoard(ctx context.Context, updateData domain.BoardUpdateData) error
	DeleteBoard(ctx context.Context, id domain.BoardId) error
	IncrementViewCount(ctx context.Context, id domain.BoardId) error
	ListBoards(ctx context.Context, req domain.BoardListRequest) ([]domain.BoardSummary, int64, error)
}

type BoardValidator interface {
	Title(title string) error
	Content(content string) error
	Writer(writer string) error
	Attachments(names []string) error
}

// Paging holds page size bounds for list operations
type Paging struct {
	DefaultSize int
	MaxSize     int
}

func NewBoard(storage BoardStorage, validator BoardValidator, paging Paging) BoardService {
	return &Board{storage, validator, paging}
}

func (b *Board) Create(ctx context.Context, creationData domain.BoardCreationData) (domain.BoardId, error) {
	creationData.Title = sanitize(creationData.Title)
	creationData.Content = sanitize(creationData.Content)
	creationData.Writer = sanitize(creationData.Writer)
	if err := b.validateText(creationData.Title, creationData.Content, creationData.Writer); err != nil {
		return 0, err
	}
	if err := b.validator.Attachments(creationData.Attachments); err != nil {
		return 0, err
	}

	attachments := make(domain.Attachments, 0, len(creationData.Attachments))
	for _, name := range creationData.Attachments {
		stored, err := utils.AttachmentName(name)
		if err != nil {
			return 0, err
		}
		attachments = append(attachments, stored)
	}
	creationData.Attachments = attachments

	id, err := b.storage.CreateBoard(ctx, creationData)
	if err != nil {
		return 0, err
	}
	metrics.BoardsCreated.Inc()
	logger.Log.Info("board created", "board_id", id, "attachments", len(attachments))
	return id, nil
}

func (b *Board) Get(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	return b.storage.GetBoard(ctx, id)
}

func (b *Board) Update(ctx context.Context, updateData domain.BoardUpdateData) (domain.BoardId, error) {
	updateData.Title = sanitize(updateData.Title)
	updateData.Content = sanitize(updateData.Content)
	updateData.Writer = sanitize(updateData.Writer)
	if err := b.validateText(updateData.Title, updateData.Content, updateData.Writer); err != nil {
		return 0, err
	}

	if err := b.storage.UpdateBoard(ctx, updateData); err != nil {
		return 0, err
	}
	return updateData.Id, nil
}

func (b *Board) Delete(ctx context.Context, id domain.BoardId) (domain.BoardId, error) {
	if err := b.storage.DeleteBoard(ctx, id); err != nil {
		return 0, err
	}
	logger.Log.Info("board deleted", "board_id", id)
	return id, nil
}

func (b *Board) List(ctx context.Context, req domain.BoardListRequest) (domain.Page[domain.BoardSummary], error) {
	req.PageRequest = req.Normalize(b.paging.DefaultSize, b.paging.MaxSize)

	req.Keyword = strings.TrimSpace(req.Keyword)
	if req.Keyword != "" && req.Fields.Empty() {
		req.Fields = domain.AllSearchFields
	}
	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		return domain.Page[domain.BoardSummary]{}, errors.NewValidationError("Start date is after end date")
	}

	boards, total, err := b.storage.ListBoards(ctx, req)
	if err != nil {
		return domain.Page[domain.BoardSummary]{}, err
	}
	return domain.NewPage(req.PageRequest, total, boards), nil
}

func (b *Board) IncrementViewCount(ctx context.Context, id domain.BoardId) error {
	if err := b.storage.IncrementViewCount(ctx, id); err != nil {
		return err
	}
	metrics.BoardViews.Inc()
	return nil
}

func (b *Board) validateText(title, content, writer string) error {
	if err := b.validator.Title(title); err != nil {
		return err
	}
	if err := b.validator.Content(content); err != nil {
		return err
	}
	return b.validator.Writer(writer)
}
