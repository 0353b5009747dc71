package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/threadboard/shared/domain"
	"github.com/stretchr/testify/require"
)

// MockBoardService mocks service.BoardService.
type MockBoardService struct {
	MockCreate             func(ctx context.Context, creationData domain.BoardCreationData) (domain.BoardId, error)
	MockGet                func(ctx context.Context, id domain.BoardId) (domain.Board, error)
	MockUpdate             func(ctx context.Context, updateData domain.BoardUpdateData) (domain.BoardId, error)
	MockDelete             func(ctx context.Context, id domain.BoardId) (domain.BoardId, error)
	MockList               func(ctx context.Context, req domain.BoardListRequest) (domain.Page[domain.BoardSummary], error)
	MockIncrementViewCount func(ctx context.Context, id domain.BoardId) error
}

func (m *MockBoardService) Create(ctx context.Context, creationData domain.BoardCreationData) (domain.BoardId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, creationData)
	}
	return 1, nil
}

func (m *MockBoardService) Get(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.Board{Id: id}, nil
}

func (m *MockBoardService) Update(ctx context.Context, updateData domain.BoardUpdateData) (domain.BoardId, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, updateData)
	}
	return updateData.Id, nil
}

func (m *MockBoardService) Delete(ctx context.Context, id domain.BoardId) (domain.BoardId, error) {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return id, nil
}

func (m *MockBoardService) List(ctx context.Context, req domain.BoardListRequest) (domain.Page[domain.BoardSummary], error) {
	if m.MockList != nil {
		return m.MockList(ctx, req)
	}
	return domain.NewPage[domain.BoardSummary](domain.PageRequest{Page: 1, Size: 10}, 0, nil), nil
}

func (m *MockBoardService) IncrementViewCount(ctx context.Context, id domain.BoardId) error {
	if m.MockIncrementViewCount != nil {
		return m.MockIncrementViewCount(ctx, id)
	}
	return nil
}

// MockReplyService mocks service.ReplyService.
type MockReplyService struct {
	MockCreate func(ctx context.Context, creationData domain.ReplyCreationData) (domain.ReplyId, error)
	MockGet    func(ctx context.Context, id domain.ReplyId) (domain.Reply, error)
	MockUpdate func(ctx context.Context, updateData domain.ReplyUpdateData) (domain.ReplyId, error)
	MockDelete func(ctx context.Context, id domain.ReplyId) (domain.ReplyId, error)
	MockList   func(ctx context.Context, boardId domain.BoardId, page domain.PageRequest) (domain.Page[domain.ReplySummary], error)
}

func (m *MockReplyService) Create(ctx context.Context, creationData domain.ReplyCreationData) (domain.ReplyId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, creationData)
	}
	return 1, nil
}

func (m *MockReplyService) Get(ctx context.Context, id domain.ReplyId) (domain.Reply, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.Reply{Id: id, GroupId: id}, nil
}

func (m *MockReplyService) Update(ctx context.Context, updateData domain.ReplyUpdateData) (domain.ReplyId, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, updateData)
	}
	return updateData.Id, nil
}

func (m *MockReplyService) Delete(ctx context.Context, id domain.ReplyId) (domain.ReplyId, error) {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return id, nil
}

func (m *MockReplyService) List(ctx context.Context, boardId domain.BoardId, page domain.PageRequest) (domain.Page[domain.ReplySummary], error) {
	if m.MockList != nil {
		return m.MockList(ctx, boardId, page)
	}
	return domain.NewPage[domain.ReplySummary](domain.PageRequest{Page: 1, Size: 10}, 0, nil), nil
}

// newTestRouter mounts the handler on the same paths the API serves
func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/boards", h.ListBoards)
		r.Post("/boards", h.CreateBoard)
		r.Get("/boards/{board}", h.GetBoard)
		r.Put("/boards/{board}", h.UpdateBoard)
		r.Delete("/boards/{board}", h.DeleteBoard)
		r.Post("/boards/{board}/views", h.IncrementBoardViews)
		r.Get("/boards/{board}/replies", h.ListReplies)
		r.Post("/boards/{board}/replies", h.CreateReply)
		r.Get("/replies/{reply}", h.GetReply)
		r.Put("/replies/{reply}", h.UpdateReply)
		r.Delete("/replies/{reply}", h.DeleteReply)
	})
	return r
}

func serve(t *testing.T, h *Handler, method, url string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}
