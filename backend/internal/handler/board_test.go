package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/itchan-dev/threadboard/shared/api"
	"github.com/itchan-dev/threadboard/shared/domain"
	internal_errors "github.com/itchan-dev/threadboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBoardHandler(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		var got domain.BoardCreationData
		h := &Handler{board: &MockBoardService{
			MockCreate: func(ctx context.Context, creationData domain.BoardCreationData) (domain.BoardId, error) {
				got = creationData
				return 12, nil
			},
		}}

		rr := serve(t, h, http.MethodPost, "/v1/boards", []byte(`{"title":"T","content":"C","writer":"W","attachments":["a.png"]}`))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.Equal(t, api.IdResponse{Id: 12}, decodeBody[api.IdResponse](t, rr))
		assert.Equal(t, domain.BoardCreationData{Title: "T", Content: "C", Writer: "W", Attachments: domain.Attachments{"a.png"}}, got)
	})

	tests := []struct {
		name     string
		body     string
		wantBody string
	}{
		{"invalid json", `{ivalid json::}`, "Body is invalid json\n"},
		{"missing title", `{"content":"C","writer":"W"}`, "Required fields missing\n"},
		{"empty attachment name", `{"title":"T","content":"C","writer":"W","attachments":[""]}`, "Required fields missing\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{board: &MockBoardService{
				MockCreate: func(ctx context.Context, creationData domain.BoardCreationData) (domain.BoardId, error) {
					t.Fatal("service must not be called")
					return 0, nil
				},
			}}
			rr := serve(t, h, http.MethodPost, "/v1/boards", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}

	t.Run("validation error from service", func(t *testing.T) {
		h := &Handler{board: &MockBoardService{
			MockCreate: func(ctx context.Context, creationData domain.BoardCreationData) (domain.BoardId, error) {
				return 0, internal_errors.NewValidationError("Title is too long")
			},
		}}
		rr := serve(t, h, http.MethodPost, "/v1/boards", []byte(`{"title":"T","content":"C","writer":"W"}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Title is too long\n", rr.Body.String())
	})

	t.Run("storage error is hidden", func(t *testing.T) {
		h := &Handler{board: &MockBoardService{
			MockCreate: func(ctx context.Context, creationData domain.BoardCreationData) (domain.BoardId, error) {
				return 0, &internal_errors.StorageError{Op: "create board", Err: errors.New("password authentication failed")}
			},
		}}
		rr := serve(t, h, http.MethodPost, "/v1/boards", []byte(`{"title":"T","content":"C","writer":"W"}`))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Storage error\n", rr.Body.String())
	})
}

func TestGetBoardHandler(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	h := &Handler{board: &MockBoardService{
		MockGet: func(ctx context.Context, id domain.BoardId) (domain.Board, error) {
			if id == 404 {
				return domain.Board{}, internal_errors.NewNotFoundError("Board not found")
			}
			return domain.Board{Id: id, Title: "T", Attachments: domain.Attachments{"x_a.png"}, ViewCount: 3, CreatedAt: created, UpdatedAt: created}, nil
		},
	}}

	t.Run("found", func(t *testing.T) {
		rr := serve(t, h, http.MethodGet, "/v1/boards/7", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		got := decodeBody[map[string]any](t, rr)
		assert.Equal(t, float64(7), got["id"])
		assert.Equal(t, "T", got["title"])
		assert.Equal(t, float64(3), got["view_count"])
		assert.Equal(t, []any{"x_a.png"}, got["attachments"])
		assert.NotContains(t, got, "is_deleted")
	})

	t.Run("not found", func(t *testing.T) {
		rr := serve(t, h, http.MethodGet, "/v1/boards/404", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Board not found\n", rr.Body.String())
	})

	for _, bad := range []string{"abc", "0", "-1"} {
		t.Run("bad id "+bad, func(t *testing.T) {
			rr := serve(t, h, http.MethodGet, "/v1/boards/"+bad, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestUpdateBoardHandler(t *testing.T) {
	var got domain.BoardUpdateData
	h := &Handler{board: &MockBoardService{
		MockUpdate: func(ctx context.Context, updateData domain.BoardUpdateData) (domain.BoardId, error) {
			got = updateData
			if updateData.Id == 404 {
				return 0, internal_errors.NewNotFoundError("Board not found")
			}
			return updateData.Id, nil
		},
	}}

	rr := serve(t, h, http.MethodPut, "/v1/boards/5", []byte(`{"title":"T2","content":"C2","writer":"W2"}`))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, api.IdResponse{Id: 5}, decodeBody[api.IdResponse](t, rr))
	assert.Equal(t, domain.BoardUpdateData{Id: 5, Title: "T2", Content: "C2", Writer: "W2"}, got)

	rr = serve(t, h, http.MethodPut, "/v1/boards/404", []byte(`{"title":"T2","content":"C2","writer":"W2"}`))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, h, http.MethodPut, "/v1/boards/5", []byte(`{"title":"T2"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteBoardHandler(t *testing.T) {
	h := &Handler{board: &MockBoardService{
		MockDelete: func(ctx context.Context, id domain.BoardId) (domain.BoardId, error) {
			if id == 404 {
				return 0, internal_errors.NewNotFoundError("Board not found")
			}
			return id, nil
		},
	}}

	rr := serve(t, h, http.MethodDelete, "/v1/boards/9", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, api.IdResponse{Id: 9}, decodeBody[api.IdResponse](t, rr))

	rr = serve(t, h, http.MethodDelete, "/v1/boards/404", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestIncrementBoardViewsHandler(t *testing.T) {
	var got domain.BoardId
	h := &Handler{board: &MockBoardService{
		MockIncrementViewCount: func(ctx context.Context, id domain.BoardId) error {
			got = id
			if id == 404 {
				return internal_errors.NewNotFoundError("Board not found")
			}
			return nil
		},
	}}

	rr := serve(t, h, http.MethodPost, "/v1/boards/3/views", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, domain.BoardId(3), got)

	rr = serve(t, h, http.MethodPost, "/v1/boards/404/views", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListBoardsHandler(t *testing.T) {
	t.Run("query parsing", func(t *testing.T) {
		var got domain.BoardListRequest
		h := &Handler{board: &MockBoardService{
			MockList: func(ctx context.Context, req domain.BoardListRequest) (domain.Page[domain.BoardSummary], error) {
				got = req
				return domain.NewPage(domain.PageRequest{Page: 2, Size: 5}, 11, []domain.BoardSummary{{Id: 6}}), nil
			},
		}}

		rr := serve(t, h, http.MethodGet, "/v1/boards?page=2&size=5&type=tw&keyword=go+lang&start_date=2023-09-27&end_date=2023-10-03", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		assert.Equal(t, domain.PageRequest{Page: 2, Size: 5}, got.PageRequest)
		assert.Equal(t, domain.NewSearchFields(domain.SearchTitle, domain.SearchWriter), got.Fields)
		assert.Equal(t, "go lang", got.Keyword)
		require.NotNil(t, got.From)
		require.NotNil(t, got.To)
		assert.Equal(t, time.Date(2023, 9, 27, 0, 0, 0, 0, time.UTC), *got.From)
		assert.Equal(t, time.Date(2023, 10, 3, 0, 0, 0, 0, time.UTC), *got.To)

		page := decodeBody[api.BoardListResponse](t, rr)
		assert.Equal(t, int64(11), page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.HasPrev)
		assert.True(t, page.HasNext)
		require.Len(t, page.Items, 1)
		assert.Equal(t, domain.BoardId(6), page.Items[0].Id)
	})

	t.Run("no query", func(t *testing.T) {
		var got domain.BoardListRequest
		h := &Handler{board: &MockBoardService{
			MockList: func(ctx context.Context, req domain.BoardListRequest) (domain.Page[domain.BoardSummary], error) {
				got = req
				return domain.NewPage[domain.BoardSummary](domain.PageRequest{Page: 1, Size: 10}, 0, nil), nil
			},
		}}

		rr := serve(t, h, http.MethodGet, "/v1/boards", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.BoardListRequest{}, got)
		assert.True(t, strings.Contains(rr.Body.String(), `"items":[]`), rr.Body.String())
	})

	bad := []string{
		"page=x",
		"size=1.5",
		"type=tz",
		"start_date=2023-13-01",
		"end_date=27.09.2023",
	}
	for _, q := range bad {
		t.Run("bad "+q, func(t *testing.T) {
			h := &Handler{board: &MockBoardService{
				MockList: func(ctx context.Context, req domain.BoardListRequest) (domain.Page[domain.BoardSummary], error) {
					t.Fatal("service must not be called")
					return domain.Page[domain.BoardSummary]{}, nil
				},
			}}
			rr := serve(t, h, http.MethodGet, "/v1/boards?"+q, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}
