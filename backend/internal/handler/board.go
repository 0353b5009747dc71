package handler

import (
	"net/http"
	"strings"

	"github.com/itchan-dev/threadboard/shared/api"
	"github.com/itchan-dev/threadboard/shared/domain"
	"github.com/itchan-dev/threadboard/shared/errors"
	"github.com/itchan-dev/threadboard/shared/utils"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.board.Create(r.Context(), domain.BoardCreationData{
		Title:       body.Title,
		Content:     body.Content,
		Writer:      body.Writer,
		Attachments: body.Attachments,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.IdResponse{Id: id})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.BoardResponse{Board: board})
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err = h.board.Update(r.Context(), domain.BoardUpdateData{Id: id, Title: body.Title, Content: body.Content, Writer: body.Writer})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.IdResponse{Id: id})
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err = h.board.Delete(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.IdResponse{Id: id})
}

func (h *Handler) IncrementBoardViews(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.board.IncrementViewCount(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListBoards serves one page of boards.
// Query: page, size, type (t, c, w or a combination), keyword, start_date, end_date (YYYY-MM-DD).
func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	req, err := parseBoardListRequest(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.board.List(r.Context(), req)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.BoardListResponse{Page: page})
}

func parseBoardListRequest(r *http.Request) (domain.BoardListRequest, error) {
	var req domain.BoardListRequest
	var err error
	query := r.URL.Query()

	if req.PageRequest, err = parsePage(r); err != nil {
		return req, err
	}
	if req.Fields, err = domain.ParseSearchFields(strings.TrimSpace(query.Get("type"))); err != nil {
		return req, errors.NewValidationError("invalid type: " + err.Error())
	}
	req.Keyword = query.Get("keyword")
	if req.From, err = parseDate(query.Get("start_date"), "start_date"); err != nil {
		return req, err
	}
	if req.To, err = parseDate(query.Get("end_date"), "end_date"); err != nil {
		return req, err
	}
	return req, nil
}
