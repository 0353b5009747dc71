package handler

import (
	"net/http"

	"github.com/itchan-dev/threadboard/shared/api"
	"github.com/itchan-dev/threadboard/shared/domain"
	"github.com/itchan-dev/threadboard/shared/utils"
)

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	boardId, err := idParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.CreateReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creation := domain.ReplyCreationData{BoardId: boardId, Content: body.Content, Replyer: body.Replyer}
	// legacy clients send 0 for "no group"
	if body.GroupId != nil && *body.GroupId != 0 {
		creation.GroupId = body.GroupId
	}

	id, err := h.reply.Create(r.Context(), creation)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.IdResponse{Id: id})
}

func (h *Handler) GetReply(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "reply")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.ReplyResponse{Reply: reply})
}

func (h *Handler) UpdateReply(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "reply")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err = h.reply.Update(r.Context(), domain.ReplyUpdateData{
		Id:      id,
		BoardId: body.BoardId,
		Content: body.Content,
		Replyer: body.Replyer,
		GroupId: body.GroupId,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.IdResponse{Id: id})
}

func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "reply")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err = h.reply.Delete(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.IdResponse{Id: id})
}

func (h *Handler) ListReplies(w http.ResponseWriter, r *http.Request) {
	boardId, err := idParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	replies, err := h.reply.List(r.Context(), boardId, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.ReplyListResponse{Page: replies})
}
