package handler

import (
	"context"

	"github.com/itchan-dev/threadboard/backend/internal/service"
)

// HealthChecker reports whether the database is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board  service.BoardService
	reply  service.ReplyService
	health HealthChecker
}

func New(board service.BoardService, reply service.ReplyService, health HealthChecker) *Handler {
	return &Handler{board: board, reply: reply, health: health}
}
