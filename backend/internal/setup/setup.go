package setup

import (
	"context"

	"github.com/itchan-dev/threadboard/backend/internal/handler"
	"github.com/itchan-dev/threadboard/backend/internal/service"
	"github.com/itchan-dev/threadboard/backend/internal/storage/pg"
	"github.com/itchan-dev/threadboard/backend/internal/utils"
	"github.com/itchan-dev/threadboard/shared/config"
	"github.com/itchan-dev/threadboard/shared/middleware/ratelimiter"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage     *pg.Storage
	Handler     *handler.Handler
	Config      *config.Config
	RateLimiter *ratelimiter.UserRateLimiter
}

// SetupDependencies connects to the database and wires services and handlers.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	validator := utils.New(cfg.Public.Limits)
	paging := service.Paging{DefaultSize: cfg.Public.DefaultPageSize, MaxSize: cfg.Public.MaxPageSize}

	board := service.NewBoard(storage, validator, paging)
	reply := service.NewReply(storage, validator, paging)
	h := handler.New(board, reply, storage)

	rl := cfg.Public.RateLimit
	return &Dependencies{
		Storage:     storage,
		Handler:     h,
		Config:      cfg,
		RateLimiter: ratelimiter.New(rl.RequestsPerSecond, rl.Burst, rl.IdleTTL),
	}, nil
}
