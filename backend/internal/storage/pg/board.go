package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itchan-dev/threadboard/shared/domain"
	"github.com/itchan-dev/threadboard/shared/middleware/metrics"
	sharedpg "github.com/itchan-dev/threadboard/shared/storage/pg"
)

func (s *Storage) CreateBoard(ctx context.Context, creationData domain.BoardCreationData) (id domain.BoardId, err error) {
	defer metrics.ObserveStorage("create_board", time.Now(), &err)

	attachments := creationData.Attachments
	if attachments == nil {
		attachments = domain.Attachments{}
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO boards (title, content, writer, attachments)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		creationData.Title, creationData.Content, creationData.Writer, attachments,
	).Scan(&id)
	if err != nil {
		return 0, classify("create board", err)
	}
	return id, nil
}

func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId) (board domain.Board, err error) {
	defer metrics.ObserveStorage("get_board", time.Now(), &err)

	err = s.db.QueryRowContext(ctx, `
		SELECT id, title, content, writer, attachments, view_count, reply_count, created_at, updated_at, is_deleted
		FROM boards
		WHERE id = $1 AND NOT is_deleted`, id,
	).Scan(
		&board.Id, &board.Title, &board.Content, &board.Writer, &board.Attachments,
		&board.ViewCount, &board.ReplyCount, &board.CreatedAt, &board.UpdatedAt, &board.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, errBoardNotFound
		}
		return domain.Board{}, classify("get board", err)
	}
	return board, nil
}

func (s *Storage) UpdateBoard(ctx context.Context, updateData domain.BoardUpdateData) (err error) {
	defer metrics.ObserveStorage("update_board", time.Now(), &err)

	result, err := s.db.ExecContext(ctx, `
		UPDATE boards
		SET title = $1, content = $2, writer = $3, updated_at = NOW()
		WHERE id = $4 AND NOT is_deleted`,
		updateData.Title, updateData.Content, updateData.Writer, updateData.Id,
	)
	return requireOneRow("update board", result, err, errBoardNotFound)
}

// DeleteBoard marks the board deleted. Its replies are left untouched, listing or
// mutating them then fails because the board no longer resolves.
func (s *Storage) DeleteBoard(ctx context.Context, id domain.BoardId) (err error) {
	defer metrics.ObserveStorage("delete_board", time.Now(), &err)

	result, err := s.db.ExecContext(ctx, `
		UPDATE boards
		SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted`, id,
	)
	return requireOneRow("delete board", result, err, errBoardNotFound)
}

// IncrementViewCount is a single UPDATE so concurrent viewers never lose increments.
func (s *Storage) IncrementViewCount(ctx context.Context, id domain.BoardId) (err error) {
	defer metrics.ObserveStorage("increment_view_count", time.Now(), &err)

	result, err := s.db.ExecContext(ctx, `
		UPDATE boards
		SET view_count = view_count + 1
		WHERE id = $1 AND NOT is_deleted`, id,
	)
	return requireOneRow("increment view count", result, err, errBoardNotFound)
}

// ListBoards returns one page of live boards, newest first, and the total matching count.
// Both are read from the same snapshot.
func (s *Storage) ListBoards(ctx context.Context, req domain.BoardListRequest) (boards []domain.BoardSummary, total int64, err error) {
	defer metrics.ObserveStorage("list_boards", time.Now(), &err)

	where, args := boardListFilter(req)
	err = sharedpg.WithReadTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM boards WHERE "+where, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count boards: %w", err)
		}
		if total == 0 {
			return nil
		}

		pageArgs := append(append([]any{}, args...), req.Size, req.Offset())
		query := fmt.Sprintf(`
			SELECT id, title, writer, view_count, reply_count, created_at, updated_at
			FROM boards
			WHERE %s
			ORDER BY id DESC
			LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
		rows, err := tx.QueryContext(ctx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("failed to list boards: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var b domain.BoardSummary
			if err := rows.Scan(&b.Id, &b.Title, &b.Writer, &b.ViewCount, &b.ReplyCount, &b.CreatedAt, &b.UpdatedAt); err != nil {
				return fmt.Errorf("failed to scan board: %w", err)
			}
			boards = append(boards, b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, classify("list boards", err)
	}
	return boards, total, nil
}

// lockBoard verifies that the board is live and locks its row until the transaction ends,
// serializing reply_count changes.
func lockBoard(ctx context.Context, q sharedpg.Querier, id domain.BoardId) error {
	var locked domain.BoardId
	err := q.QueryRowContext(ctx, `
		SELECT id FROM boards
		WHERE id = $1 AND NOT is_deleted
		FOR UPDATE`, id,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errBoardNotFound
		}
		return fmt.Errorf("failed to lock board: %w", err)
	}
	return nil
}

func adjustReplyCount(ctx context.Context, q sharedpg.Querier, id domain.BoardId, delta int) error {
	if _, err := q.ExecContext(ctx, `
		UPDATE boards
		SET reply_count = reply_count + $1
		WHERE id = $2`, delta, id,
	); err != nil {
		return fmt.Errorf("failed to update reply count: %w", err)
	}
	return nil
}

func requireOneRow(op string, result sql.Result, err error, notFound error) error {
	if err != nil {
		return classify(op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return classify(op, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
