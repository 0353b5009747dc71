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

// Lock order for reply mutations is always board row(s) first, then the reply row.
// Inserting a reply takes a key share lock on its group root, so locking a reply
// before its board could deadlock against a concurrent create.

// CreateReply inserts the reply and bumps the board's reply_count in one transaction.
// Without a group the reply becomes the root of its own thread.
func (s *Storage) CreateReply(ctx context.Context, creationData domain.ReplyCreationData) (id domain.ReplyId, err error) {
	defer metrics.ObserveStorage("create_reply", time.Now(), &err)

	err = sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := lockBoard(ctx, tx, creationData.BoardId); err != nil {
			return err
		}

		var groupId sql.NullInt64
		if creationData.GroupId != nil {
			root, err := resolveGroup(ctx, tx, creationData.BoardId, *creationData.GroupId)
			if err != nil {
				return err
			}
			groupId = sql.NullInt64{Int64: root, Valid: true}
		}

		err := tx.QueryRowContext(ctx, `
			INSERT INTO replies (board_id, group_id, content, replyer)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			creationData.BoardId, groupId, creationData.Content, creationData.Replyer,
		).Scan(&id)
		if err != nil {
			return classify("insert reply", err)
		}

		if !groupId.Valid {
			if _, err := tx.ExecContext(ctx, "UPDATE replies SET group_id = id WHERE id = $1", id); err != nil {
				return fmt.Errorf("failed to set group root: %w", err)
			}
		}

		return adjustReplyCount(ctx, tx, creationData.BoardId, 1)
	})
	if err != nil {
		return 0, classify("create reply", err)
	}
	return id, nil
}

func (s *Storage) GetReply(ctx context.Context, id domain.ReplyId) (reply domain.Reply, err error) {
	defer metrics.ObserveStorage("get_reply", time.Now(), &err)

	err = s.db.QueryRowContext(ctx, `
		SELECT id, board_id, group_id, content, replyer, created_at, updated_at, is_deleted
		FROM replies
		WHERE id = $1 AND NOT is_deleted`, id,
	).Scan(
		&reply.Id, &reply.BoardId, &reply.GroupId, &reply.Content, &reply.Replyer,
		&reply.CreatedAt, &reply.UpdatedAt, &reply.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reply{}, errReplyNotFound
		}
		return domain.Reply{}, classify("get reply", err)
	}
	return reply, nil
}

// UpdateReply overwrites board, content, replyer and group. Moving the reply to another
// board moves its unit of reply_count along with it. Regrouping a thread root moves
// the rest of its thread under the new root.
func (s *Storage) UpdateReply(ctx context.Context, updateData domain.ReplyUpdateData) (err error) {
	defer metrics.ObserveStorage("update_reply", time.Now(), &err)

	err = sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		oldBoard, oldGroup, err := liveReply(ctx, tx, updateData.Id)
		if err != nil {
			return err
		}
		newBoard := updateData.BoardId

		if err := lockBoards(ctx, tx, oldBoard, newBoard); err != nil {
			return err
		}

		groupId := updateData.GroupId
		if groupId != updateData.Id {
			if groupId, err = resolveGroup(ctx, tx, newBoard, groupId); err != nil {
				return err
			}
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE replies
			SET board_id = $1, content = $2, replyer = $3, group_id = $4, updated_at = NOW()
			WHERE id = $5 AND board_id = $6 AND NOT is_deleted`,
			newBoard, updateData.Content, updateData.Replyer, groupId, updateData.Id, oldBoard,
		)
		if err := requireOneRow("update reply", result, err, errReplyNotFound); err != nil {
			return err
		}

		if oldGroup == updateData.Id && groupId != updateData.Id {
			if _, err := tx.ExecContext(ctx,
				"UPDATE replies SET group_id = $1 WHERE group_id = $2", groupId, updateData.Id,
			); err != nil {
				return fmt.Errorf("failed to regroup thread: %w", err)
			}
		}

		if oldBoard != newBoard {
			if err := adjustReplyCount(ctx, tx, oldBoard, -1); err != nil {
				return err
			}
			return adjustReplyCount(ctx, tx, newBoard, 1)
		}
		return nil
	})
	return classify("update reply", err)
}

// DeleteReply soft-deletes the reply and decrements reply_count exactly once.
// Deleting an already deleted reply is NotFound and leaves the counter alone.
func (s *Storage) DeleteReply(ctx context.Context, id domain.ReplyId) (err error) {
	defer metrics.ObserveStorage("delete_reply", time.Now(), &err)

	err = sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		boardId, _, err := liveReply(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := lockBoard(ctx, tx, boardId); err != nil {
			return err
		}

		// re-checked under the board lock, a concurrent delete leaves nothing to update
		result, err := tx.ExecContext(ctx, `
			UPDATE replies
			SET is_deleted = TRUE, updated_at = NOW()
			WHERE id = $1 AND board_id = $2 AND NOT is_deleted`, id, boardId,
		)
		if err := requireOneRow("delete reply", result, err, errReplyNotFound); err != nil {
			return err
		}

		return adjustReplyCount(ctx, tx, boardId, -1)
	})
	return classify("delete reply", err)
}

// ListReplies returns one page of the board's live replies in thread order:
// by group root, then by id, so each root is followed by its thread.
func (s *Storage) ListReplies(ctx context.Context, boardId domain.BoardId, page domain.PageRequest) (replies []domain.ReplySummary, total int64, err error) {
	defer metrics.ObserveStorage("list_replies", time.Now(), &err)

	err = sharedpg.WithReadTx(ctx, s.db, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM boards WHERE id = $1 AND NOT is_deleted)", boardId,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check board: %w", err)
		}
		if !exists {
			return errBoardNotFound
		}

		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM replies WHERE board_id = $1 AND NOT is_deleted", boardId,
		).Scan(&total); err != nil {
			return fmt.Errorf("failed to count replies: %w", err)
		}
		if total == 0 {
			return nil
		}

		rows, err := tx.QueryContext(ctx, `
			SELECT id, board_id, group_id, content, replyer, created_at
			FROM replies
			WHERE board_id = $1 AND NOT is_deleted
			ORDER BY group_id, id
			LIMIT $2 OFFSET $3`, boardId, page.Size, page.Offset(),
		)
		if err != nil {
			return fmt.Errorf("failed to list replies: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var r domain.ReplySummary
			if err := rows.Scan(&r.Id, &r.BoardId, &r.GroupId, &r.Content, &r.Replyer, &r.CreatedAt); err != nil {
				return fmt.Errorf("failed to scan reply: %w", err)
			}
			replies = append(replies, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, classify("list replies", err)
	}
	return replies, total, nil
}

// liveReply returns the board and group of a live reply without locking it
func liveReply(ctx context.Context, q sharedpg.Querier, id domain.ReplyId) (domain.BoardId, domain.ReplyId, error) {
	var boardId domain.BoardId
	var groupId domain.ReplyId
	err := q.QueryRowContext(ctx,
		"SELECT board_id, group_id FROM replies WHERE id = $1 AND NOT is_deleted", id,
	).Scan(&boardId, &groupId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, errReplyNotFound
		}
		return 0, 0, fmt.Errorf("failed to fetch reply: %w", err)
	}
	return boardId, groupId, nil
}

// lockBoards locks both boards in id order. Only the target board has to be live,
// the source board may have been deleted while the reply was on it.
func lockBoards(ctx context.Context, q sharedpg.Querier, source, target domain.BoardId) error {
	if source == target {
		return lockBoard(ctx, q, target)
	}
	rows, err := q.QueryContext(ctx, `
		SELECT id, is_deleted FROM boards
		WHERE id IN ($1, $2)
		ORDER BY id
		FOR UPDATE`, source, target,
	)
	if err != nil {
		return fmt.Errorf("failed to lock boards: %w", err)
	}
	defer rows.Close()

	targetLive := false
	for rows.Next() {
		var id domain.BoardId
		var deleted bool
		if err := rows.Scan(&id, &deleted); err != nil {
			return fmt.Errorf("failed to scan board: %w", err)
		}
		if id == target && !deleted {
			targetLive = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to lock boards: %w", err)
	}
	if !targetLive {
		return errBoardNotFound
	}
	return nil
}

// resolveGroup maps a reply id on the board to the root of its thread.
// Deleted replies still anchor their thread.
func resolveGroup(ctx context.Context, q sharedpg.Querier, boardId domain.BoardId, replyId domain.ReplyId) (domain.ReplyId, error) {
	var root domain.ReplyId
	err := q.QueryRowContext(ctx, `
		SELECT group_id FROM replies
		WHERE id = $1 AND board_id = $2`, replyId, boardId,
	).Scan(&root)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errGroupNotFound
		}
		return 0, fmt.Errorf("failed to resolve reply group: %w", err)
	}
	return root, nil
}
