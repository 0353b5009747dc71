package pg

import (
	"database/sql"
	"errors"

	internal_errors "github.com/itchan-dev/threadboard/shared/errors"
	"github.com/lib/pq"
)

var (
	errBoardNotFound = internal_errors.NewNotFoundError("Board not found")
	errReplyNotFound = internal_errors.NewNotFoundError("Reply not found")
	errGroupNotFound = internal_errors.NewNotFoundError("Reply group not found")
)

// classify turns driver errors into the service error taxonomy.
// Referential failures become NotFound, check failures become validation errors,
// the rest is a StorageError.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := internal_errors.AsStatus(err); ok || internal_errors.IsStorage(err) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &internal_errors.StorageError{Op: op, Err: err}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "foreign_key_violation":
			switch pqErr.Constraint {
			case "replies_board_id_fkey":
				return errBoardNotFound
			case "replies_group_id_fkey":
				return errGroupNotFound
			}
		case "check_violation", "not_null_violation":
			return internal_errors.NewValidationError("Required fields missing")
		}
	}
	return &internal_errors.StorageError{Op: op, Err: err}
}
