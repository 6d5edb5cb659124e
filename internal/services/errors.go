package services

import "errors"

// Domain error values. Handlers map these to HTTP status codes and the
// {code, message} error body; anything else is a server error.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrUserNotFound    = errors.New("user not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrBoardNotFound   = errors.New("board not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrProjectNotFound = errors.New("project not found")

	// ErrCrossBoardMove rejects a card move whose destination column lives on
	// a different board. No rank writes happen in this case.
	ErrCrossBoardMove = errors.New("target column is not in the same board")

	ErrNoFields      = errors.New("no fields to update")
	ErrNameTaken     = errors.New("column name already exists in this board")
	ErrCodeTaken     = errors.New("project code already exists")
	ErrLoginIDTaken  = errors.New("login id already exists")
	ErrAlreadyJoined = errors.New("already joined")
)
