package service

import "errors"

// Validation failures shown to the reviewer.
var (
	ErrScoreOutOfRange  = errors.New("your score must be between 1 and 10")
	ErrGameNotFound     = errors.New("game not found; search for it before reviewing")
	ErrDuplicateReview  = errors.New("you have already reviewed this game")
	ErrReviewerRequired = errors.New("reviewer name is required")
	ErrGameNameRequired = errors.New("game name is required")
	ErrReviewerTooLong  = errors.New("reviewer name is too long")
	ErrTagTooLong       = errors.New("tag is too long")
)
