package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrStatusNotMutable  = errors.New("payment status can only change while pending")
	ErrInvalidTransition = errors.New("invalid payment status transition")
)
