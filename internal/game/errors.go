package game

import "errors"

var (
	// ErrInvalidArgument is returned when a required argument is missing or
	// malformed, such as an empty pass target or an unknown team tag.
	ErrInvalidArgument = errors.New("game: invalid argument")

	// ErrNotFound is returned when a referenced player does not exist.
	ErrNotFound = errors.New("game: not found")

	// ErrGameOver is returned by transitions attempted after the round budget
	// has been spent.
	ErrGameOver = errors.New("game: game over")
)
