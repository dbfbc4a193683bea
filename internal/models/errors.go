package models

import "errors"

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidSide  = errors.New("invalid side, expected home or away")
)
