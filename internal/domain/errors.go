package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrFlightNotFound          = fmt.Errorf("flight %w", ErrNotFound)
	ErrUserNotFound            = fmt.Errorf("user %w", ErrNotFound)
	ErrInsufficientCapacity    = errors.New("not enough seats available")
	ErrInvalidPassengerDetails = errors.New("passenger details do not match passenger count")
	ErrInvalidSeatCount        = errors.New("seat count must be positive")
	ErrEmailTaken              = errors.New("user with this email already exists")
	ErrInvalidCredentials      = errors.New("invalid email or password")
)
