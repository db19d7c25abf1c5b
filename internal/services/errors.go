package services

import (
	"errors"
	"fmt"

	"github.com/AnshRaj112/evolve-backend/pkg/utils"
)

// ErrUnauthorized is returned when a request carries no valid session.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError reports bad caller input. Nothing has been written when it
// is returned.
type ValidationError = utils.ValidationError

// PersistenceError wraps a store failure that aborted an operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
