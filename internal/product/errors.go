package product

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("product not found")

// NotFoundError carries the id that had no product at lookup time.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(id int64) error {
	return &NotFoundError{ID: id}
}
