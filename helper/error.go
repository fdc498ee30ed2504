package helper

import "fmt"

// NewError wraps an error with the operation that produced it.
// The underlying error stays available for errors.Is/errors.As checks.
func NewError(operation string, err error) error {
	return fmt.Errorf("error in %v: %w", operation, err)
}
