package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Fixed messages shown to the operator when the API answers with a
// non-success status.
const (
	MsgListBooks  = "Failed to fetch books"
	MsgGetBook    = "Failed to fetch book"
	MsgCreateBook = "Failed to add book"
	MsgUpdateBook = "Failed to update book"
	MsgDeleteBook = "Failed to delete book"
	MsgListUsers  = "Failed to fetch users"
	MsgLogin      = "Failed to log in"
)

// ErrNoToken is returned by Login when the API accepted the credentials but
// did not send an Authorization header back.
var ErrNoToken = errors.New("login response carried no token")

// StatusError is a non-2xx answer. Its text is the fixed operator-facing
// message of the operation.
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a 401 or 403 answer.
func IsUnauthorized(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden
}

// DecodeError means the response body did not have the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
