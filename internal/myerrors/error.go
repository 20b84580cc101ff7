package myerrors

import "fmt"

// RequestError is a client mistake that maps to 400 Bad Request.
type RequestError struct {
	Message string
}

func NewRequestError(format string, args ...any) *RequestError {
	return &RequestError{Message: fmt.Sprintf(format, args...)}
}

func (r *RequestError) Error() string {
	return r.Message
}
