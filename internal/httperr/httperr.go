// Package httperr carries application errors that know the HTTP status and
// message body they should be serialized with.
package httperr

import "fmt"

// Error is a domain-raised failure with an HTTP status code attached. Any
// handler receiving one serializes it as {"message": <Message>} with Status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// E builds an Error with the given status and message.
func E(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Ef builds an Error with a formatted message.
func Ef(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}
