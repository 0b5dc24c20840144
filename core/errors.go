package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrEventNotFound = errors.New("event not found")

// Error is the JSON envelope every non-2xx response carries.
type Error struct {
	Message string   `json:"message,omitempty"`
	Err     []string `json:"err,omitempty"`
}

func NewError(message string, errs ...error) *Error {
	var msgs []string
	for _, err := range errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}

	return &Error{Message: message, Err: msgs}
}

func (e *Error) Error() string {
	//nolint:errchkjson
	data, _ := json.Marshal(e)
	return string(data)
}

func (e *Error) Unwrap() error {
	if e == nil || len(e.Err) == 0 {
		return nil
	}

	wrapped := make([]error, len(e.Err))
	for i, msg := range e.Err {
		wrapped[i] = fmt.Errorf("%s", msg)
	}

	return errors.Join(wrapped...)
}

func (e *Error) Messages() []string {
	return e.Err
}
