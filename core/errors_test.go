package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	t.Parallel()

	err := NewError("validating the event", errors.New("title is required"), nil, errors.New("end time must be after start time"))

	assert.Equal(t, "validating the event", err.Message)
	assert.Equal(t, []string{"title is required", "end time must be after start time"}, err.Messages())
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	err := NewError("saving the event", errors.New("connection refused"))

	assert.JSONEq(t, `{"message":"saving the event","err":["connection refused"]}`, err.Error())
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewError("saving the event", errors.New("first"), errors.New("second"))

	unwrapped := err.Unwrap()
	assert.ErrorContains(t, unwrapped, "first")
	assert.ErrorContains(t, unwrapped, "second")

	assert.NoError(t, NewError("nothing wrapped").Unwrap())
}
