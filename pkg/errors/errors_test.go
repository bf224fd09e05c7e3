package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "error with cause",
			err: &Error{
				Type:    ErrInvalidArgument,
				Message: "test message",
				Cause:   errors.New("underlying error"),
			},
			want: "invalid_argument: test message: underlying error",
		},
		{
			name: "error without cause",
			err: &Error{
				Type:    ErrIOFailure,
				Message: "test message",
				Cause:   nil,
			},
			want: "io_failure: test message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &Error{
		Type:    ErrIOFailure,
		Message: "test message",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Error.Unwrap() = %v, want %v", got, cause)
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}

	errNoCause := &Error{
		Type:    ErrIOFailure,
		Message: "test message",
		Cause:   nil,
	}

	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Error.Unwrap() = %v, want nil", got)
	}
}

func TestNewError(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewError(ErrInvalidArgument, "test message", cause)

	if err.Type != ErrInvalidArgument {
		t.Errorf("NewError().Type = %v, want %v", err.Type, ErrInvalidArgument)
	}
	if err.Message != "test message" {
		t.Errorf("NewError().Message = %v, want %v", err.Message, "test message")
	}
	if err.Cause != cause {
		t.Errorf("NewError().Cause = %v, want %v", err.Cause, cause)
	}
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		want      bool
	}{
		{"io failure matches", NewIOFailureError("read failed", nil), IsIOFailure, true},
		{"io failure mismatched type", NewIOFailureError("read failed", nil), IsNotFound, false},
		{"lock failure matches", NewLockFailureError("lock timeout", nil), IsLockFailure, true},
		{"not found matches", NewNotFoundError("key absent", nil), IsNotFound, true},
		{"invalid value matches", NewInvalidValueError("bad bool", nil), IsInvalidValue, true},
		{"bare repository matches", NewBareRepositoryError("no worktree", nil), IsBareRepository, true},
		{"invalid argument matches", NewInvalidArgumentError("nil repo", nil), IsInvalidArgument, true},
		{"plain error never matches", fmt.Errorf("plain"), IsIOFailure, false},
		{"nil error never matches", nil, IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.predicate(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}
