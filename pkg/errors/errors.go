// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"errors"
	"fmt"
)

// Error is a status-coded error. The code classifies the failure and the
// cause, if any, preserves the lower-level error as it crosses component
// boundaries.
type Error struct {
	Code    Status `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// With constructs an error from the status code and the given values.
func (s Status) With(v ...interface{}) *Error {
	return &Error{Code: s, Message: fmt.Sprint(v...)}
}

// WithFormat constructs an error from the status code and the formatted
// message. If the format wraps an error with %w, that error is preserved as
// the cause.
func (s Status) WithFormat(format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	e := &Error{Code: s, Message: err.Error()}
	if u, ok := err.(interface{ Unwrap() error }); ok {
		e.Cause = u.Unwrap()
	}
	return e
}

// Wrap wraps the given error with the status code. Wrap returns nil if err is
// nil.
func (s Status) Wrap(err error) error {
	if err == nil {
		// The return type must be `error` - otherwise this return statement
		// can cause strange errors
		return nil
	}
	return &Error{Code: s, Message: err.Error(), Cause: err}
}

// Error implements error.
func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Code
}

func (e *Error) Is(target error) bool {
	switch f := target.(type) {
	case *Error:
		return e.Code == f.Code
	case Status:
		return e.Code == f
	}
	return false
}

// Code returns the status code of the error, or UnknownError if the error does
// not carry one. Code returns OK for nil.
func Code(err error) Status {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return UnknownError
}

// Is calls stdlib [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As calls stdlib [errors.As].
func As(err error, target any) bool { return errors.As(err, target) }

// New calls stdlib [errors.New].
func New(text string) error { return errors.New(text) }
