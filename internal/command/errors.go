// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
)

// Kind tags a Failure.
type Kind int

const (
	// KindValidation marks failures detected before the handler ran.
	KindValidation Kind = iota
	// KindHandler marks failures raised by the handler.
	KindHandler
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindHandler:
		return "handler"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Failure is implemented by every error produced by a dispatched command.
type Failure interface {
	error
	Kind() Kind
}

// ErrMissingRequiredOption is matched by a ValidationError for a missing option.
var ErrMissingRequiredOption = errors.New("missing required option")

// ValidationError reports invalid command-line input.
type ValidationError struct {
	// Option is the long flag of a missing required option.
	Option string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("error: option '%s' missing", e.Option)
	}
	return fmt.Sprintf("error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	if e.Option != "" {
		return ErrMissingRequiredOption
	}
	return e.Err
}

// Kind implements Failure.
func (*ValidationError) Kind() Kind {
	return KindValidation
}

// HandlerError wraps an error returned, or a panic raised, by a handler.
type HandlerError struct {
	Command string
	Err     error
}

func (e *HandlerError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the handler error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Kind implements Failure.
func (*HandlerError) Kind() Kind {
	return KindHandler
}
