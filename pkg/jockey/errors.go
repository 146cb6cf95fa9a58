// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jockey

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by Parse unwraps to one of these.
var (
	ErrUnknownOption   = errors.New("unknown option")
	ErrUnexpectedEnd   = errors.New("unexpected end of arguments")
	ErrMissingOption   = errors.New("missing mandatory option")
	ErrDuplicateOption = errors.New("duplicate option")

	// ErrInvalidSchema is wrapped by *SchemaError.
	ErrInvalidSchema = errors.New("invalid schema")
)

// UnknownOptionError is returned when an argument matches no field and the
// schema has no catch-all field.
type UnknownOptionError struct {
	Token string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option: %s", e.Token)
}

func (e *UnknownOptionError) Unwrap() error { return ErrUnknownOption }

// UnexpectedEndError is returned when an option that takes a value is the
// last argument.
type UnexpectedEndError struct {
	Option string
}

func (e *UnexpectedEndError) Error() string {
	if e.Option == "" {
		return ErrUnexpectedEnd.Error()
	}
	return fmt.Sprintf("unexpected end of arguments: %s requires a value", e.Option)
}

func (e *UnexpectedEndError) Unwrap() error { return ErrUnexpectedEnd }

// MissingOptionError is returned when a mandatory field was never supplied.
type MissingOptionError struct {
	Field  string // field name
	Option string // preferred option string, empty for positional fields
}

func (e *MissingOptionError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("missing mandatory option: %s", e.Option)
	}
	return fmt.Sprintf("missing mandatory argument: %s", e.Field)
}

func (e *MissingOptionError) Unwrap() error { return ErrMissingOption }

// DuplicateOptionError is returned when a single-valued option is supplied
// more than once.
type DuplicateOptionError struct {
	Option string // the blacklisted option string
	Token  string // the argument as written, e.g. "--name=value"
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("duplicate option: %s", e.Option)
}

func (e *DuplicateOptionError) Unwrap() error { return ErrDuplicateOption }

// SchemaError describes a field declaration that cannot be used to build a
// schema. It is a programming error, not a user input error.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid schema: %s", e.Reason)
	}
	return fmt.Sprintf("invalid schema: field %q: %s", e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrInvalidSchema }
