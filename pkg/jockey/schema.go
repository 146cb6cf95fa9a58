// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jockey

import (
	"fmt"

	"tailscale.com/util/set"
)

// Schema is an ordered list of fields for records of type T. A Schema is
// immutable once built and may be shared between goroutines.
type Schema[T any] struct {
	fields   []Field[T] // ordinary fields, declaration order
	catchAll *Field[T]
	all      []Descriptor // every field, declaration order
	defaults func() T
}

// NewSchema validates fields and returns a Schema. defaults creates the
// record each parse starts from; nil means the zero value of T.
func NewSchema[T any](defaults func() T, fields ...Field[T]) (*Schema[T], error) {
	s := &Schema[T]{defaults: defaults}
	names := set.Set[string]{}
	options := make(map[string]string) // option string -> field name
	positions := make(map[int]string)
	for i := range fields {
		f := fields[i]
		if err := f.validate(); err != nil {
			return nil, err
		}
		if names.Contains(f.Name) {
			return nil, &SchemaError{Field: f.Name, Reason: "declared twice"}
		}
		names.Add(f.Name)
		for _, opt := range f.Binding.Options() {
			if other, ok := options[opt]; ok {
				return nil, &SchemaError{Field: f.Name, Reason: fmt.Sprintf("option %s already used by %q", opt, other)}
			}
			options[opt] = f.Name
		}
		if f.Binding.Positional {
			if other, ok := positions[f.Binding.Position]; ok {
				return nil, &SchemaError{Field: f.Name, Reason: fmt.Sprintf("position %d already used by %q", f.Binding.Position, other)}
			}
			positions[f.Binding.Position] = f.Name
		}
		s.all = append(s.all, f.Descriptor)
		if f.Binding.CatchAll {
			if s.catchAll != nil {
				return nil, &SchemaError{Field: f.Name, Reason: fmt.Sprintf("second catch-all field, %q is already catch-all", s.catchAll.Name)}
			}
			s.catchAll = &f
			continue
		}
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. It is intended for
// schemas declared at package level.
func MustSchema[T any](defaults func() T, fields ...Field[T]) *Schema[T] {
	s, err := NewSchema(defaults, fields...)
	if err != nil {
		panic(fmt.Sprintf("jockey.MustSchema: %v", err))
	}
	return s
}

// Descriptors returns the descriptors of all fields in declaration order.
func (s *Schema[T]) Descriptors() []Descriptor {
	return append([]Descriptor(nil), s.all...)
}

// Lookup returns the descriptor of the field named name.
func (s *Schema[T]) Lookup(name string) (Descriptor, bool) {
	for _, d := range s.all {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// newRecord returns the record a parse starts from. Without a defaults
// factory a Values record still gets its slots in declaration order.
func (s *Schema[T]) newRecord() T {
	if s.defaults != nil {
		return s.defaults()
	}
	var zero T
	if v, ok := any(&zero).(*Values); ok {
		*v = NewValues(s.all)
	}
	return zero
}
