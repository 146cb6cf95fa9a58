// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jockey

// Field is a Descriptor bound to the slot it fills in a record of type T.
// Fields are created with MandatoryString, OptionalString, Flag, Multi or
// ValueField.
type Field[T any] struct {
	Descriptor

	// Exactly one accessor is set, matching Descriptor.Kind.
	str   func(*T) *string
	opt   func(*T) **string
	flag  func(*T) *bool
	multi func(*T) *[]string
}

// An Option customizes the binding or help text of a field.
type Option func(*fieldOptions)

type fieldOptions struct {
	d       *Descriptor
	longSet bool
}

// Long replaces the default long option. name is given without the leading
// dashes.
func Long(name string) Option {
	return func(o *fieldOptions) {
		o.d.Binding.Long = "--" + name
		o.longSet = true
	}
}

// Short adds a single character short alias, given without the dash.
func Short(c string) Option {
	return func(o *fieldOptions) {
		o.d.Binding.Short = "-" + c
	}
}

// ShortOnly binds the field to a short option and drops the long form.
func ShortOnly(c string) Option {
	return func(o *fieldOptions) {
		Short(c)(o)
		o.d.Binding.Long = ""
		o.longSet = true
	}
}

// Position binds the field to the argument at index i of the original
// argument list instead of an option string.
func Position(i int) Option {
	return func(o *fieldOptions) {
		o.d.Binding.Positional = true
		o.d.Binding.Position = i
	}
}

// CatchAll makes the field collect every argument no other field matched.
func CatchAll() Option {
	return func(o *fieldOptions) {
		o.d.Binding.CatchAll = true
	}
}

// Help sets the description shown by Schema.Usage.
func Help(text string) Option {
	return func(o *fieldOptions) {
		o.d.Help = text
	}
}

func newField[T any](name string, kind Kind, opts []Option) Field[T] {
	f := Field[T]{Descriptor: Descriptor{Name: name, Kind: kind}}
	o := fieldOptions{d: &f.Descriptor}
	for _, opt := range opts {
		opt(&o)
	}
	b := &f.Binding
	if !o.longSet && !b.Positional && !b.CatchAll {
		b.Long = LongName(name)
	}
	return f
}

// MandatoryString declares a string field that must be supplied.
func MandatoryString[T any](name string, slot func(*T) *string, opts ...Option) Field[T] {
	f := newField[T](name, KindMandatoryString, opts)
	f.str = slot
	return f
}

// OptionalString declares a string field that may be omitted. The slot is
// left nil when the option is absent.
func OptionalString[T any](name string, slot func(*T) **string, opts ...Option) Field[T] {
	f := newField[T](name, KindOptionalString, opts)
	f.opt = slot
	return f
}

// Flag declares a boolean field set to true by its presence.
func Flag[T any](name string, slot func(*T) *bool, opts ...Option) Field[T] {
	f := newField[T](name, KindFlag, opts)
	f.flag = slot
	return f
}

// Multi declares a repeatable string field. Each occurrence appends.
func Multi[T any](name string, slot func(*T) *[]string, opts ...Option) Field[T] {
	f := newField[T](name, KindMulti, opts)
	f.multi = slot
	return f
}

func (f *Field[T]) validate() error {
	if err := f.Descriptor.validate(); err != nil {
		return err
	}
	var ok bool
	switch f.Kind {
	case KindMandatoryString:
		ok = f.str != nil
	case KindOptionalString:
		ok = f.opt != nil
	case KindFlag:
		ok = f.flag != nil
	case KindMulti:
		ok = f.multi != nil
	}
	if !ok {
		return &SchemaError{Field: f.Name, Reason: "no slot for " + f.Kind.String() + " value"}
	}
	return nil
}

// store writes a matched value into rec. Multi values are appended, every
// other kind overwrites.
func (f *Field[T]) store(rec *T, value string) {
	switch f.Kind {
	case KindMandatoryString:
		*f.str(rec) = value
	case KindOptionalString:
		v := value
		*f.opt(rec) = &v
	case KindFlag:
		*f.flag(rec) = true
	case KindMulti:
		s := f.multi(rec)
		*s = append(*s, value)
	}
}
