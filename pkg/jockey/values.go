// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jockey

import (
	"slices"

	"tailscale.com/util/mak"
)

// Values is a record keyed by field name, for schemas that are not bound to
// a Go struct (for example schemas loaded from a file).
type Values struct {
	slots map[string]*slot
	order []string
}

type slot struct {
	kind Kind
	str  string
	opt  *string
	flag bool
	list []string
}

// NewValues returns an empty record with one default slot per descriptor.
func NewValues(descs []Descriptor) Values {
	var v Values
	for _, d := range descs {
		v.slot(d.Name, d.Kind)
	}
	return v
}

func (v *Values) slot(name string, kind Kind) *slot {
	if s, ok := v.slots[name]; ok {
		return s
	}
	s := &slot{kind: kind}
	mak.Set(&v.slots, name, s)
	v.order = append(v.order, name)
	return s
}

// Clone returns a deep copy of v.
func (v Values) Clone() Values {
	var out Values
	for _, name := range v.order {
		s := v.slots[name]
		c := out.slot(name, s.kind)
		c.str = s.str
		c.flag = s.flag
		c.list = slices.Clone(s.list)
		if s.opt != nil {
			o := *s.opt
			c.opt = &o
		}
	}
	return out
}

// Names returns the field names in the order their slots were created. A
// record produced by Parse has one slot per field in declaration order.
func (v Values) Names() []string {
	return slices.Clone(v.order)
}

// Kind returns the kind of the named slot.
func (v Values) Kind(name string) (Kind, bool) {
	s, ok := v.slots[name]
	if !ok {
		return 0, false
	}
	return s.kind, true
}

// String returns the value of a mandatory or optional string field, or ""
// if it is unset.
func (v Values) String(name string) string {
	s, _ := v.Lookup(name)
	return s
}

// Lookup returns the value of a string field and whether it holds one. For
// optional fields ok is false until the option is supplied.
func (v Values) Lookup(name string) (value string, ok bool) {
	s, found := v.slots[name]
	if !found {
		return "", false
	}
	switch s.kind {
	case KindMandatoryString:
		return s.str, true
	case KindOptionalString:
		if s.opt == nil {
			return "", false
		}
		return *s.opt, true
	}
	return "", false
}

// Bool returns the value of a flag field.
func (v Values) Bool(name string) bool {
	s, ok := v.slots[name]
	return ok && s.flag
}

// List returns the values of a multi field.
func (v Values) List(name string) []string {
	s, ok := v.slots[name]
	if !ok {
		return nil
	}
	return s.list
}

// SetDefault seeds a slot before parsing: the string value for string
// kinds, true for flags ("true") and one element per call for multi fields.
func (v *Values) SetDefault(name string, kind Kind, value string) {
	s := v.slot(name, kind)
	switch kind {
	case KindMandatoryString:
		s.str = value
	case KindOptionalString:
		s.opt = &value
	case KindFlag:
		s.flag = value == "true"
	case KindMulti:
		s.list = append(s.list, value)
	}
}

// ValueField returns a field for d that stores into the slot named d.Name
// of a Values record.
func ValueField(d Descriptor) Field[Values] {
	f := Field[Values]{Descriptor: d}
	name, kind := d.Name, d.Kind
	switch kind {
	case KindMandatoryString:
		f.str = func(v *Values) *string { return &v.slot(name, kind).str }
	case KindOptionalString:
		f.opt = func(v *Values) **string { return &v.slot(name, kind).opt }
	case KindFlag:
		f.flag = func(v *Values) *bool { return &v.slot(name, kind).flag }
	case KindMulti:
		f.multi = func(v *Values) *[]string { return &v.slot(name, kind).list }
	}
	return f
}
