// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jockey

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLongName(t *testing.T) {
	tests := map[string]string{
		"flag":         "--flag",
		"my_arg":       "--my-arg",
		"MyArg":        "--my-arg",
		"myArg":        "--my-arg",
		"HTTPPort":     "--http-port",
		"tsAuthKey":    "--ts-auth-key",
		"Ipv6":         "--ipv6",
		"macvlan-vlan": "--macvlan-vlan",
	}
	for in, want := range tests {
		if got := LongName(in); got != want {
			t.Errorf("LongName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFieldBindings(t *testing.T) {
	type rec struct {
		S string
		B bool
		L []string
	}
	str := func(r *rec) *string { return &r.S }

	tests := []struct {
		name  string
		field Field[rec]
		want  Binding
	}{
		{"default long", MandatoryString("my_value", str), Binding{Long: "--my-value"}},
		{"long override", MandatoryString("v", str, Long("value")), Binding{Long: "--value"}},
		{"both", MandatoryString("value", str, Short("v")), Binding{Long: "--value", Short: "-v"}},
		{"short only", Flag("verbose", func(r *rec) *bool { return &r.B }, ShortOnly("v")), Binding{Short: "-v"}},
		{"positional", MandatoryString("input", str, Position(2)), Binding{Positional: true, Position: 2}},
		{"catch-all", Multi("rest", func(r *rec) *[]string { return &r.L }, CatchAll()), Binding{CatchAll: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.field.Binding, tt.want) {
				t.Errorf("Binding = %+v, want %+v", tt.field.Binding, tt.want)
			}
			if _, err := NewSchema(nil, tt.field); err != nil {
				t.Errorf("NewSchema error: %v", err)
			}
		})
	}
}

func TestNewSchemaRejects(t *testing.T) {
	type rec struct {
		A, B string
		O    *string
		F    bool
		L, M []string
	}
	a := func(r *rec) *string { return &r.A }
	b := func(r *rec) *string { return &r.B }
	l := func(r *rec) *[]string { return &r.L }
	m := func(r *rec) *[]string { return &r.M }

	tests := []struct {
		name      string
		fields    []Field[rec]
		wantField string
		wantIn    string
	}{
		{
			name:      "two catch-all fields",
			fields:    []Field[rec]{Multi("l", l, CatchAll()), Multi("m", m, CatchAll())},
			wantField: "m",
			wantIn:    "second catch-all",
		},
		{
			name:      "duplicate position",
			fields:    []Field[rec]{MandatoryString("a", a, Position(0)), MandatoryString("b", b, Position(0))},
			wantField: "b",
			wantIn:    "position 0",
		},
		{
			name:      "duplicate option string",
			fields:    []Field[rec]{MandatoryString("a", a, Short("x")), MandatoryString("b", b, Short("x"))},
			wantField: "b",
			wantIn:    "option -x",
		},
		{
			name:      "long collides with another default",
			fields:    []Field[rec]{MandatoryString("a", a), MandatoryString("b", b, Long("a"))},
			wantField: "b",
			wantIn:    "option --a",
		},
		{
			name:      "duplicate name",
			fields:    []Field[rec]{MandatoryString("a", a), MandatoryString("a", b, Long("other"))},
			wantField: "a",
			wantIn:    "declared twice",
		},
		{
			name:      "positional with short",
			fields:    []Field[rec]{MandatoryString("a", a, Position(0), Short("a"))},
			wantField: "a",
			wantIn:    "positional",
		},
		{
			name:      "catch-all not multi",
			fields:    []Field[rec]{MandatoryString("a", a, CatchAll())},
			wantField: "a",
			wantIn:    "must be multi",
		},
		{
			name:      "positional flag",
			fields:    []Field[rec]{Flag("f", func(r *rec) *bool { return &r.F }, Position(0))},
			wantField: "f",
			wantIn:    "cannot be flag",
		},
		{
			name:      "negative position",
			fields:    []Field[rec]{MandatoryString("a", a, Position(-1))},
			wantField: "a",
			wantIn:    "negative",
		},
		{
			name:      "long short",
			fields:    []Field[rec]{MandatoryString("a", a, Short("ab"))},
			wantField: "a",
			wantIn:    "single character",
		},
		{
			name:      "option with equals",
			fields:    []Field[rec]{MandatoryString("a", a, Long("a=b"))},
			wantField: "a",
			wantIn:    "'='",
		},
		{
			name:      "missing slot",
			fields:    []Field[rec]{OptionalString[rec]("o", nil)},
			wantField: "o",
			wantIn:    "no slot",
		},
		{
			name:      "empty name",
			fields:    []Field[rec]{MandatoryString("", a, Long("x"))},
			wantField: "",
			wantIn:    "no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(nil, tt.fields...)
			var serr *SchemaError
			if !errors.As(err, &serr) {
				t.Fatalf("NewSchema error = %v, want *SchemaError", err)
			}
			if serr.Field != tt.wantField {
				t.Errorf("SchemaError.Field = %q, want %q", serr.Field, tt.wantField)
			}
			if !strings.Contains(serr.Error(), tt.wantIn) {
				t.Errorf("SchemaError = %q, want it to contain %q", serr.Error(), tt.wantIn)
			}
			if !errors.Is(err, ErrInvalidSchema) {
				t.Errorf("errors.Is(%v, ErrInvalidSchema) = false", err)
			}
		})
	}
}

func TestMustSchemaPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustSchema did not panic on an invalid schema")
		}
	}()
	type rec struct{ L, M []string }
	MustSchema(nil,
		Multi("l", func(r *rec) *[]string { return &r.L }, CatchAll()),
		Multi("m", func(r *rec) *[]string { return &r.M }, CatchAll()),
	)
}

func TestDescriptorsAndLookup(t *testing.T) {
	s := fullSchema(t, true)
	var names []string
	for _, d := range s.Descriptors() {
		names = append(names, d.Name)
	}
	want := []string{"string", "input", "verbose", "multi", "rest"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Descriptors names = %v, want %v", names, want)
	}

	d, ok := s.Lookup("multi")
	if !ok {
		t.Fatal("Lookup(multi) not found")
	}
	if d.Kind != KindMulti || d.Binding.Short != "-m" {
		t.Errorf("Lookup(multi) = %+v", d)
	}
	if _, ok := s.Lookup("nope"); ok {
		t.Error("Lookup(nope) found a field")
	}

	// Mutating the returned slice does not affect the schema.
	s.Descriptors()[0].Name = "changed"
	if got := s.Descriptors()[0].Name; got != "string" {
		t.Errorf("Descriptors()[0].Name = %q after mutation, want %q", got, "string")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindMandatoryString, KindOptionalString, KindFlag, KindMulti} {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if _, err := ParseKind("number"); err == nil {
		t.Error("ParseKind(number) succeeded, want error")
	}
}
