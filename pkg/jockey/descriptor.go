// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jockey

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the value kind of a field.
type Kind int

const (
	KindMandatoryString Kind = iota
	KindOptionalString
	KindFlag
	KindMulti
)

func (k Kind) String() string {
	switch k {
	case KindMandatoryString:
		return "mandatory"
	case KindOptionalString:
		return "optional"
	case KindFlag:
		return "flag"
	case KindMulti:
		return "multi"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named by s, as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mandatory", "string":
		return KindMandatoryString, nil
	case "optional":
		return KindOptionalString, nil
	case "flag", "bool":
		return KindFlag, nil
	case "multi", "list":
		return KindMulti, nil
	}
	return 0, fmt.Errorf("unknown field kind %q", s)
}

// Binding says which arguments a field answers to. A field is bound to
// option strings (Long, Short or both), to a position, or is the catch-all.
type Binding struct {
	Long       string // "--name", empty if none
	Short      string // "-n", empty if none
	Positional bool
	Position   int // original argument index, valid when Positional
	CatchAll   bool
}

// Options returns the option strings of b, long form first.
func (b Binding) Options() []string {
	var opts []string
	if b.Long != "" {
		opts = append(opts, b.Long)
	}
	if b.Short != "" {
		opts = append(opts, b.Short)
	}
	return opts
}

func (b Binding) String() string {
	switch {
	case b.CatchAll:
		return "catch-all"
	case b.Positional:
		return fmt.Sprintf("position %d", b.Position)
	}
	return strings.Join(b.Options(), ", ")
}

// Descriptor describes one field of a record.
type Descriptor struct {
	Name    string
	Kind    Kind
	Binding Binding
	Help    string
}

// Mandatory reports whether the field must be supplied.
func (d Descriptor) Mandatory() bool {
	return d.Kind == KindMandatoryString
}

// option returns the option string used to refer to d in messages.
func (d Descriptor) option() string {
	if opts := d.Binding.Options(); len(opts) > 0 {
		return opts[0]
	}
	return ""
}

func (d Descriptor) validate() error {
	if d.Name == "" {
		return &SchemaError{Reason: "field has no name"}
	}
	b := d.Binding
	hasOpts := b.Long != "" || b.Short != ""
	switch {
	case b.CatchAll && b.Positional:
		return &SchemaError{Field: d.Name, Reason: "catch-all field cannot be positional"}
	case b.CatchAll && hasOpts:
		return &SchemaError{Field: d.Name, Reason: "catch-all field cannot have option strings"}
	case b.Positional && hasOpts:
		return &SchemaError{Field: d.Name, Reason: "positional field cannot have option strings"}
	case !b.CatchAll && !b.Positional && !hasOpts:
		return &SchemaError{Field: d.Name, Reason: "field has no option string, position or catch-all binding"}
	}
	if b.CatchAll && d.Kind != KindMulti {
		return &SchemaError{Field: d.Name, Reason: "catch-all field must be multi"}
	}
	if b.Positional {
		if b.Position < 0 {
			return &SchemaError{Field: d.Name, Reason: fmt.Sprintf("negative position %d", b.Position)}
		}
		if d.Kind != KindMandatoryString && d.Kind != KindOptionalString {
			return &SchemaError{Field: d.Name, Reason: fmt.Sprintf("positional field cannot be %s", d.Kind)}
		}
	}
	if b.Long != "" && (!strings.HasPrefix(b.Long, "--") || len(b.Long) == 2) {
		return &SchemaError{Field: d.Name, Reason: fmt.Sprintf("long option %q must be -- followed by a name", b.Long)}
	}
	if b.Short != "" && (!strings.HasPrefix(b.Short, "-") || b.Short == "--" || utf8.RuneCountInString(b.Short) != 2) {
		return &SchemaError{Field: d.Name, Reason: fmt.Sprintf("short option %q must be - followed by a single character", b.Short)}
	}
	for _, opt := range b.Options() {
		if strings.ContainsRune(opt, '=') {
			return &SchemaError{Field: d.Name, Reason: fmt.Sprintf("option %q contains '='", opt)}
		}
	}
	if d.Kind < KindMandatoryString || d.Kind > KindMulti {
		return &SchemaError{Field: d.Name, Reason: fmt.Sprintf("unsupported kind %s", d.Kind)}
	}
	return nil
}

// LongName returns the default long option for a field name: "--" followed
// by the kebab-cased name. "MyArg", "myArg" and "my_arg" all map to
// "--my-arg"; acronyms stay together, so "HTTPPort" maps to "--http-port".
func LongName(name string) string {
	return "--" + kebab(name)
}

func kebab(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if r == '_' || r == ' ' {
			r = '-'
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
