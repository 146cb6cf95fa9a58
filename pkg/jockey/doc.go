// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jockey parses command-line arguments into a typed record using an
// explicit, ordered schema of fields.
//
// A schema is built once and can be used for any number of parses:
//
//	type Args struct {
//	    Defaulted string
//	    Optional  *string
//	    Flag      bool
//	    Include   []string
//	    Rest      []string
//	}
//
//	schema := jockey.MustSchema(
//	    func() Args { return Args{Defaulted: "default_value"} },
//	    jockey.MandatoryString("defaulted", func(a *Args) *string { return &a.Defaulted }, jockey.Short("d")),
//	    jockey.OptionalString("optional", func(a *Args) **string { return &a.Optional }),
//	    jockey.Flag("flag", func(a *Args) *bool { return &a.Flag }),
//	    jockey.Multi("include", func(a *Args) *[]string { return &a.Include }, jockey.Short("I")),
//	    jockey.Multi("rest", func(a *Args) *[]string { return &a.Rest }, jockey.CatchAll()),
//	)
//
//	args, err := schema.Parse(os.Args[1:])
//
// # Matching
//
// Fields are tried in declaration order against the next unconsumed
// argument and the first field that matches wins:
//   - Flags match their option string exactly (--flag, -f).
//   - String and multi fields accept --name value and --name=value.
//   - Positional fields match only the argument at their declared index,
//     counted over the original argument list.
//   - An argument nothing matches goes to the catch-all field if there is
//     one, otherwise parsing fails with an *UnknownOptionError.
//
// A single-valued option may appear only once: a second occurrence, under
// either of its aliases, fails with a *DuplicateOptionError. Multi fields
// may repeat and collect their values in order. Mandatory fields that never
// matched are reported with a *MissingOptionError.
package jockey
