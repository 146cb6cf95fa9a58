// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jockey

import (
	"fmt"
	"slices"
	"strings"
)

// Usage renders a help message for the schema. Sections are USAGE,
// ARGUMENTS (positional and catch-all fields, by position) and OPTIONS
// (option fields in declaration order):
//
//	USAGE:
//	    prog [OPTIONS] <INPUT> [REST...]
//
//	OPTIONS:
//	    -d, --defaulted <VALUE>  Defaulted value (required)
func (s *Schema[T]) Usage(program string) string {
	var b strings.Builder

	var positional, options []Descriptor
	var catchAll *Descriptor
	for i, d := range s.all {
		switch {
		case d.Binding.CatchAll:
			catchAll = &s.all[i]
		case d.Binding.Positional:
			positional = append(positional, d)
		default:
			options = append(options, d)
		}
	}
	slices.SortStableFunc(positional, func(a, b Descriptor) int {
		return a.Binding.Position - b.Binding.Position
	})

	b.WriteString("USAGE:\n")
	usageStr := "    " + program
	if len(options) > 0 {
		usageStr += " [OPTIONS]"
	}
	for _, d := range positional {
		name := strings.ToUpper(kebab(d.Name))
		if d.Mandatory() {
			usageStr += fmt.Sprintf(" <%s>", name)
		} else {
			usageStr += fmt.Sprintf(" [%s]", name)
		}
	}
	if catchAll != nil {
		usageStr += fmt.Sprintf(" [%s...]", strings.ToUpper(kebab(catchAll.Name)))
	}
	b.WriteString(usageStr)
	b.WriteString("\n\n")

	if len(positional) > 0 || catchAll != nil {
		b.WriteString("ARGUMENTS:\n")
		for _, d := range positional {
			writeUsageLine(&b, strings.ToUpper(kebab(d.Name)), d)
		}
		if catchAll != nil {
			writeUsageLine(&b, strings.ToUpper(kebab(catchAll.Name))+"...", *catchAll)
		}
		b.WriteString("\n")
	}

	if len(options) > 0 {
		b.WriteString("OPTIONS:\n")
		for _, d := range options {
			var flagStr string
			switch {
			case d.Binding.Long != "" && d.Binding.Short != "":
				flagStr = fmt.Sprintf("%s, %s", d.Binding.Short, d.Binding.Long)
			case d.Binding.Long != "":
				flagStr = "    " + d.Binding.Long
			default:
				flagStr = d.Binding.Short
			}
			if d.Kind != KindFlag {
				flagStr += " <VALUE>"
			}
			writeUsageLine(&b, flagStr, d)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeUsageLine(b *strings.Builder, label string, d Descriptor) {
	desc := d.Help
	switch {
	case d.Mandatory():
		desc = strings.TrimSpace(desc + " (required)")
	case d.Kind == KindMulti && !d.Binding.CatchAll:
		desc = strings.TrimSpace(desc + " (repeatable)")
	}
	if desc == "" {
		fmt.Fprintf(b, "    %s\n", label)
		return
	}
	fmt.Fprintf(b, "    %-24s %s\n", label, desc)
}
