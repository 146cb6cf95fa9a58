// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env writes parsed records as environment files.
package env

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yeetrun/jockey/pkg/jockey"
)

// Write writes an environment file with the given name holding the values
// of v. Keys are built with Key.
func Write(name, prefix string, descs []jockey.Descriptor, v jockey.Values) error {
	var buf bytes.Buffer
	if err := Marshal(&buf, prefix, descs, v); err != nil {
		return fmt.Errorf("failed to marshal env: %w", err)
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return err
	}
	return f.Close()
}

// Key returns the variable name for a field: the prefix followed by the
// upper-cased long name, "tsAuthKey" with prefix "APP_" becomes
// "APP_TS_AUTH_KEY".
func Key(prefix, name string) string {
	k := strings.TrimPrefix(jockey.LongName(name), "--")
	return prefix + strings.ToUpper(strings.ReplaceAll(k, "-", "_"))
}

// Marshal writes one KEY=value line per field that holds a value. Unset
// optional fields, false flags, empty strings and empty lists are skipped.
// Multi values are joined with commas. Values that are not plain words are
// double-quoted with backslash escapes, as systemd's EnvironmentFile reads
// them. A value holding a line break or NUL is rejected.
func Marshal(o io.Writer, prefix string, descs []jockey.Descriptor, v jockey.Values) error {
	for _, d := range descs {
		var val string
		switch d.Kind {
		case jockey.KindFlag:
			if v.Bool(d.Name) {
				val = "true"
			}
		case jockey.KindMulti:
			val = strings.Join(v.List(d.Name), ",")
		default:
			val = v.String(d.Name)
		}
		if val == "" {
			continue
		}
		if strings.ContainsAny(val, "\n\r\x00") {
			return fmt.Errorf("value of %s contains a line break or NUL", d.Name)
		}
		if _, err := fmt.Fprintf(o, "%s=%s\n", Key(prefix, d.Name), Quote(val)); err != nil {
			return err
		}
	}
	return nil
}

// Quote returns s as it should appear after KEY= in an environment file.
// Plain words are returned unchanged.
func Quote(s string) string {
	if strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("_-.,:/@+=%", r)
}
