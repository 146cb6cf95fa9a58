// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schemafile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/jockey/pkg/jockey"
)

const demoTOML = `
version = "1.0.0"
program = "demo"
description = "demo tool"

[[field]]
name = "defaulted"
kind = "mandatory"
short = "d"
default = "default_value"
help = "A mandatory value"

[[field]]
name = "optional"
kind = "optional"

[[field]]
name = "flag"
kind = "flag"

[[field]]
name = "include"
kind = "multi"
short = "I"
no_long = true
defaults = ["/usr/include"]

[[field]]
name = "input"
kind = "optional"
position = 0

[[field]]
name = "rest"
kind = "multi"
catch_all = true
`

const demoYAML = `
version: 1.2.0
program: demo
description: demo tool
fields:
  - name: defaulted
    kind: mandatory
    short: d
    default: default_value
    help: A mandatory value
  - name: optional
    kind: optional
  - name: flag
    kind: flag
  - name: include
    kind: multi
    short: I
    no_long: true
    defaults: [/usr/include]
  - name: input
    kind: optional
    position: 0
  - name: rest
    kind: multi
    catch_all: true
`

const demoJSONC = `{
  // Same schema as demoTOML.
  "version": "1.0.0",
  "program": "demo",
  "description": "demo tool",
  "fields": [
    {"name": "defaulted", "kind": "mandatory", "short": "d", "default": "default_value", "help": "A mandatory value"},
    {"name": "optional", "kind": "optional"},
    {"name": "flag", "kind": "flag"},
    {"name": "include", "kind": "multi", "short": "I", "no_long": true, "defaults": ["/usr/include"]},
    {"name": "input", "kind": "optional", "position": 0},
    {"name": "rest", "kind": "multi", "catch_all": true},
  ],
}`

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"schema.toml":  FormatTOML,
		"schema.yaml":  FormatYAML,
		"schema.YML":   FormatYAML,
		"schema":       FormatTOML,
		"schema.json":  FormatJSON,
		"schema.jsonc": FormatJSON,
		"schema.ini":   FormatTOML,
	}
	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestLoadFormatsAgree(t *testing.T) {
	want := []jockey.Descriptor{
		{Name: "defaulted", Kind: jockey.KindMandatoryString, Binding: jockey.Binding{Long: "--defaulted", Short: "-d"}, Help: "A mandatory value"},
		{Name: "optional", Kind: jockey.KindOptionalString, Binding: jockey.Binding{Long: "--optional"}},
		{Name: "flag", Kind: jockey.KindFlag, Binding: jockey.Binding{Long: "--flag"}},
		{Name: "include", Kind: jockey.KindMulti, Binding: jockey.Binding{Short: "-I"}},
		{Name: "input", Kind: jockey.KindOptionalString, Binding: jockey.Binding{Positional: true, Position: 0}},
		{Name: "rest", Kind: jockey.KindMulti, Binding: jockey.Binding{CatchAll: true}},
	}

	for _, tc := range []struct {
		name     string
		contents string
	}{
		{"schema.toml", demoTOML},
		{"schema.yaml", demoYAML},
		{"schema.jsonc", demoJSONC},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Load(writeFile(t, tc.name, tc.contents))
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if f.Program != "demo" || f.Description != "demo tool" {
				t.Errorf("Program, Description = %q, %q", f.Program, f.Description)
			}
			got, err := f.Descriptors()
			if err != nil {
				t.Fatalf("Descriptors error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Descriptors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchemaParse(t *testing.T) {
	f, err := Decode(strings.NewReader(demoTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	s, err := f.Schema()
	if err != nil {
		t.Fatalf("Schema error: %v", err)
	}

	got, err := s.Parse([]string{"in.txt", "-d", "x", "-I", "a", "--flag", "--", "tail"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.String("defaulted") != "x" {
		t.Errorf("defaulted = %q, want %q", got.String("defaulted"), "x")
	}
	if v, ok := got.Lookup("input"); !ok || v != "in.txt" {
		t.Errorf("input = %q, %v, want %q, true", v, ok, "in.txt")
	}
	if _, ok := got.Lookup("optional"); ok {
		t.Error("optional is set, want unset")
	}
	if !got.Bool("flag") {
		t.Error("flag = false, want true")
	}
	if want := []string{"/usr/include", "a"}; !reflect.DeepEqual(got.List("include"), want) {
		t.Errorf("include = %v, want %v", got.List("include"), want)
	}
	if want := []string{"--", "tail"}; !reflect.DeepEqual(got.List("rest"), want) {
		t.Errorf("rest = %v, want %v", got.List("rest"), want)
	}

	// A default does not satisfy a mandatory field.
	_, err = s.Parse(nil)
	var missing *jockey.MissingOptionError
	if !errors.As(err, &missing) || missing.Field != "defaulted" {
		t.Errorf("Parse(nil) error = %v, want missing defaulted", err)
	}
}

func TestDecodeVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr string
	}{
		{"", ""},
		{"1.0.0", ""},
		{"1.9.3", ""},
		{"2.0.0", "unsupported schema version"},
		{"0.9.0", "unsupported schema version"},
		{"latest", "invalid version"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			doc := "[[field]]\nname = \"a\"\nkind = \"flag\"\n"
			if tt.version != "" {
				doc = "version = \"" + tt.version + "\"\n" + doc
			}
			f, err := Decode(strings.NewReader(doc), FormatTOML)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Decode error: %v", err)
				}
				if f.Version == "" {
					t.Error("Version is empty after Decode")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Decode error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestSchemaRejects(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantField string
		wantIn    string
	}{
		{
			name:      "unknown kind",
			doc:       "fields:\n  - name: a\n    kind: number\n",
			wantField: "a",
			wantIn:    "unknown field kind",
		},
		{
			name:      "flag default",
			doc:       "fields:\n  - name: a\n    kind: flag\n    default: \"true\"\n",
			wantField: "a",
			wantIn:    "cannot have a default",
		},
		{
			name:      "multi default",
			doc:       "fields:\n  - name: a\n    kind: multi\n    default: x\n",
			wantField: "a",
			wantIn:    "take defaults",
		},
		{
			name:      "string defaults",
			doc:       "fields:\n  - name: a\n    kind: optional\n    defaults: [x]\n",
			wantField: "a",
			wantIn:    "take default",
		},
		{
			name:      "positional catch-all",
			doc:       "fields:\n  - name: a\n    kind: multi\n    catch_all: true\n    position: 1\n",
			wantField: "a",
			wantIn:    "catch-all",
		},
		{
			name:      "no binding",
			doc:       "fields:\n  - name: a\n    kind: flag\n    no_long: true\n",
			wantField: "a",
			wantIn:    "no option string",
		},
		{
			name:      "shared short",
			doc:       "fields:\n  - name: a\n    kind: flag\n    short: x\n  - name: b\n    kind: flag\n    short: x\n",
			wantField: "b",
			wantIn:    "option -x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode(strings.NewReader(tt.doc), FormatYAML)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			_, err = f.Schema()
			var serr *jockey.SchemaError
			if !errors.As(err, &serr) {
				t.Fatalf("Schema error = %v, want *jockey.SchemaError", err)
			}
			if serr.Field != tt.wantField {
				t.Errorf("SchemaError.Field = %q, want %q", serr.Field, tt.wantField)
			}
			if !strings.Contains(serr.Error(), tt.wantIn) {
				t.Errorf("SchemaError = %q, want it to contain %q", serr.Error(), tt.wantIn)
			}
		})
	}
}

func TestLoadErrorsNamePath(t *testing.T) {
	path := writeFile(t, "broken.toml", "[[field]\nname = ")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded on a broken document")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Load error = %q, want it to name %s", err, path)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestDecodeJSONRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"fields": [{"name": "a", "kind": "flag", "alias": "b"}]}`), FormatJSON)
	if err == nil || !strings.Contains(err.Error(), "alias") {
		t.Errorf("Decode error = %v, want unknown field alias", err)
	}
}
