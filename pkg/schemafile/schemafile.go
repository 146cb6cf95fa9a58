// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile loads jockey schemas from TOML, YAML or JSON documents.
// JSON documents may carry comments and trailing commas.
package schemafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/jsonc"
	"github.com/yeetrun/jockey/pkg/jockey"
	"gopkg.in/yaml.v3"
	"tailscale.com/util/must"
)

// Format is the encoding of a schema document.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// SupportedVersions is the range of document versions this package reads.
const SupportedVersions = "^1.0.0"

// CurrentVersion is assumed when a document has no version.
const CurrentVersion = "1.0.0"

var supported = must.Get(semver.NewConstraint(SupportedVersions))

type File struct {
	Version     string       `toml:"version,omitempty" yaml:"version,omitempty" json:"version,omitempty"`
	Program     string       `toml:"program,omitempty" yaml:"program,omitempty" json:"program,omitempty"`
	Description string       `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
	Fields      []FieldEntry `toml:"field" yaml:"fields" json:"fields"`
}

type FieldEntry struct {
	Name     string   `toml:"name" yaml:"name" json:"name"`
	Kind     string   `toml:"kind" yaml:"kind" json:"kind"`
	Long     string   `toml:"long,omitempty" yaml:"long,omitempty" json:"long,omitempty"`
	Short    string   `toml:"short,omitempty" yaml:"short,omitempty" json:"short,omitempty"`
	NoLong   bool     `toml:"no_long,omitempty" yaml:"no_long,omitempty" json:"no_long,omitempty"`
	Position *int     `toml:"position,omitempty" yaml:"position,omitempty" json:"position,omitempty"`
	CatchAll bool     `toml:"catch_all,omitempty" yaml:"catch_all,omitempty" json:"catch_all,omitempty"`
	Help     string   `toml:"help,omitempty" yaml:"help,omitempty" json:"help,omitempty"`
	Default  *string  `toml:"default,omitempty" yaml:"default,omitempty" json:"default,omitempty"`
	Defaults []string `toml:"defaults,omitempty" yaml:"defaults,omitempty" json:"defaults,omitempty"`
}

// DetectFormat picks the format from the file extension, TOML by default.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	case ".json", ".jsonc":
		return FormatJSON
	}
	return FormatTOML
}

// Load reads and checks the schema document at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(bytes.NewReader(data), DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// Decode reads a schema document in the given format and checks its
// version. Field bindings are checked by Schema.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
			return nil, err
		}
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported schema format %q", format)
	}
	if err := f.checkVersion(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) checkVersion() error {
	if f.Version == "" {
		f.Version = CurrentVersion
		return nil
	}
	v, err := semver.NewVersion(f.Version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", f.Version, err)
	}
	if !supported.Check(v) {
		return fmt.Errorf("unsupported schema version %s, want %s", v, SupportedVersions)
	}
	return nil
}

// Descriptors converts the field entries to descriptors in document order.
func (f *File) Descriptors() ([]jockey.Descriptor, error) {
	descs := make([]jockey.Descriptor, 0, len(f.Fields))
	for _, e := range f.Fields {
		d, err := e.descriptor()
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}
	return descs, nil
}

func (e FieldEntry) descriptor() (jockey.Descriptor, error) {
	kind, err := jockey.ParseKind(e.Kind)
	if err != nil {
		return jockey.Descriptor{}, &jockey.SchemaError{Field: e.Name, Reason: err.Error()}
	}
	d := jockey.Descriptor{Name: e.Name, Kind: kind, Help: e.Help}
	b := &d.Binding
	b.CatchAll = e.CatchAll
	if e.Position != nil {
		b.Positional = true
		b.Position = *e.Position
	}
	if e.Short != "" {
		b.Short = "-" + strings.TrimLeft(e.Short, "-")
	}
	switch {
	case e.Long != "":
		b.Long = "--" + strings.TrimLeft(e.Long, "-")
	case !e.NoLong && !b.CatchAll && !b.Positional:
		b.Long = jockey.LongName(e.Name)
	}
	return d, nil
}

// Schema builds a schema over jockey.Values. Each parse starts from a copy
// of the record seeded with the entries' defaults.
func (f *File) Schema() (*jockey.Schema[jockey.Values], error) {
	descs, err := f.Descriptors()
	if err != nil {
		return nil, err
	}
	base := jockey.NewValues(descs)
	fields := make([]jockey.Field[jockey.Values], len(descs))
	for i, d := range descs {
		if err := seedDefaults(&base, d, f.Fields[i]); err != nil {
			return nil, err
		}
		fields[i] = jockey.ValueField(d)
	}
	return jockey.NewSchema(func() jockey.Values { return base.Clone() }, fields...)
}

func seedDefaults(base *jockey.Values, d jockey.Descriptor, e FieldEntry) error {
	switch d.Kind {
	case jockey.KindFlag:
		if e.Default != nil || len(e.Defaults) > 0 {
			return &jockey.SchemaError{Field: d.Name, Reason: "flag fields cannot have a default"}
		}
	case jockey.KindMulti:
		if e.Default != nil {
			return &jockey.SchemaError{Field: d.Name, Reason: "multi fields take defaults, not default"}
		}
		for _, v := range e.Defaults {
			base.SetDefault(d.Name, d.Kind, v)
		}
	default:
		if len(e.Defaults) > 0 {
			return &jockey.SchemaError{Field: d.Name, Reason: fmt.Sprintf("%s fields take default, not defaults", d.Kind)}
		}
		if e.Default != nil {
			base.SetDefault(d.Name, d.Kind, *e.Default)
		}
	}
	return nil
}
