// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/jockey/pkg/env"
	"github.com/yeetrun/jockey/pkg/jockey"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatYAML  outputFormat = "yaml"
	formatJSON  outputFormat = "json"
	formatTOML  outputFormat = "toml"
	formatPlain outputFormat = "plain"
	formatEnv   outputFormat = "env"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return formatYAML, nil
	case formatYAML, formatJSON, formatTOML, formatPlain, formatEnv:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want yaml, json, toml, plain or env)", s)
}

// recordValue returns the value of the named field as a Go value: string,
// nil for an unset optional, bool or []string.
func recordValue(v jockey.Values, d jockey.Descriptor) any {
	switch d.Kind {
	case jockey.KindOptionalString:
		s, ok := v.Lookup(d.Name)
		if !ok {
			return nil
		}
		return s
	case jockey.KindFlag:
		return v.Bool(d.Name)
	case jockey.KindMulti:
		list := v.List(d.Name)
		if list == nil {
			return []string{}
		}
		return list
	}
	return v.String(d.Name)
}

func render(w io.Writer, format outputFormat, descs []jockey.Descriptor, v jockey.Values, envPrefix string) error {
	switch format {
	case formatEnv:
		return env.Marshal(w, envPrefix, descs, v)
	case formatYAML:
		return renderYAML(w, descs, v)
	case formatJSON:
		return renderJSON(w, descs, v)
	case formatTOML:
		return renderTOML(w, descs, v)
	case formatPlain:
		return renderPlain(w, descs, v)
	}
	return fmt.Errorf("unknown format %q", format)
}

// renderYAML writes the record as a mapping in field order.
func renderYAML(w io.Writer, descs []jockey.Descriptor, v jockey.Values) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, d := range descs {
		var val yaml.Node
		if err := val.Encode(recordValue(v, d)); err != nil {
			return fmt.Errorf("failed to encode %s: %w", d.Name, err)
		}
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: d.Name}, &val)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// renderJSON writes the record as an object with keys in field order.
func renderJSON(w io.Writer, descs []jockey.Descriptor, v jockey.Values) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, d := range descs {
		if i > 0 {
			buf.WriteString(",")
		}
		val, err := json.Marshal(recordValue(v, d))
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", d.Name, err)
		}
		fmt.Fprintf(&buf, "\n  %s: %s", strconv.Quote(d.Name), val)
	}
	if len(descs) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// renderTOML writes the record as TOML key/value pairs in field order. TOML
// has no null, so unset optional fields are left out. The encoder sorts map
// keys, so each pair is encoded on its own.
func renderTOML(w io.Writer, descs []jockey.Descriptor, v jockey.Values) error {
	enc := toml.NewEncoder(w)
	for _, d := range descs {
		val := recordValue(v, d)
		if val == nil {
			continue
		}
		if err := enc.Encode(map[string]any{d.Name: val}); err != nil {
			return fmt.Errorf("failed to encode %s: %w", d.Name, err)
		}
	}
	return nil
}

// renderPlain writes one name=value line per value. Multi fields repeat the
// name for each element and unset optional fields are left out.
func renderPlain(w io.Writer, descs []jockey.Descriptor, v jockey.Values) error {
	for _, d := range descs {
		switch val := recordValue(v, d).(type) {
		case nil:
		case []string:
			for _, s := range val {
				if _, err := fmt.Fprintf(w, "%s=%s\n", d.Name, s); err != nil {
					return err
				}
			}
		default:
			if _, err := fmt.Fprintf(w, "%s=%v\n", d.Name, val); err != nil {
				return err
			}
		}
	}
	return nil
}
