// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/shayne/yargs"
	"github.com/yeetrun/jockey/pkg/env"
	"github.com/yeetrun/jockey/pkg/jockey"
	"github.com/yeetrun/jockey/pkg/schemafile"
)

type schemaFlagsParsed struct {
	Schema string `flag:"schema" short:"s" help:"Schema file (.toml, .yaml, .yml, .json or .jsonc)"`
}

type usageFlagsParsed struct {
	Schema  string `flag:"schema" short:"s" help:"Schema file (.toml, .yaml, .yml, .json or .jsonc)"`
	Program string `flag:"program" help:"Program name shown in the usage line"`
}

type parseFlagsParsed struct {
	Schema    string `flag:"schema" short:"s" help:"Schema file (.toml, .yaml, .yml, .json or .jsonc)"`
	Format    string `flag:"format" default:"yaml" help:"Output format (yaml|json|toml|plain|env)"`
	EnvFile   string `flag:"env-file" help:"Also write the record to this environment file"`
	EnvPrefix string `flag:"env-prefix" help:"Prefix for environment variable names"`
}

type loadedSchema struct {
	path   string
	file   *schemafile.File
	schema *jockey.Schema[jockey.Values]
}

func loadSchema(path string) (*loadedSchema, error) {
	if path == "" {
		return nil, errors.New("missing --schema")
	}
	log.Printf("loading %s schema from %s", schemafile.DetectFormat(path), path)
	f, err := schemafile.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := f.Schema()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("schema version %s with %d fields", f.Version, len(f.Fields))
	return &loadedSchema{path: path, file: f, schema: s}, nil
}

func (l *loadedSchema) program() string {
	if l.file.Program != "" {
		return l.file.Program
	}
	return strings.TrimSuffix(filepath.Base(l.path), filepath.Ext(l.path))
}

func handleCheck(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[globalFlagsParsed, schemaFlagsParsed, struct{}](args, buildHelpConfig())
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	l, err := loadSchema(result.SubCommandFlags.Schema)
	if err != nil {
		return err
	}
	writeFieldTable(l.schema.Descriptors())
	return nil
}

func writeFieldTable(descs []jockey.Descriptor) {
	w := tabwriter.NewWriter(stdout, 0, 0, 3, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "NAME\tKIND\tBINDING\tHELP")
	for _, d := range descs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.Kind, d.Binding, d.Help)
	}
}

func handleUsage(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[globalFlagsParsed, usageFlagsParsed, struct{}](args, buildHelpConfig())
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	l, err := loadSchema(result.SubCommandFlags.Schema)
	if err != nil {
		return err
	}
	program := result.SubCommandFlags.Program
	if program == "" {
		program = l.program()
	}
	if l.file.Description != "" {
		fmt.Fprintf(stdout, "%s\n\n", l.file.Description)
	}
	fmt.Fprint(stdout, l.schema.Usage(program))
	return nil
}

func handleParse(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[globalFlagsParsed, parseFlagsParsed, struct{}](args, buildHelpConfig())
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	format, err := parseOutputFormat(result.SubCommandFlags.Format)
	if err != nil {
		return err
	}
	l, err := loadSchema(result.SubCommandFlags.Schema)
	if err != nil {
		return err
	}
	log.Printf("parsing %d arguments", len(passthroughArgs))
	values, err := l.schema.Parse(passthroughArgs)
	if err != nil {
		return err
	}
	flags := result.SubCommandFlags
	if flags.EnvFile != "" {
		if err := env.Write(flags.EnvFile, flags.EnvPrefix, l.schema.Descriptors(), values); err != nil {
			return fmt.Errorf("failed to write %s: %w", flags.EnvFile, err)
		}
		log.Printf("wrote %s", flags.EnvFile)
	}
	return render(stdout, format, l.schema.Descriptors(), values, flags.EnvPrefix)
}

func handleVersion(_ context.Context, _ []string) error {
	fmt.Fprintln(stdout, Version())
	return nil
}
