// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/jockey/pkg/jockey"
	"golang.org/x/term"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// passthroughArgs holds everything after the first "--" on the command
	// line. It is kept away from yargs so that -h or --help meant for the
	// parsed program does not trigger jockey's own help.
	passthroughArgs []string

	isTerminalFn = term.IsTerminal
)

type globalFlagsParsed struct {
	Verbose bool `flag:"verbose" short:"v" help:"Log schema loading"`
	NoColor bool `flag:"no-color" help:"Disable colored output"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// splitPassthrough splits args at the first "--".
func splitPassthrough(args []string) (cmd, rest []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func applyGlobalFlags(flags globalFlagsParsed) {
	log.SetFlags(0)
	log.SetPrefix("jockey: ")
	if flags.Verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	if flags.NoColor || !isTerminalFn(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	args, passthroughArgs = splitPassthrough(args)
	globalFlags, _, err := parseGlobalFlags(args)
	if err != nil {
		printCLIError(stderr, err)
		return 1
	}
	applyGlobalFlags(globalFlags)

	handlers := map[string]yargs.SubcommandHandler{
		"check":   handleCheck,
		"usage":   handleUsage,
		"parse":   handleParse,
		"version": handleVersion,
	}
	if err := yargs.RunSubcommands(ctx, args, buildHelpConfig(), globalFlagsParsed{}, handlers); err != nil {
		if errors.Is(err, yargs.ErrShown) {
			return 0
		}
		printCLIError(stderr, err)
		return exitCode(err)
	}
	return 0
}

// exitCode returns 2 for errors in the parsed arguments and 1 for
// everything else.
func exitCode(err error) int {
	switch {
	case errors.Is(err, jockey.ErrUnknownOption),
		errors.Is(err, jockey.ErrUnexpectedEnd),
		errors.Is(err, jockey.ErrMissingOption),
		errors.Is(err, jockey.ErrDuplicateOption):
		return 2
	}
	return 1
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprint(w, color.RedString("error: "))
	fmt.Fprintln(w, err)
}

func buildHelpConfig() yargs.HelpConfig {
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "jockey",
			Description: "Check schema files and parse arguments against them.",
			Examples: []string{
				"jockey check --schema cli.toml",
				"jockey usage --schema cli.yaml",
				"jockey parse --schema cli.toml --format json -- -d value --flag",
			},
		},
		SubCommands: map[string]yargs.SubCommandInfo{
			"check": {
				Name:        "check",
				Description: "Validate a schema file and list its fields",
				Usage:       "--schema FILE",
			},
			"usage": {
				Name:        "usage",
				Description: "Print the usage text of a schema file",
				Usage:       "--schema FILE [--program NAME]",
			},
			"parse": {
				Name:        "parse",
				Description: "Parse arguments after -- and print the record",
				Usage:       "--schema FILE [--format yaml|json|toml|plain|env] [--env-file FILE] -- ARGS...",
				Examples:    []string{"jockey parse --schema cli.toml -- input.txt -v --tag a --tag b"},
			},
			"version": {
				Name:        "version",
				Description: "Print the jockey version",
			},
		},
	}
}
