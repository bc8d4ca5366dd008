package main

import (
	"errors"

	"github.com/jessevdk/go-flags"
)

var errNothingToDo = errors.New("at least one --platform or --purge-states is required")

// Options are the flags of the one-shot ingestion command.
type Options struct {
	Config      string   `short:"c" long:"config" default:"config.yaml" description:"path to config.yaml"`
	Platforms   []string `short:"p" long:"platform" description:"platform to ingest; repeat for several"`
	Strict      bool     `long:"strict" description:"exit non-zero when any account fails"`
	PurgeStates bool     `long:"purge-states" description:"delete expired, never redeemed OAuth states"`
}

func parseOptions(args []string) (*Options, error) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	if len(opts.Platforms) == 0 && !opts.PurgeStates {
		return nil, errNothingToDo
	}
	return opts, nil
}
