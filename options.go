// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package erc20

import "fmt"

type Option func(*Options)

type Options struct {
	Verbose bool
	LogCb   func(format string, args ...any)
}

// WithVerbose makes the codec trace every field it reads or writes.
func WithVerbose() Option {
	return func(opts *Options) {
		opts.Verbose = true
	}
}

// WithLogCb routes verbose output to logCb instead of stdout.
func WithLogCb(logCb func(format string, args ...any)) Option {
	return func(opts *Options) {
		opts.LogCb = logCb
	}
}

func applyOptions(opts []Option) Options {
	cfg := Options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (o *Options) logf(format string, args ...any) {
	if !o.Verbose {
		return
	}
	if o.LogCb != nil {
		o.LogCb(format, args...)
		return
	}
	fmt.Printf(format+"\n", args...)
}
