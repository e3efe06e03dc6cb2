// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/nazgull08/erc20"
)

var errUsage = errors.New("usage error")

var (
	decodeCommand = &cli.Command{
		Name:      "decode",
		Usage:     "Decode a hex payload",
		ArgsUsage: "<hexdata>",
		Description: `Decodes the payload with --layout, as the return data of --method,
or, with --call, as call data whose selector is looked up in the table.`,
		Flags: []cli.Flag{
			layoutFlag,
			methodFlag,
			&cli.BoolFlag{Name: "call", Usage: "Treat the payload as call data (selector + arguments)"},
			&cli.BoolFlag{Name: "strict", Usage: "Fail when bytes are left over after the last field"},
		},
		Action: decodeAction,
	}
	encodeCommand = &cli.Command{
		Name:      "encode",
		Usage:     "Encode values into a hex payload",
		ArgsUsage: "<value>...",
		Description: `Encodes the values with --layout, or as call data for --method.
Addresses and hashes are given in hex, integers in decimal or 0x hex.`,
		Flags:  []cli.Flag{layoutFlag, methodFlag},
		Action: encodeAction,
	}
	eventCommand = &cli.Command{
		Name:      "event",
		Usage:     "Decode a log by its topics and data",
		ArgsUsage: "<hexdata>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "topic", Usage: "Log topic, repeat in order"},
		},
		Action: eventAction,
	}
	methodsCommand = &cli.Command{
		Name:   "methods",
		Usage:  "List the methods and events of the table",
		Action: methodsAction,
	}
)

func loadTable(ctx *cli.Context) (*erc20.LayoutSet, error) {
	path := ctx.Path(tableFlag.Name)
	if path == "" {
		return erc20.DefaultLayouts(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := erc20.LoadLayouts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("Loaded layout table", "path", path, "methods", len(set.Methods), "events", len(set.Events))
	return set, nil
}

func codecOptions() []erc20.Option {
	return []erc20.Option{
		erc20.WithVerbose(),
		erc20.WithLogCb(func(format string, args ...any) {
			log.Trace(fmt.Sprintf(format, args...))
		}),
	}
}

func decodeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("%w: expected one hex argument", errUsage)
	}
	data, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	var (
		layout erc20.Layout
		dec    *erc20.Decoder
	)
	switch {
	case ctx.Bool("call"):
		table, err := loadTable(ctx)
		if err != nil {
			return err
		}
		sel, argDec, err := erc20.SplitCallData(data, codecOptions()...)
		if err != nil {
			return err
		}
		method, err := table.MethodBySelector(sel)
		if err != nil {
			return err
		}
		log.Info("Decoding call", "method", method.Name, "selector", sel)
		layout, dec = method.Inputs, argDec
	case ctx.IsSet(methodFlag.Name):
		table, err := loadTable(ctx)
		if err != nil {
			return err
		}
		method, err := table.Method(ctx.String(methodFlag.Name))
		if err != nil {
			return err
		}
		layout, dec = method.Outputs, erc20.NewDecoder(data, codecOptions()...)
	case ctx.IsSet(layoutFlag.Name):
		layout, err = erc20.ParseLayout(ctx.String(layoutFlag.Name))
		if err != nil {
			return err
		}
		dec = erc20.NewDecoder(data, codecOptions()...)
	default:
		return fmt.Errorf("%w: one of --layout, --method or --call is required", errUsage)
	}

	values, err := layout.Decode(dec)
	if err != nil {
		return err
	}
	if rest := dec.Remaining(); rest > 0 {
		if ctx.Bool("strict") {
			return fmt.Errorf("%d trailing bytes after layout %q", rest, layout)
		}
		log.Warn("Ignoring trailing bytes", "count", rest)
	}
	printValues(ctx, layout, values)
	return nil
}

func encodeAction(ctx *cli.Context) error {
	args := make([]any, ctx.NArg())
	for i, arg := range ctx.Args().Slice() {
		args[i] = arg
	}

	var data []byte
	switch {
	case ctx.IsSet(methodFlag.Name):
		table, err := loadTable(ctx)
		if err != nil {
			return err
		}
		method, err := table.Method(ctx.String(methodFlag.Name))
		if err != nil {
			return err
		}
		data, err = method.EncodeCall(args...)
		if err != nil {
			return err
		}
	case ctx.IsSet(layoutFlag.Name):
		layout, err := erc20.ParseLayout(ctx.String(layoutFlag.Name))
		if err != nil {
			return err
		}
		enc := erc20.NewEncoder(codecOptions()...)
		if err := layout.Encode(enc, args...); err != nil {
			return err
		}
		data = enc.Bytes()
	default:
		return fmt.Errorf("%w: one of --layout or --method is required", errUsage)
	}

	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(data))
	return nil
}

func eventAction(ctx *cli.Context) error {
	if ctx.NArg() > 1 {
		return fmt.Errorf("%w: expected at most one hex argument", errUsage)
	}
	var data []byte
	if ctx.NArg() == 1 {
		var err error
		if data, err = hexutil.Decode(ctx.Args().First()); err != nil {
			return fmt.Errorf("invalid log data: %w", err)
		}
	}

	topicStrs := ctx.StringSlice("topic")
	if len(topicStrs) == 0 {
		return fmt.Errorf("%w: at least one --topic is required", errUsage)
	}
	topics := make([]common.Hash, len(topicStrs))
	for i, s := range topicStrs {
		raw, err := hexutil.Decode(s)
		if err != nil || len(raw) != common.HashLength {
			return fmt.Errorf("invalid topic %q", s)
		}
		topics[i] = common.BytesToHash(raw)
	}

	table, err := loadTable(ctx)
	if err != nil {
		return err
	}
	event, err := table.EventByTopic(topics[0])
	if err != nil {
		return err
	}
	values, err := event.DecodeLog(topics, data, codecOptions()...)
	if err != nil {
		return err
	}

	layout := append(append(erc20.Layout{}, event.Indexed...), event.Data...)
	fmt.Fprintln(ctx.App.Writer, event.Name)
	printValues(ctx, layout, values)
	return nil
}

func methodsAction(ctx *cli.Context) error {
	table, err := loadTable(ctx)
	if err != nil {
		return err
	}
	for _, name := range table.MethodNames() {
		method := table.Methods[name]
		fmt.Fprintf(ctx.App.Writer, "%s %s(%s) -> (%s)\n", method.Selector, name, method.Inputs, method.Outputs)
	}
	eventNames := make([]string, 0, len(table.Events))
	for name := range table.Events {
		eventNames = append(eventNames, name)
	}
	sort.Strings(eventNames)
	for _, name := range eventNames {
		event := table.Events[name]
		fmt.Fprintf(ctx.App.Writer, "%s event %s(%s; %s)\n", event.Topic.Hex()[:10], name, event.Indexed, event.Data)
	}
	return nil
}

// printValues writes one "name: value" line per decoded value.
func printValues(ctx *cli.Context, layout erc20.Layout, values []any) {
	idx := 0
	for _, f := range layout {
		if f.Kind == erc20.FieldSkip {
			continue
		}
		name := f.Name
		if name == "" {
			name = strconv.Itoa(idx)
		}
		fmt.Fprintf(ctx.App.Writer, "%s: %s\n", name, formatValue(values[idx]))
		idx++
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case common.Address:
		return val.Hex()
	case common.Hash:
		return val.Hex()
	case *uint256.Int:
		return val.Dec()
	case []byte:
		return hexutil.Encode(val)
	}
	return fmt.Sprint(v)
}
