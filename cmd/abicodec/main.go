// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

// abicodec decodes and encodes fixed-width EVM ABI payloads from the command line.
//
//	abicodec decode --layout "owner:address,value:uint256" 0x000...
//	abicodec decode --call 0xa9059cbb000...
//	abicodec encode --method transfer 0x5aAe... 1000000
//	abicodec event --topic 0xddf2... --topic 0x000... --topic 0x000... 0x000...
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var (
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Log level 0-5 (0=silent, 5=trace)",
		Value: 3,
	}
	tableFlag = &cli.PathFlag{
		Name:  "table",
		Usage: "YAML method/event table (default: built-in ERC-20 table)",
	}
	layoutFlag = &cli.StringFlag{
		Name:  "layout",
		Usage: `Comma separated field layout, e.g. "to:address,value:uint256"`,
	}
	methodFlag = &cli.StringFlag{
		Name:  "method",
		Usage: "Method name from the table",
	}
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "abicodec",
		Usage:     "decode and encode fixed-width EVM ABI payloads",
		Writer:    out,
		Flags:     []cli.Flag{verbosityFlag, tableFlag},
		Before:    before,
		Commands:  []*cli.Command{decodeCommand, encodeCommand, eventCommand, methodsCommand},
		Reader:    os.Stdin,
		ErrWriter: os.Stderr,
	}
}

func before(ctx *cli.Context) error {
	setupLogging(ctx.Int(verbosityFlag.Name))
	return nil
}

func setupLogging(verbosity int) {
	var lvl slog.Level
	switch {
	case verbosity <= 0:
		lvl = log.LevelCrit
	case verbosity == 1:
		lvl = slog.LevelError
	case verbosity == 2:
		lvl = slog.LevelWarn
	case verbosity == 3:
		lvl = slog.LevelInfo
	case verbosity == 4:
		lvl = slog.LevelDebug
	default:
		lvl = log.LevelTrace
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true)))
}
