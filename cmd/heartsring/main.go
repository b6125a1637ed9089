// Copyright 2026 The ringhearts Authors
// This file is part of the ringhearts library.
//
// The ringhearts library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ringhearts library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ringhearts library. If not, see <http://www.gnu.org/licenses/>.

// Command heartsring runs one peer process of a four-peer ring-topology
// Hearts game.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/herijooj/ringhearts/log"
	"github.com/herijooj/ringhearts/natutil"
	"github.com/herijooj/ringhearts/peer"
	"github.com/herijooj/ringhearts/peerconfig"
	"github.com/herijooj/ringhearts/strategy"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file describing this peer",
	}
	startFlag = cli.BoolFlag{
		Name:  "start",
		Usage: "immediately deal and announce a new game (peer 0 only)",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "heartsring"
	app.Usage = "run one peer of a ring-topology networked Hearts game"
	app.Flags = []cli.Flag{configFlag, startFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	configPath := ctx.String(configFlag.Name)
	if configPath == "" {
		return cli.NewExitError("missing required --config flag", 1)
	}
	cfg, err := peerconfig.Load(configPath)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("loading config: %v", err), 1)
	}

	var strat strategy.Strategy = strategy.NewAutomatic()
	var interactive *strategy.Interactive
	if cfg.Interactive {
		line := liner.NewLiner()
		interactive = strategy.NewInteractive(line)
		strat = interactive
		defer interactive.Close()
	}

	p, err := peer.New(cfg, strat)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("starting peer: %v", err), 1)
	}
	defer p.Close()

	if cfg.EnableNAT {
		if _, portStr, splitErr := net.SplitHostPort(cfg.ListenAddr); splitErr == nil {
			if port, atoiErr := strconv.Atoi(portStr); atoiErr == nil {
				natutil.Map(port, "heartsring", log.New())
			}
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if ctx.Bool(startFlag.Name) {
		if err := p.StartGame(runCtx); err != nil {
			return cli.NewExitError(fmt.Sprintf("starting game: %v", err), 1)
		}
	}

	err = p.Run(runCtx)
	printScoreboard(p.Scores())
	if err == context.Canceled {
		return nil
	}
	return err
}

func printScoreboard(scores [4]int) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Peer 0", "Peer 1", "Peer 2", "Peer 3"})
	row := make([]string, 4)
	for i, s := range scores {
		row[i] = strconv.Itoa(s)
	}
	table.Append(row)
	table.Render()
}
