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

// Package peer wires the ring transport, the token arbiter, the per-peer
// phase machine, and (for peer 0 only) the coordinator into a single
// running process. It is the composition root; nothing outside
// cmd/heartsring imports it.
package peer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/herijooj/ringhearts/coordinator"
	"github.com/herijooj/ringhearts/log"
	"github.com/herijooj/ringhearts/peerconfig"
	"github.com/herijooj/ringhearts/phase"
	"github.com/herijooj/ringhearts/protocol"
	"github.com/herijooj/ringhearts/strategy"
	"github.com/herijooj/ringhearts/token"
)

// Peer is one running process: its ring socket, its token bearer state,
// its per-hand FSM, and (on peer 0) its coordinator.
type Peer struct {
	cfg         peerconfig.Config
	sessionID   uuid.UUID
	log         *log.Logger
	ring        *protocol.Ring
	arbiter     *token.Arbiter
	machine     *phase.Machine
	coordinator *coordinator.Coordinator
}

// New constructs a Peer without opening any socket.
func New(cfg peerconfig.Config, strat strategy.Strategy) (*Peer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sessionID := uuid.New()
	lg := log.New().New("peer", cfg.SelfID, "session", sessionID.String()[:8])
	lg.SetLevel(parseLevel(cfg.LogLevel))

	p := &Peer{cfg: cfg, sessionID: sessionID, log: lg}

	ring, err := protocol.NewRing(cfg.SelfID, cfg.ListenAddr, cfg.SuccessorAddr, p, lg)
	if err != nil {
		return nil, fmt.Errorf("peer: opening ring socket: %w", err)
	}
	p.ring = ring

	arb := token.New(cfg.SelfID, ring, lg)
	machine := phase.New(cfg.SelfID, ring, arb, strat, lg)
	p.arbiter = arb
	p.machine = machine

	if cfg.SelfID == 0 {
		p.coordinator = coordinator.New(machine, ring, arb, lg.New("role", "coordinator"))
	}
	return p, nil
}

// HandleLocal implements protocol.Handler by delegating to the phase
// machine; a background context is fine here since no caller of the ring
// loop carries a request-scoped one and no message has a per-message
// deadline.
func (p *Peer) HandleLocal(f protocol.Frame) {
	p.machine.HandleLocal(context.Background(), f)
}

// HandleLapComplete implements protocol.Handler. P0's own PASS_CARDS never
// takes the ObserveForwarded path (it only forwards other peers' frames),
// so its lap-complete is the one place the coordinator learns about its
// own pass.
func (p *Peer) HandleLapComplete(f protocol.Frame) {
	p.machine.HandleLapComplete(context.Background(), f)
	if p.coordinator != nil && f.Type == protocol.PassCards {
		p.coordinator.ObservePassCards(context.Background(), f.OriginID, f.Payload)
	}
}

// ObserveForwarded implements protocol.Observer: only the coordinator
// cares, and only about PASS_CARDS frames from other origins, whichever
// peer they are addressed to.
func (p *Peer) ObserveForwarded(f protocol.Frame) {
	if p.coordinator == nil || f.Type != protocol.PassCards {
		return
	}
	p.coordinator.ObservePassCards(context.Background(), f.OriginID, f.Payload)
}

// StartGame triggers the coordinator's deal; a no-op (with a warning) on
// any peer other than 0.
func (p *Peer) StartGame(ctx context.Context) error {
	if p.coordinator == nil {
		p.log.Warn("StartGame ignored: only peer 0 coordinates a new game")
		return nil
	}
	return p.coordinator.StartGame(ctx)
}

// Run drives the ring's receive loop until ctx is canceled, using an
// errgroup so a socket error surfaces the same way a cancellation does.
func (p *Peer) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.ring.Serve(ctx)
	})
	p.log.Info("peer started", "listen", p.ring.LocalAddr(), "successor", p.cfg.SuccessorAddr)
	return g.Wait()
}

// Close releases the ring's UDP socket.
func (p *Peer) Close() error {
	return p.ring.Close()
}

// Scores returns each player's cumulative score as the peer has observed
// it via HAND_SUMMARY broadcasts (and, for peer 0, its own authoritative
// computation).
func (p *Peer) Scores() [4]int {
	return p.machine.ScoresTotal
}

func parseLevel(s string) log.Level {
	switch s {
	case "trace":
		return log.LvlTrace
	case "debug":
		return log.LvlDebug
	case "warn":
		return log.LvlWarn
	case "error":
		return log.LvlError
	case "crit":
		return log.LvlCrit
	default:
		return log.LvlInfo
	}
}
