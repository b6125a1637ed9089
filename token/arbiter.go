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

// Package token implements the token-passing mutual-exclusion discipline:
// exactly one peer may originate action messages at a time, and that
// authorization moves around the ring via TOKEN_PASS.
package token

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/herijooj/ringhearts/log"
	"github.com/herijooj/ringhearts/protocol"
)

// Sender originates a TOKEN_PASS frame; satisfied by *protocol.Ring.
type Sender interface {
	Originate(msgType protocol.MessageType, destination byte, payload []byte) (protocol.Frame, error)
}

// Arbiter tracks which peer currently bears the token and is the single
// gate that every would-be originator of an action message must pass.
type Arbiter struct {
	selfID  uint8
	bearer  int8 // -1 means "not self and not yet observed"
	sender  Sender
	limiter *rate.Limiter
	log     *log.Logger
}

// New creates an Arbiter for selfID. The limiter caps token releases to
// one at a time with a small burst, pacing token passes with a real rate
// limiter instead of a bare time.Sleep.
func New(selfID uint8, sender Sender, lg *log.Logger) *Arbiter {
	return &Arbiter{
		selfID:  selfID,
		bearer:  -1,
		sender:  sender,
		limiter: rate.NewLimiter(rate.Every(20*time.Millisecond), 1),
		log:     lg,
	}
}

// SelfAssign makes this peer the bearer without emitting a TOKEN_PASS
// frame. P0 begins the pass-phase token by self-assignment, and also
// self-assigns after dealing, before releasing to the 2♣ holder.
func (a *Arbiter) SelfAssign() {
	a.bearer = int8(a.selfID)
	a.log.Debug("token self-assigned", "peer", a.selfID)
}

// Accept records that a TOKEN_PASS addressed to this peer has been locally
// processed; only valid when the payload id equals selfID.
func (a *Arbiter) Accept(newBearer uint8) error {
	if newBearer != a.selfID {
		return fmt.Errorf("token: TOKEN_PASS payload %d does not name self %d", newBearer, a.selfID)
	}
	a.bearer = int8(a.selfID)
	a.log.Debug("token accepted", "peer", a.selfID)
	return nil
}

// Hold reports whether this peer currently bears the token.
func (a *Arbiter) Hold() bool {
	return a.bearer == int8(a.selfID)
}

// ReleaseTo emits TOKEN_PASS(peerID) and marks the token as no longer held
// locally. Calling this while not holding the token is a programming
// error.
func (a *Arbiter) ReleaseTo(ctx context.Context, peerID uint8) error {
	if !a.Hold() {
		return fmt.Errorf("token: ReleaseTo called by peer %d without holding the token", a.selfID)
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}
	a.bearer = -1
	a.log.Debug("token released", "from", a.selfID, "to", peerID)
	_, err := a.sender.Originate(protocol.TokenPass, peerID, []byte{peerID})
	return err
}
