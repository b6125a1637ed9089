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

// Package coordinator implements P0's extra duties: dealing, phase
// announcement, trick resolution and scoring, and game-over detection. It
// observes the same ring traffic every peer sees, plus PASS_CARDS frames
// addressed to other peers, so it can track the live pass transfers even
// though it only forwards most of them; see DESIGN.md for this
// interpretation.
package coordinator

import (
	"context"

	"github.com/herijooj/ringhearts/cardgame"
	"github.com/herijooj/ringhearts/log"
	"github.com/herijooj/ringhearts/phase"
	"github.com/herijooj/ringhearts/protocol"
	"github.com/herijooj/ringhearts/token"
)

// GameOverThreshold is the total score at which the hand loop ends.
const GameOverThreshold = 100

// Sender originates frames on the ring; satisfied by *protocol.Ring.
type Sender interface {
	Originate(t protocol.MessageType, destination byte, payload []byte) (protocol.Frame, error)
}

// Coordinator is composed into P0's Peer alongside its own phase.Machine
// (P0 is a player too). It never mutates cards/tricks by itself; it
// re-derives everything from the same rules engine every peer uses, so
// its view and each peer's local view should always agree.
type Coordinator struct {
	machine *phase.Machine // P0's own per-peer state, for self-delivery
	sender  Sender
	arbiter *token.Arbiter
	log     *log.Logger

	hands         [4]cardgame.Hand
	dir           cardgame.PassDirection
	twoClubHolder int

	passObserved [4]bool

	scoresTotal [4]int
}

// New wires a Coordinator to P0's own Machine/Arbiter/Ring.
func New(machine *phase.Machine, sender Sender, arbiter *token.Arbiter, lg *log.Logger) *Coordinator {
	c := &Coordinator{machine: machine, sender: sender, arbiter: arbiter, log: lg, dir: cardgame.PassLeft}
	machine.OnTrickComplete = c.onTrickComplete
	return c
}

// emit originates a frame and, when this coordinator's own peer (P0) is
// among the recipients, also applies it locally: a frame whose origin_id
// equals self_id never comes back around as a normal receive (the ring
// only raises lap-complete for it), so self-delivery has to be synchronous.
func (c *Coordinator) emit(ctx context.Context, t protocol.MessageType, dest byte, payload []byte) error {
	f, err := c.sender.Originate(t, dest, payload)
	if err != nil {
		return err
	}
	if dest == c.machine.SelfID || dest == protocol.Broadcast {
		c.machine.HandleLocal(ctx, f)
	}
	return nil
}

// StartGame kicks off a new game: shuffles, deals, and announces the pass
// phase. It is triggered out-of-band (an operator command), not by a
// received message.
func (c *Coordinator) StartGame(ctx context.Context) error {
	if err := c.emit(ctx, protocol.GameStart, protocol.Broadcast, nil); err != nil {
		return err
	}
	return c.dealAndAnnounce(ctx, cardgame.PassLeft)
}

func (c *Coordinator) dealAndAnnounce(ctx context.Context, dir cardgame.PassDirection) error {
	deck := cardgame.Shuffle(cardgame.NewDeck())
	c.hands = cardgame.Deal(deck)
	c.dir = dir
	c.twoClubHolder = cardgame.HolderOfTwoOfClubs(c.hands)
	c.passObserved = [4]bool{}

	for i := uint8(0); i < 4; i++ {
		payload := make([]byte, 13)
		for j, card := range c.hands[i] {
			payload[j] = byte(card)
		}
		if i == c.machine.SelfID {
			c.machine.ResetForHand(c.hands[i].Clone(), dir)
			continue
		}
		if _, err := c.sender.Originate(protocol.DealHand, i, payload); err != nil {
			return err
		}
	}
	c.machine.ResetForHand(c.hands[c.machine.SelfID].Clone(), dir)

	fasePayload := []byte{0, byte(dir)}
	if err := c.emit(ctx, protocol.StartPhase, protocol.Broadcast, fasePayload); err != nil {
		return err
	}

	c.arbiter.SelfAssign()
	c.log.Info("hand dealt", "direction", dir, "two_of_clubs_holder", c.twoClubHolder)

	if dir == cardgame.PassNone {
		return c.startPlayPhase(ctx)
	}
	// P0 is first in the pass-phase token sweep; it already holds the
	// token from SelfAssign above, so its own machine can pass right away.
	c.machine.TryPlayOrPass(ctx)
	return nil
}

// ObservePassCards is called by the ring for every PASS_CARDS frame that
// passes through P0's hop, whether or not P0 is the destination, plus via
// HandleLapComplete for P0's own PASS_CARDS. It tracks the live 2♣ holder
// across the pass and counts distinct origins toward the barrier.
func (c *Coordinator) ObservePassCards(ctx context.Context, originID byte, payload []byte) {
	if len(payload) != 3 || int(originID) >= 4 {
		return
	}
	for _, b := range payload {
		card := cardgame.Card(b)
		if card == cardgame.TwoOfClubs {
			dest := cardgame.PassTarget(originID, c.dir)
			c.twoClubHolder = int(dest)
		}
	}
	if !c.passObserved[originID] {
		c.passObserved[originID] = true
		c.log.Debug("observed pass", "origin", originID, "holder_now", c.twoClubHolder)
	}
	c.maybeReleaseBarrier(ctx)
}

func (c *Coordinator) maybeReleaseBarrier(ctx context.Context) {
	for _, seen := range c.passObserved {
		if !seen {
			return
		}
	}
	if err := c.emit(ctx, protocol.StartPhase, protocol.Broadcast, []byte{1}); err != nil {
		c.log.Error("failed to announce play phase", "err", err)
		return
	}
	if err := c.startPlayPhase(ctx); err != nil {
		c.log.Error("failed to start play phase", "err", err)
	}
}

func (c *Coordinator) startPlayPhase(ctx context.Context) error {
	c.arbiter.SelfAssign()
	if c.twoClubHolder == int(c.machine.SelfID) {
		c.machine.TryPlayOrPass(ctx)
		return nil
	}
	return c.arbiter.ReleaseTo(ctx, uint8(c.twoClubHolder))
}

// onTrickComplete is wired as machine.OnTrickComplete: it runs the rules
// engine once, broadcasts TRICK_SUMMARY, and grants the token to whoever
// should lead the next trick; after the thirteenth trick it finishes the
// hand instead.
func (c *Coordinator) onTrickComplete(trick []cardgame.TrickCard) {
	ctx := context.Background()
	winner := cardgame.TrickWinner(trick)
	points := cardgame.TrickPoints(trick)

	payload := make([]byte, 10)
	payload[0] = winner
	for i, tc := range trick {
		payload[1+2*i] = tc.PlayerID
		payload[2+2*i] = byte(tc.Card)
	}
	payload[9] = byte(points)
	if err := c.emit(ctx, protocol.TrickSummary, protocol.Broadcast, payload); err != nil {
		c.log.Error("failed to broadcast trick summary", "err", err)
		return
	}

	if c.machine.TricksPlayed() == 13 {
		c.finishHand(ctx)
		return
	}

	c.arbiter.SelfAssign()
	if uint8(winner) == c.machine.SelfID {
		c.machine.TryPlayOrPass(ctx)
		return
	}
	if err := c.arbiter.ReleaseTo(ctx, winner); err != nil {
		c.log.Error("failed to release token to trick winner", "err", err)
	}
}

func (c *Coordinator) finishHand(ctx context.Context) {
	scoresHand := c.machine.ScoresHand // P0's own view; coordinator trusts it since it computed every TRICK_SUMMARY itself
	adjusted, shooter := cardgame.HandPoints(scoresHand)
	for i := range c.scoresTotal {
		c.scoresTotal[i] += adjusted[i]
	}

	payload := make([]byte, 9)
	for i := 0; i < 4; i++ {
		payload[i] = byte(adjusted[i])
		payload[4+i] = byte(c.scoresTotal[i])
	}
	if shooter < 0 {
		payload[8] = protocol.NoneShooter
	} else {
		payload[8] = byte(shooter)
	}
	if err := c.emit(ctx, protocol.HandSummary, protocol.Broadcast, payload); err != nil {
		c.log.Error("failed to broadcast hand summary", "err", err)
		return
	}

	if anyAtOrAbove(c.scoresTotal, GameOverThreshold) {
		c.announceGameOver(ctx)
		return
	}
	c.dealAndAnnounce(ctx, cardgame.NextPassDirection(c.dir))
}

func anyAtOrAbove(scores [4]int, threshold int) bool {
	for _, s := range scores {
		if s >= threshold {
			return true
		}
	}
	return false
}

func (c *Coordinator) announceGameOver(ctx context.Context) {
	winner := 0
	for i := 1; i < 4; i++ {
		if c.scoresTotal[i] < c.scoresTotal[winner] {
			winner = i
		}
	}
	payload := make([]byte, 5)
	payload[0] = byte(winner)
	for i := 0; i < 4; i++ {
		payload[1+i] = byte(c.scoresTotal[i])
	}
	if err := c.emit(ctx, protocol.GameOver, protocol.Broadcast, payload); err != nil {
		c.log.Error("failed to broadcast game over", "err", err)
	}
	c.log.Info("game over", "winner", winner, "scores", c.scoresTotal)
}
