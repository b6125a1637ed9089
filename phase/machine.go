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

// Package phase implements the per-peer finite state machine: deal -> pass
// -> play (13 tricks) -> hand summary -> next hand or game over, including
// the pass-phase barrier.
package phase

import (
	"context"
	"fmt"

	"github.com/herijooj/ringhearts/cardgame"
	"github.com/herijooj/ringhearts/log"
	"github.com/herijooj/ringhearts/protocol"
	"github.com/herijooj/ringhearts/strategy"
	"github.com/herijooj/ringhearts/token"
)

// State names one node of the per-peer FSM.
type State int

const (
	Idle State = iota
	Dealing
	Passing
	PassingBarrier
	Playing
	HandSummary
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dealing:
		return "dealing"
	case Passing:
		return "passing"
	case PassingBarrier:
		return "passing_barrier"
	case Playing:
		return "playing"
	case HandSummary:
		return "hand_summary"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Sender originates frames on the ring; satisfied by *protocol.Ring.
type Sender interface {
	Originate(t protocol.MessageType, destination byte, payload []byte) (protocol.Frame, error)
}

// Machine is the peer state object: one per process, mutated only from
// the ring's receive loop or immediately after a strategy callback
// returns.
type Machine struct {
	SelfID uint8

	Hand               cardgame.Hand
	PassDirection      cardgame.PassDirection
	State              State
	HeartsBroken       bool
	CurrentTrick       []cardgame.TrickCard
	leadSuitSet        bool
	LeadSuit           cardgame.Suit
	ScoresHand         [4]int
	ScoresTotal        [4]int
	IncomingPassBuffer []cardgame.Card

	firstTrickOfHand bool
	tricksPlayed     int

	passSent           bool
	passSentLapSeen    bool
	passReceived       bool

	sender   Sender
	arbiter  *token.Arbiter
	strategy strategy.Strategy
	log      *log.Logger

	// OnTrickComplete fires once a trick reaches four plays, carrying the
	// trick in play order. Only P0's wiring sets this; an ordinary peer
	// leaves it nil. This is how the coordinator's extra duties are driven
	// off the same generic per-peer play bookkeeping every peer already
	// performs.
	OnTrickComplete func(trick []cardgame.TrickCard)
}

// New creates a peer's state machine. It starts Idle and waits for
// GAME_START/DEAL_HAND.
func New(selfID uint8, sender Sender, arbiter *token.Arbiter, strat strategy.Strategy, lg *log.Logger) *Machine {
	return &Machine{
		SelfID:   selfID,
		State:    Idle,
		sender:   sender,
		arbiter:  arbiter,
		strategy: strat,
		log:      lg,
	}
}

// ResetForHand clears per-hand state: hand, hearts_broken, current_trick,
// scores_hand. scores_total survives across hands.
func (m *Machine) ResetForHand(hand cardgame.Hand, dir cardgame.PassDirection) {
	m.Hand = hand
	m.PassDirection = dir
	m.HeartsBroken = false
	m.CurrentTrick = nil
	m.leadSuitSet = false
	m.ScoresHand = [4]int{}
	m.IncomingPassBuffer = nil
	m.firstTrickOfHand = true
	m.tricksPlayed = 0
	m.passSent = false
	m.passSentLapSeen = false
	m.passReceived = false
	m.State = Dealing
}

// HandleLocal dispatches a locally-addressed (or broadcast) frame to the
// right transition.
func (m *Machine) HandleLocal(ctx context.Context, f protocol.Frame) {
	switch f.Type {
	case protocol.TokenPass:
		m.handleTokenPass(ctx, f)
	case protocol.GameStart:
		// handled by the coordinator directly calling ResetForHand/deal;
		// an ordinary peer's interesting reaction is DEAL_HAND, below.
	case protocol.DealHand:
		m.handleDealHand(f)
	case protocol.StartPhase:
		m.handleStartPhase(ctx, f)
	case protocol.PassCards:
		m.handlePassCardsReceived(ctx, f)
	case protocol.PlayCard:
		m.handlePlayCard(f)
	case protocol.TrickSummary:
		m.handleTrickSummary(f)
	case protocol.HandSummary:
		m.handleHandSummary(f)
	case protocol.GameOver:
		m.State = GameOver
	default:
		m.log.Warn("ignoring unknown message type", "type", f.Type)
	}
}

// HandleLapComplete reacts to this peer's own frames returning home.
func (m *Machine) HandleLapComplete(ctx context.Context, f protocol.Frame) {
	switch f.Type {
	case protocol.PassCards:
		m.passSentLapSeen = true
		m.maybeCompleteBarrier(ctx)
	case protocol.PlayCard:
		// informational only; the play was already recorded locally
		// when it was originated (appendPlay is idempotent).
	}
}

func (m *Machine) handleTokenPass(ctx context.Context, f protocol.Frame) {
	if len(f.Payload) < 1 {
		m.log.Warn("malformed TOKEN_PASS payload")
		return
	}
	if err := m.arbiter.Accept(f.Payload[0]); err != nil {
		m.log.Warn("rejecting TOKEN_PASS", "err", err)
		return
	}
	// Acquiring the token is what lets a peer that was already waiting
	// in Passing/Playing proceed; the state itself didn't change.
	switch m.State {
	case Passing:
		m.tryOriginatePass(ctx)
	case Playing:
		m.TryPlay(ctx)
	}
}

func (m *Machine) handleDealHand(f protocol.Frame) {
	if len(f.Payload) != 13 {
		m.log.Warn("malformed DEAL_HAND payload", "len", len(f.Payload))
		return
	}
	hand := make(cardgame.Hand, 13)
	for i, b := range f.Payload {
		hand[i] = cardgame.Card(b)
	}
	m.ResetForHand(hand, m.PassDirection)
}

func (m *Machine) handleStartPhase(ctx context.Context, f protocol.Frame) {
	if len(f.Payload) < 1 {
		m.log.Warn("malformed START_PHASE payload")
		return
	}
	fase := f.Payload[0]
	switch fase {
	case 0:
		if len(f.Payload) < 2 {
			m.log.Warn("malformed START_PHASE(pass) payload")
			return
		}
		m.PassDirection = cardgame.PassDirection(f.Payload[1])
		m.State = Passing
		if m.PassDirection == cardgame.PassNone {
			m.State = PassingBarrier
			return
		}
		m.tryOriginatePass(ctx)
	case 1:
		m.State = Playing
		if m.arbiter.Hold() {
			m.TryPlay(ctx)
		}
	default:
		m.log.Warn("unknown START_PHASE fase", "fase", fase)
	}
}

// tryOriginatePass emits PASS_CARDS once this peer holds the token, during
// the passing transition.
func (m *Machine) tryOriginatePass(ctx context.Context) {
	if m.State != Passing || m.passSent {
		return
	}
	if !m.arbiter.Hold() {
		return
	}
	chosen := m.strategy.ChoosePass(m.Hand, m.PassDirection)
	legalChoice := sanitizePass(m.Hand, chosen)
	for _, c := range legalChoice {
		m.Hand = m.Hand.Remove(c)
	}
	target := cardgame.PassTarget(m.SelfID, m.PassDirection)
	payload := make([]byte, 3)
	for i, c := range legalChoice {
		payload[i] = byte(c)
	}
	if _, err := m.sender.Originate(protocol.PassCards, target, payload); err != nil {
		m.log.Error("failed to originate PASS_CARDS", "err", err)
		return
	}
	m.passSent = true
	// The pass-phase token sweep is P0->P1->P2->P3 and stops there; P3
	// does not release further, the coordinator drives the barrier
	// completion and the subsequent play-phase grant instead.
	if m.SelfID != 3 {
		if err := m.arbiter.ReleaseTo(ctx, m.SelfID+1); err != nil {
			m.log.Error("failed to release token after pass", "err", err)
		}
	}
	m.maybeCompleteBarrier(ctx)
}

// TryPlayOrPass is the coordinator's entry point for nudging its own
// Machine forward after a self-assignment: it has no wire round-trip to
// wait on, so it must dispatch on whatever state the machine is already in.
func (m *Machine) TryPlayOrPass(ctx context.Context) {
	switch m.State {
	case Passing:
		m.tryOriginatePass(ctx)
	case Playing:
		m.TryPlay(ctx)
	}
}

// TricksPlayed reports how many tricks have completed in the current hand.
func (m *Machine) TricksPlayed() int { return m.tricksPlayed }

// sanitizePass enforces legality against an untrusted strategy: the chosen
// pass must be a subset of hand, falling back deterministically (lexically
// smallest remaining cards) on any violation.
func sanitizePass(hand cardgame.Hand, chosen [3]cardgame.Card) [3]cardgame.Card {
	valid := true
	seen := map[cardgame.Card]bool{}
	for _, c := range chosen {
		if !hand.Contains(c) || seen[c] {
			valid = false
			break
		}
		seen[c] = true
	}
	if valid {
		return chosen
	}
	sorted := hand.Clone()
	sortCards(sorted)
	var out [3]cardgame.Card
	copy(out[:], sorted[:3])
	return out
}

func sortCards(cards cardgame.Hand) {
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0 && cards[j] < cards[j-1]; j-- {
			cards[j], cards[j-1] = cards[j-1], cards[j]
		}
	}
}

func (m *Machine) handlePassCardsReceived(ctx context.Context, f protocol.Frame) {
	if len(f.Payload) != 3 {
		m.log.Warn("malformed PASS_CARDS payload", "len", len(f.Payload))
		return
	}
	m.IncomingPassBuffer = make([]cardgame.Card, 3)
	for i, b := range f.Payload {
		m.IncomingPassBuffer[i] = cardgame.Card(b)
	}
	m.passReceived = true
	m.maybeCompleteBarrier(ctx)
}

// maybeCompleteBarrier implements the passing barrier: complete once this
// peer has both received its inbound pass and observed (if it is an
// originator) its own PASS_CARDS completing a lap.
func (m *Machine) maybeCompleteBarrier(ctx context.Context) {
	if m.State != Passing && m.State != PassingBarrier {
		return
	}
	needLap := m.PassDirection != cardgame.PassNone
	if !m.passReceived {
		return
	}
	if needLap && !m.passSentLapSeen {
		return
	}
	m.Hand = append(m.Hand, m.IncomingPassBuffer...)
	m.IncomingPassBuffer = nil
	m.State = PassingBarrier
}

func (m *Machine) handlePlayCard(f protocol.Frame) {
	if len(f.Payload) != 1 {
		m.log.Warn("malformed PLAY_CARD payload")
		return
	}
	m.appendPlay(f.OriginID, cardgame.Card(f.Payload[0]))
}

// appendPlay is idempotent per player: a second card from a player already
// in the trick is ignored. A peer records its own play locally when it
// originates it; its own PLAY_CARD returning as a lap-complete is not
// appended again.
func (m *Machine) appendPlay(playerID uint8, card cardgame.Card) {
	for _, tc := range m.CurrentTrick {
		if tc.PlayerID == playerID {
			return
		}
	}
	if len(m.CurrentTrick) == 0 {
		m.LeadSuit = card.Suit()
		m.leadSuitSet = true
	}
	if card.IsHeart() {
		m.HeartsBroken = true
	}
	m.CurrentTrick = append(m.CurrentTrick, cardgame.TrickCard{PlayerID: playerID, Card: card})
	if len(m.CurrentTrick) == 4 && m.OnTrickComplete != nil {
		trick := make([]cardgame.TrickCard, 4)
		copy(trick, m.CurrentTrick)
		m.OnTrickComplete(trick)
	}
}

// TryPlay emits PLAY_CARD once this peer holds the token during Playing.
func (m *Machine) TryPlay(ctx context.Context) {
	if m.State != Playing {
		return
	}
	if !m.arbiter.Hold() {
		return
	}
	legal := cardgame.LegalPlays(m.Hand, m.CurrentTrick, m.HeartsBroken, m.firstTrickOfHand)
	chosen := m.strategy.ChoosePlay(m.Hand, legal, m.CurrentTrick, m.HeartsBroken)
	card := sanitizePlay(legal, chosen)
	m.Hand = m.Hand.Remove(card)
	if _, err := m.sender.Originate(protocol.PlayCard, protocol.Broadcast, []byte{byte(card)}); err != nil {
		m.log.Error("failed to originate PLAY_CARD", "err", err)
		return
	}
	// Recorded only once the PLAY_CARD is on the wire: on P0 the fourth
	// play fires OnTrickComplete, whose TRICK_SUMMARY must follow it.
	lastOfTrick := len(m.CurrentTrick) == 3
	m.appendPlay(m.SelfID, card)
	if !lastOfTrick {
		if err := m.arbiter.ReleaseTo(ctx, (m.SelfID+1)%4); err != nil {
			m.log.Error("failed to release token after play", "err", err)
		}
	}
	// On the fourth play of the trick the coordinator (P0) grants the
	// token afresh to the trick winner; the playing peer does not
	// release it itself.
}

// sanitizePlay enforces legality against an untrusted strategy's chosen
// play.
func sanitizePlay(legal []cardgame.Card, chosen cardgame.Card) cardgame.Card {
	for _, c := range legal {
		if c == chosen {
			return chosen
		}
	}
	sorted := append([]cardgame.Card{}, legal...)
	sortCards(sorted)
	if len(sorted) == 0 {
		return chosen
	}
	return sorted[0]
}

func (m *Machine) handleTrickSummary(f protocol.Frame) {
	if len(f.Payload) != 10 {
		m.log.Warn("malformed TRICK_SUMMARY payload", "len", len(f.Payload))
		return
	}
	winner := f.Payload[0]
	var coordinatorTrick []cardgame.TrickCard
	for i := 0; i < 4; i++ {
		coordinatorTrick = append(coordinatorTrick, cardgame.TrickCard{
			PlayerID: f.Payload[1+2*i],
			Card:     cardgame.Card(f.Payload[2+2*i]),
		})
	}
	points := int(f.Payload[9])

	if len(m.CurrentTrick) == 4 {
		localWinner := cardgame.TrickWinner(m.CurrentTrick)
		if localWinner != winner {
			m.log.Warn("trick summary mismatch", "local", localWinner, "coordinator", winner)
		}
		for i, tc := range coordinatorTrick {
			if m.CurrentTrick[i] != tc {
				m.log.Warn("trick summary card mismatch", "index", i, "local", m.CurrentTrick[i], "coordinator", tc)
			}
		}
	} else {
		m.log.Warn("received TRICK_SUMMARY before observing all four plays locally")
	}

	m.CurrentTrick = nil
	m.leadSuitSet = false
	m.firstTrickOfHand = false
	m.tricksPlayed++
	m.ScoresHand[winner] += points
}

func (m *Machine) handleHandSummary(f protocol.Frame) {
	if len(f.Payload) != 9 {
		m.log.Warn("malformed HAND_SUMMARY payload", "len", len(f.Payload))
		return
	}
	for i := 0; i < 4; i++ {
		handScore := int(f.Payload[i])
		if m.ScoresHand[i] != handScore {
			m.log.Warn("hand score divergence", "player", i, "local", m.ScoresHand[i], "coordinator", handScore)
		}
		m.ScoresTotal[i] = int(f.Payload[4+i])
	}
	m.State = HandSummary
}

// String implements fmt.Stringer for debug logging.
func (m *Machine) String() string {
	return fmt.Sprintf("peer=%d state=%s hand=%d tricks=%d", m.SelfID, m.State, len(m.Hand), m.tricksPlayed)
}
