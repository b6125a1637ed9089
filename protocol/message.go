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

// Package protocol implements the ring wire format (codec.go) and the
// hop-by-hop UDP ring transport (ring.go).
package protocol

// MessageType identifies the payload shape of a frame.
type MessageType byte

const (
	TokenPass    MessageType = 0x01
	GameStart    MessageType = 0x02
	DealHand     MessageType = 0x03
	StartPhase   MessageType = 0x04
	PassCards    MessageType = 0x05
	PlayCard     MessageType = 0x06
	TrickSummary MessageType = 0x07
	HandSummary  MessageType = 0x08
	GameOver     MessageType = 0x09
)

func (t MessageType) String() string {
	switch t {
	case TokenPass:
		return "TOKEN_PASS"
	case GameStart:
		return "GAME_START"
	case DealHand:
		return "DEAL_HAND"
	case StartPhase:
		return "START_PHASE"
	case PassCards:
		return "PASS_CARDS"
	case PlayCard:
		return "PLAY_CARD"
	case TrickSummary:
		return "TRICK_SUMMARY"
	case HandSummary:
		return "HAND_SUMMARY"
	case GameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Broadcast is the destination_id sentinel meaning "every peer".
const Broadcast byte = 0xFF

// NoneShooter is the shoot_moon payload sentinel meaning "no shooter".
const NoneShooter byte = 0xFF
