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

package cardgame

import (
	crand "crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// NewDeck returns the 52 cards of a standard deck, ♦♣♥♠ × A..K, in a fixed
// canonical order (shuffle separately).
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range []Suit{Diamonds, Clubs, Hearts, Spades} {
		for r := Rank(1); r <= 13; r++ {
			deck = append(deck, NewCard(r, s))
		}
	}
	return deck
}

// seedRNG draws a uniform seed from crypto/rand so two processes started at
// the same wall-clock instant don't shuffle identically. Only uniformity
// of the resulting shuffle is required, not cryptographic unpredictability.
func seedRNG() *mathrand.Rand {
	var seed int64
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return mathrand.New(mathrand.NewSource(seed))
}

// Shuffle returns a uniformly shuffled copy of deck.
func Shuffle(deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng := seedRNG()
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal splits a 52-card shuffled deck into four 13-card hands, dealt in
// round-robin order P0,P1,P2,P3 the way a physical deal works.
func Deal(deck []Card) [4]Hand {
	var hands [4]Hand
	for i, c := range deck {
		hands[i%4] = append(hands[i%4], c)
	}
	return hands
}

// HolderOfTwoOfClubs returns the index of the hand holding 2♣, or -1 if
// none does (should not happen for a full, correctly dealt deck).
func HolderOfTwoOfClubs(hands [4]Hand) int {
	for i, h := range hands {
		if h.Contains(TwoOfClubs) {
			return i
		}
	}
	return -1
}
