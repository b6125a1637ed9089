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

package strategy

import "github.com/herijooj/ringhearts/cardgame"

// Automatic is a deterministic, I/O-free Strategy: it offloads the
// riskiest penalty cards in the pass and, on play, ducks under the
// current trick whenever possible. It never returns an illegal card, so
// the caller-side sanitization is always a no-op against it, but callers
// must not rely on that.
type Automatic struct{}

// NewAutomatic returns the zero-configuration deterministic Strategy.
func NewAutomatic() Automatic { return Automatic{} }

// ChoosePass offloads the three most dangerous cards: Q♠ first, then
// hearts highest-rank-first, then the highest remaining spades (the only
// other suit that can feed Q♠ to an opponent), then highest-rank filler.
func (Automatic) ChoosePass(hand cardgame.Hand, _ cardgame.PassDirection) [3]cardgame.Card {
	ranked := rankByDanger(hand)
	var out [3]cardgame.Card
	copy(out[:], ranked)
	return out
}

// ChoosePlay leads/follows with the lowest legal card that cannot win the
// trick, to stay out of the lead; if every legal card would win, it plays
// the highest one to get the inevitable points over with. Leading with no
// trick in progress simply plays the lowest legal card.
func (Automatic) ChoosePlay(_ cardgame.Hand, legal []cardgame.Card, trick []cardgame.TrickCard, _ bool) cardgame.Card {
	if len(legal) == 0 {
		return 0
	}
	sorted := append([]cardgame.Card{}, legal...)
	insertionSort(sorted)

	if len(trick) == 0 {
		return sorted[0]
	}

	leadSuit := trick[0].Card.Suit()
	best := currentWinner(trick, leadSuit)
	for _, c := range sorted {
		if c.Suit() != leadSuit || !outranks(c, best) {
			return c
		}
	}
	return sorted[len(sorted)-1]
}

func currentWinner(trick []cardgame.TrickCard, leadSuit cardgame.Suit) cardgame.Card {
	winner := trick[0].Card
	for _, tc := range trick[1:] {
		if tc.Card.Suit() == leadSuit && outranks(tc.Card, winner) {
			winner = tc.Card
		}
	}
	return winner
}

func outranks(a, b cardgame.Card) bool {
	av, bv := rankValue(a.Rank()), rankValue(b.Rank())
	return av > bv
}

func rankValue(r cardgame.Rank) int {
	if r == 1 {
		return 14
	}
	return int(r)
}

// rankByDanger orders hand from most to least worth passing away.
func rankByDanger(hand cardgame.Hand) cardgame.Hand {
	out := hand.Clone()
	insertionSortBy(out, dangerScore)
	return out
}

func dangerScore(c cardgame.Card) int {
	switch {
	case c == cardgame.QueenOfSpades:
		return 1000
	case c.IsHeart():
		return 500 + rankValue(c.Rank())
	case c.Suit() == cardgame.Spades && rankValue(c.Rank()) >= rankValue(cardgame.QueenOfSpades.Rank()):
		return 400 + rankValue(c.Rank())
	default:
		return rankValue(c.Rank())
	}
}

// insertionSort orders ascending by rank value (Ace high); small,
// fixed-size hands make anything fancier unnecessary.
func insertionSort(cards []cardgame.Card) {
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0 && rankValue(cards[j].Rank()) < rankValue(cards[j-1].Rank()); j-- {
			cards[j], cards[j-1] = cards[j-1], cards[j]
		}
	}
}

// insertionSortBy orders descending by key.
func insertionSortBy(cards []cardgame.Card, key func(cardgame.Card) int) {
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0 && key(cards[j]) > key(cards[j-1]); j-- {
			cards[j], cards[j-1] = cards[j-1], cards[j]
		}
	}
}
