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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueenOfSpadesEncoding(t *testing.T) {
	require.Equal(t, Card(0x3C), QueenOfSpades)
}

func TestCardRankAndSuitRoundTrip(t *testing.T) {
	c := NewCard(11, Hearts)
	require.Equal(t, Rank(11), c.Rank())
	require.Equal(t, Hearts, c.Suit())
}

func TestShuffleAndDealPartitionsDeckDisjointly(t *testing.T) {
	deck := Shuffle(NewDeck())
	require.Len(t, deck, 52)
	hands := Deal(deck)

	seen := map[Card]int{}
	total := 0
	for _, h := range hands {
		require.Len(t, h, 13)
		for _, c := range h {
			seen[c]++
			total++
		}
	}
	require.Equal(t, 52, total)
	for c, n := range seen {
		require.Equalf(t, 1, n, "card %v dealt more than once", c)
	}
}

func TestHolderOfTwoOfClubsNotFound(t *testing.T) {
	require.Equal(t, -1, HolderOfTwoOfClubs([4]Hand{}))
}

func TestHolderOfTwoOfClubs(t *testing.T) {
	hands := [4]Hand{
		{NewCard(5, Diamonds)},
		{TwoOfClubs},
		{},
		{},
	}
	require.Equal(t, 1, HolderOfTwoOfClubs(hands))
}
