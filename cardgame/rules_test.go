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

func TestPassTarget(t *testing.T) {
	require.EqualValues(t, 1, PassTarget(0, PassLeft))
	require.EqualValues(t, 3, PassTarget(0, PassRight))
	require.EqualValues(t, 2, PassTarget(0, PassAcross))
	require.EqualValues(t, 2, PassTarget(1, PassLeft))
}

func TestNextPassDirectionWrapsIndefinitely(t *testing.T) {
	d := PassLeft
	order := []PassDirection{PassRight, PassAcross, PassNone, PassLeft, PassRight}
	for _, want := range order {
		d = NextPassDirection(d)
		require.Equal(t, want, d)
	}
}

func TestFirstTrickMustLeadTwoOfClubs(t *testing.T) {
	hand := Hand{TwoOfClubs, NewCard(5, Hearts), NewCard(9, Spades)}
	legal := LegalPlays(hand, nil, false, true)
	require.Equal(t, []Card{TwoOfClubs}, legal)
}

func TestHeartsIllegalLeadUntilBroken(t *testing.T) {
	hand := Hand{NewCard(5, Hearts), NewCard(9, Spades), NewCard(3, Diamonds)}
	legal := LegalPlays(hand, nil, false, false)
	for _, c := range legal {
		require.False(t, c.IsHeart())
	}
}

func TestHeartsLegalLeadWhenHandAllHearts(t *testing.T) {
	hand := Hand{NewCard(5, Hearts), NewCard(9, Hearts)}
	legal := LegalPlays(hand, nil, false, false)
	require.ElementsMatch(t, hand, legal)
}

func TestHeartsLegalLeadWhenBroken(t *testing.T) {
	hand := Hand{NewCard(5, Hearts), NewCard(9, Spades)}
	legal := LegalPlays(hand, nil, true, false)
	require.ElementsMatch(t, hand, legal)
}

func TestMustFollowSuitWhenPossible(t *testing.T) {
	hand := Hand{NewCard(5, Diamonds), NewCard(9, Spades)}
	trick := []TrickCard{{PlayerID: 3, Card: NewCard(2, Diamonds)}}
	legal := LegalPlays(hand, trick, true, false)
	require.Equal(t, []Card{NewCard(5, Diamonds)}, legal)
}

func TestFirstTrickDiscardRestriction(t *testing.T) {
	hand := Hand{QueenOfSpades, NewCard(5, Hearts), NewCard(9, Diamonds)}
	trick := []TrickCard{{PlayerID: 0, Card: TwoOfClubs}}
	legal := LegalPlays(hand, trick, false, true)
	require.Equal(t, []Card{NewCard(9, Diamonds)}, legal)
}

func TestFirstTrickDiscardAllowedWhenOnlyPenaltyCardsRemain(t *testing.T) {
	hand := Hand{QueenOfSpades, NewCard(5, Hearts)}
	trick := []TrickCard{{PlayerID: 0, Card: TwoOfClubs}}
	legal := LegalPlays(hand, trick, false, true)
	require.ElementsMatch(t, hand, legal)
}

func TestTrickWinnerAceHigh(t *testing.T) {
	trick := []TrickCard{
		{PlayerID: 0, Card: NewCard(10, Clubs)},
		{PlayerID: 1, Card: NewCard(1, Clubs)},
		{PlayerID: 2, Card: NewCard(13, Hearts)}, // off-suit, cannot win
		{PlayerID: 3, Card: NewCard(9, Clubs)},
	}
	require.EqualValues(t, 1, TrickWinner(trick))
}

func TestTrickPoints(t *testing.T) {
	trick := []TrickCard{
		{PlayerID: 0, Card: NewCard(2, Hearts)},
		{PlayerID: 1, Card: QueenOfSpades},
		{PlayerID: 2, Card: NewCard(9, Clubs)},
		{PlayerID: 3, Card: NewCard(5, Diamonds)},
	}
	require.Equal(t, 14, TrickPoints(trick))
}

func TestHandPointsNoShooter(t *testing.T) {
	adjusted, shooter := HandPoints([4]int{5, 10, 6, 5})
	require.Equal(t, -1, shooter)
	require.Equal(t, [4]int{5, 10, 6, 5}, adjusted)
}

func TestHandPointsShootingTheMoon(t *testing.T) {
	adjusted, shooter := HandPoints([4]int{0, 0, 26, 0})
	require.Equal(t, 2, shooter)
	require.Equal(t, [4]int{26, 26, 0, 26}, adjusted)
}
