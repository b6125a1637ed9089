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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/herijooj/ringhearts/cardgame"
)

func TestAutomaticChoosePassOffloadsQueenOfSpadesFirst(t *testing.T) {
	hand := cardgame.Hand{
		cardgame.NewCard(3, cardgame.Diamonds),
		cardgame.QueenOfSpades,
		cardgame.NewCard(9, cardgame.Hearts),
	}
	chosen := NewAutomatic().ChoosePass(hand, cardgame.PassLeft)
	require.Equal(t, cardgame.QueenOfSpades, chosen[0])
}

func TestAutomaticChoosePassNeverInventsCards(t *testing.T) {
	hand := cardgame.Hand{
		cardgame.NewCard(3, cardgame.Diamonds),
		cardgame.NewCard(5, cardgame.Clubs),
		cardgame.NewCard(9, cardgame.Hearts),
	}
	chosen := NewAutomatic().ChoosePass(hand, cardgame.PassAcross)
	for _, c := range chosen {
		require.True(t, hand.Contains(c))
	}
}

func TestAutomaticChoosePlayLeadsLowestWhenNoTrick(t *testing.T) {
	legal := []cardgame.Card{cardgame.NewCard(9, cardgame.Clubs), cardgame.NewCard(3, cardgame.Clubs)}
	chosen := NewAutomatic().ChoosePlay(nil, legal, nil, true)
	require.Equal(t, cardgame.NewCard(3, cardgame.Clubs), chosen)
}

func TestAutomaticChoosePlayDucksUnderCurrentWinner(t *testing.T) {
	trick := []cardgame.TrickCard{
		{PlayerID: 0, Card: cardgame.NewCard(9, cardgame.Clubs)},
	}
	legal := []cardgame.Card{cardgame.NewCard(5, cardgame.Clubs), cardgame.NewCard(11, cardgame.Clubs)}
	chosen := NewAutomatic().ChoosePlay(nil, legal, trick, true)
	require.Equal(t, cardgame.NewCard(5, cardgame.Clubs), chosen)
}

func TestAutomaticChoosePlayMustWinIfAllLegalBeatLead(t *testing.T) {
	trick := []cardgame.TrickCard{
		{PlayerID: 0, Card: cardgame.NewCard(2, cardgame.Clubs)},
	}
	legal := []cardgame.Card{cardgame.NewCard(5, cardgame.Clubs), cardgame.NewCard(11, cardgame.Clubs)}
	chosen := NewAutomatic().ChoosePlay(nil, legal, trick, true)
	require.Equal(t, cardgame.NewCard(11, cardgame.Clubs), chosen)
}
