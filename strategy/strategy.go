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

// Package strategy defines the pluggable decision-making boundary: the
// phase machine asks a Strategy what to pass and what to play, and
// enforces legality on the answer itself. A Strategy may therefore be
// arbitrarily untrusted.
package strategy

import "github.com/herijooj/ringhearts/cardgame"

// Strategy chooses which cards to pass and which card to play. Both
// methods may return an illegal answer; the caller is responsible for
// falling back to a legal default rather than trusting the result.
type Strategy interface {
	ChoosePass(hand cardgame.Hand, dir cardgame.PassDirection) [3]cardgame.Card
	ChoosePlay(hand cardgame.Hand, legal []cardgame.Card, trick []cardgame.TrickCard, heartsBroken bool) cardgame.Card
}
