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

// TrickCard pairs a played card with the player who played it, in the
// temporal order the cards were played.
type TrickCard struct {
	PlayerID uint8
	Card     Card
}

// PassDirection is the rotation applied to the three-card pass at the
// start of each hand; it cycles left -> right -> across -> none -> left.
type PassDirection uint8

const (
	PassLeft   PassDirection = 0
	PassRight  PassDirection = 1
	PassAcross PassDirection = 2
	PassNone   PassDirection = 3
)

func (d PassDirection) String() string {
	switch d {
	case PassLeft:
		return "left"
	case PassRight:
		return "right"
	case PassAcross:
		return "across"
	case PassNone:
		return "none"
	default:
		return "unknown"
	}
}

// NextPassDirection advances the rotation, wrapping indefinitely past
// PassNone back to PassLeft.
func NextPassDirection(d PassDirection) PassDirection {
	return (d + 1) % 4
}

// PassTarget returns the peer a self_id card trio is passed to. PassNone
// has no target; callers must check for (direction == PassNone) before
// calling.
func PassTarget(selfID uint8, dir PassDirection) uint8 {
	switch dir {
	case PassLeft:
		return (selfID + 1) % 4
	case PassRight:
		return (selfID + 3) % 4
	case PassAcross:
		return (selfID + 2) % 4
	default:
		return selfID
	}
}

// LegalPlays computes the legal subset of hand for the next play, given
// the cards already laid in the current trick (in play order), whether
// hearts have been broken this hand, and whether this is the first trick
// of the hand.
func LegalPlays(hand Hand, trick []TrickCard, heartsBroken bool, firstTrickOfHand bool) []Card {
	if len(trick) == 0 {
		return legalLeads(hand, heartsBroken, firstTrickOfHand)
	}
	return legalFollows(hand, trick[0].Card.Suit(), firstTrickOfHand)
}

func legalLeads(hand Hand, heartsBroken, firstTrick bool) []Card {
	if firstTrick {
		if hand.Contains(TwoOfClubs) {
			return []Card{TwoOfClubs}
		}
		// 2♣ holder leads the first trick; any other peer isn't on lead.
	}
	if heartsBroken || hand.OnlyHearts() {
		return append([]Card{}, hand...)
	}
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if !c.IsHeart() {
			out = append(out, c)
		}
	}
	return out
}

func legalFollows(hand Hand, leadSuit Suit, firstTrick bool) []Card {
	if hand.HasSuit(leadSuit) {
		out := make([]Card, 0, len(hand))
		for _, c := range hand {
			if c.Suit() == leadSuit {
				out = append(out, c)
			}
		}
		return out
	}
	if firstTrick && !hand.OnlyPenalty() {
		out := make([]Card, 0, len(hand))
		for _, c := range hand {
			if !c.IsPenalty() {
				out = append(out, c)
			}
		}
		return out
	}
	return append([]Card{}, hand...)
}

// TrickWinner returns the id of the player whose card has the lead suit
// and the highest rank (Ace high); off-suit cards cannot win.
func TrickWinner(trick []TrickCard) uint8 {
	leadSuit := trick[0].Card.Suit()
	winner := trick[0]
	for _, tc := range trick[1:] {
		if tc.Card.Suit() != leadSuit {
			continue
		}
		if higherRank(tc.Card.Rank(), winner.Card.Rank()) {
			winner = tc
		}
	}
	return winner.PlayerID
}

// higherRank reports whether a outranks b, treating Ace (1) as high.
func higherRank(a, b Rank) bool {
	av, bv := rankValue(a), rankValue(b)
	return av > bv
}

func rankValue(r Rank) int {
	if r == 1 {
		return 14
	}
	return int(r)
}

// TrickPoints is 1 per heart plus 13 if Q♠ is present.
func TrickPoints(trick []TrickCard) int {
	points := 0
	for _, tc := range trick {
		if tc.Card.IsHeart() {
			points++
		}
		if tc.Card == QueenOfSpades {
			points += 13
		}
	}
	return points
}

// HandPoints applies the shoot-the-moon adjustment: if any player's raw
// hand score is 26 (all hearts plus Q♠), that player becomes the shooter
// (scored 0) and the other three are credited 26 each. Otherwise the raw
// scores are returned unchanged and shooter is -1 (none).
func HandPoints(scoresHand [4]int) (adjusted [4]int, shooter int) {
	shooter = -1
	for i, s := range scoresHand {
		if s == 26 {
			shooter = i
			break
		}
	}
	if shooter < 0 {
		return scoresHand, -1
	}
	for i := range adjusted {
		if i == shooter {
			adjusted[i] = 0
		} else {
			adjusted[i] = 26
		}
	}
	return adjusted, shooter
}
