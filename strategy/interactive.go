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
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/herijooj/ringhearts/cardgame"
)

// Interactive reads an operator's choice from a terminal line, for manual
// play and debugging. An out-of-range or unparsable answer falls through
// to Automatic, since the caller sanitizes the result anyway.
type Interactive struct {
	line     *liner.State
	fallback Automatic
}

// NewInteractive wires a liner.State for prompting; the caller owns its
// lifetime and must call Close when done.
func NewInteractive(line *liner.State) *Interactive {
	return &Interactive{line: line}
}

// Close releases the underlying terminal line state.
func (i *Interactive) Close() error { return i.line.Close() }

func (i *Interactive) ChoosePass(hand cardgame.Hand, dir cardgame.PassDirection) [3]cardgame.Card {
	prompt := fmt.Sprintf("pass %s (hand: %s) > ", dir, renderHand(hand))
	answer, err := i.line.Prompt(prompt)
	if err != nil {
		return i.fallback.ChoosePass(hand, dir)
	}
	i.line.AppendHistory(answer)
	chosen := parseIndices(hand, answer, 3)
	if chosen == nil {
		return i.fallback.ChoosePass(hand, dir)
	}
	var out [3]cardgame.Card
	copy(out[:], chosen)
	return out
}

func (i *Interactive) ChoosePlay(hand cardgame.Hand, legal []cardgame.Card, trick []cardgame.TrickCard, heartsBroken bool) cardgame.Card {
	prompt := fmt.Sprintf("play (legal: %s) > ", renderHand(legal))
	answer, err := i.line.Prompt(prompt)
	if err != nil {
		return i.fallback.ChoosePlay(hand, legal, trick, heartsBroken)
	}
	i.line.AppendHistory(answer)
	chosen := parseIndices(legal, answer, 1)
	if chosen == nil {
		return i.fallback.ChoosePlay(hand, legal, trick, heartsBroken)
	}
	return chosen[0]
}

func renderHand(cards []cardgame.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = fmt.Sprintf("%d:%s", i, c)
	}
	return strings.Join(parts, " ")
}

// parseIndices reads exactly want space-separated indices into source,
// returning nil on any parse error, out-of-range index, or duplicate.
func parseIndices(source []cardgame.Card, answer string, want int) []cardgame.Card {
	fields := strings.Fields(answer)
	if len(fields) != want {
		return nil
	}
	seen := map[int]bool{}
	out := make([]cardgame.Card, want)
	for i, field := range fields {
		idx, err := strconv.Atoi(field)
		if err != nil || idx < 0 || idx >= len(source) || seen[idx] {
			return nil
		}
		seen[idx] = true
		out[i] = source[idx]
	}
	return out
}
