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

package token

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/herijooj/ringhearts/log"
	"github.com/herijooj/ringhearts/protocol"
)

type fakeSender struct {
	sent []protocol.Frame
}

func (f *fakeSender) Originate(t protocol.MessageType, dest byte, payload []byte) (protocol.Frame, error) {
	fr := protocol.Frame{Type: t, DestinationID: dest, Payload: payload}
	f.sent = append(f.sent, fr)
	return fr, nil
}

func TestArbiterSelfAssignAndHold(t *testing.T) {
	a := New(0, &fakeSender{}, log.New())
	require.False(t, a.Hold())
	a.SelfAssign()
	require.True(t, a.Hold())
}

func TestArbiterReleaseRequiresHold(t *testing.T) {
	a := New(0, &fakeSender{}, log.New())
	err := a.ReleaseTo(context.Background(), 1)
	require.Error(t, err)
}

func TestArbiterReleaseEmitsTokenPassAndDropsHold(t *testing.T) {
	sender := &fakeSender{}
	a := New(0, sender, log.New())
	a.SelfAssign()
	require.NoError(t, a.ReleaseTo(context.Background(), 1))
	require.False(t, a.Hold())
	require.Len(t, sender.sent, 1)
	require.Equal(t, protocol.TokenPass, sender.sent[0].Type)
	require.Equal(t, byte(1), sender.sent[0].DestinationID)
	require.Equal(t, []byte{1}, sender.sent[0].Payload)
}

func TestArbiterAcceptRejectsWrongID(t *testing.T) {
	a := New(1, &fakeSender{}, log.New())
	require.Error(t, a.Accept(2))
	require.False(t, a.Hold())
	require.NoError(t, a.Accept(1))
	require.True(t, a.Hold())
}
