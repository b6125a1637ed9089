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

package peer

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/herijooj/ringhearts/peerconfig"
	"github.com/herijooj/ringhearts/strategy"
)

func testConfig(t *testing.T, selfID uint8) peerconfig.Config {
	t.Helper()
	return peerconfig.Config{
		SelfID:        selfID,
		ListenAddr:    "127.0.0.1:0",
		SuccessorAddr: "127.0.0.1:1",
		LogLevel:      "crit",
	}
}

func TestOnlyPeerZeroGetsACoordinator(t *testing.T) {
	p0, err := New(testConfig(t, 0), strategy.NewAutomatic())
	require.NoError(t, err)
	defer p0.Close()
	require.NotNil(t, p0.coordinator)

	p1, err := New(testConfig(t, 1), strategy.NewAutomatic())
	require.NoError(t, err)
	defer p1.Close()
	require.Nil(t, p1.coordinator)
}

func TestStartGameOnNonCoordinatorIsNoop(t *testing.T) {
	p1, err := New(testConfig(t, 1), strategy.NewAutomatic())
	require.NoError(t, err)
	defer p1.Close()
	require.NoError(t, p1.StartGame(nil))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(peerconfig.Config{}, strategy.NewAutomatic())
	require.Error(t, err)
}

// reserveLoopbackAddrs hands back n distinct "127.0.0.1:port" strings by
// briefly binding and releasing them, so a four-peer ring can be wired up
// front without any peer needing to learn another's address after start.
func reserveLoopbackAddrs(t *testing.T, n int) []string {
	t.Helper()
	conns := make([]net.PacketConn, n)
	addrs := make([]string, n)
	for i := range conns {
		c, err := net.ListenPacket("udp", "127.0.0.1:0")
		require.NoError(t, err)
		conns[i] = c
		addrs[i] = c.LocalAddr().String()
	}
	for _, c := range conns {
		require.NoError(t, c.Close())
	}
	return addrs
}

// TestFourPeerRingCompletesFirstHandWithoutDeadlock exercises the exact
// scenario that used to wedge forever: P0 deals with pass_direction=left
// (the first hand of any game), so the pass-phase barrier can only release
// once all four PASS_CARDS origins, including P0's own, have been observed.
// If the coordinator never learns about its own pass, no peer ever leaves
// passing_barrier and the hand never scores.
func TestFourPeerRingCompletesFirstHandWithoutDeadlock(t *testing.T) {
	addrs := reserveLoopbackAddrs(t, 4)

	peers := make([]*Peer, 4)
	for i := range peers {
		cfg := peerconfig.Config{
			SelfID:        uint8(i),
			ListenAddr:    addrs[i],
			SuccessorAddr: addrs[(i+1)%4],
			LogLevel:      "crit",
		}
		p, err := New(cfg, strategy.NewAutomatic())
		require.NoError(t, err)
		defer p.Close()
		peers[i] = p
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, p := range peers {
		go p.Run(ctx)
	}

	require.NoError(t, peers[0].StartGame(ctx))

	require.Eventually(t, func() bool {
		scores := peers[0].Scores()
		return scores[0]+scores[1]+scores[2]+scores[3] > 0
	}, 5*time.Second, 10*time.Millisecond,
		"the first hand must score (and thus the pass barrier must release) instead of deadlocking in passing_barrier")
}
