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

package natutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/herijooj/ringhearts/log"
)

func TestMapNeverPanicsWithoutNAT(t *testing.T) {
	lg := log.New()
	lg.SetLevel(log.LvlCrit + 1) // silence: this test only cares that Map doesn't panic
	require.NotPanics(t, func() {
		Map(9000, "ringhearts-test", lg)
	})
}

func TestLocalIPPrefersNonLoopback(t *testing.T) {
	ip := localIP()
	if ip != nil {
		require.False(t, ip.IsLoopback())
	}
}
