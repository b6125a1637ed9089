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

package peerconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peer0.toml")
	contents := `
SelfID = 0
ListenAddr = "127.0.0.1:9000"
SuccessorAddr = "127.0.0.1:9001"
LogLevel = "debug"
Interactive = true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.EqualValues(t, 0, cfg.SelfID)
	require.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	require.Equal(t, "127.0.0.1:9001", cfg.SuccessorAddr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.Interactive)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peer0.toml")
	require.NoError(t, os.WriteFile(path, []byte("Bogus = 1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateCatchesMissingFields(t *testing.T) {
	require.Error(t, Config{}.Validate())
	require.Error(t, Config{SelfID: 4, ListenAddr: "a", SuccessorAddr: "b"}.Validate())
	require.NoError(t, Config{SelfID: 1, ListenAddr: "a", SuccessorAddr: "b"}.Validate())
}
