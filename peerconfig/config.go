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

// Package peerconfig loads the TOML file describing one peer's place in
// the ring: who it is, where it listens, and where its successor lives.
package peerconfig

import (
	"bufio"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
)

// tomlSettings mirrors field names verbatim between Go and TOML and turns
// an unrecognized key into a hard error instead of a silently ignored typo.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Config is one peer's topology and runtime configuration.
type Config struct {
	SelfID        uint8  // 0-3; P0 also runs the coordinator.
	ListenAddr    string // e.g. "0.0.0.0:9001"
	SuccessorAddr string // the next peer clockwise in the ring.
	LogLevel      string // trace|debug|info|warn|error|crit
	Interactive   bool   // prompt a human for pass/play decisions
	EnableNAT     bool   // attempt UPnP/NAT-PMP port mapping on startup
}

// Default returns sensible loopback settings for local four-process runs;
// SelfID and the two addresses still need to be set per peer.
func Default() Config {
	return Config{
		LogLevel: "info",
	}
}

// Load reads and decodes a TOML configuration file.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg)
	if _, ok := err.(*toml.LineError); ok {
		err = fmt.Errorf("%s: %w", path, err)
	}
	return cfg, err
}

// Validate reports a configuration error before any socket is opened.
func (c Config) Validate() error {
	if c.SelfID > 3 {
		return fmt.Errorf("peerconfig: self_id %d out of range [0,3]", c.SelfID)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("peerconfig: listen_addr is required")
	}
	if c.SuccessorAddr == "" {
		return fmt.Errorf("peerconfig: successor_addr is required")
	}
	return nil
}
