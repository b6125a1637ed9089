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

// Package natutil attempts best-effort UDP port mapping for a peer that
// sits behind NAT, trying UPnP IGD first and falling back to NAT-PMP.
// Every path here is optional: a peer with a routable or manually
// forwarded address works fine without this package ever succeeding.
package natutil

import (
	"fmt"
	"net"
	"time"

	"github.com/huin/goupnp/dcps/internetgateway2"
	natpmp "github.com/jackpal/go-nat-pmp"

	"github.com/herijooj/ringhearts/log"
)

// MapLifetime is how long a mapping is requested for; callers that keep a
// peer running longer than this must call Map again before it expires.
const MapLifetime = 20 * time.Minute

// Map tries UPnP and then NAT-PMP, in that order, to forward udpPort on the
// gateway to this host. It never returns an error: every failure is logged
// and treated as "NAT traversal unavailable, continue unmapped".
func Map(udpPort int, description string, lg *log.Logger) {
	if ext, err := mapUPnP(udpPort, description); err == nil {
		lg.Info("UPnP port mapping established", "external", ext, "port", udpPort)
		return
	} else {
		lg.Debug("UPnP port mapping failed", "err", err)
	}
	if ext, err := mapNATPMP(udpPort, description); err == nil {
		lg.Info("NAT-PMP port mapping established", "external", ext, "port", udpPort)
		return
	} else {
		lg.Debug("NAT-PMP port mapping failed", "err", err)
	}
	lg.Warn("no NAT traversal available, relying on manual port forwarding or a routable address")
}

func mapUPnP(port int, description string) (net.IP, error) {
	clients, errs, err := internetgateway2.NewWANIPConnection1Clients()
	if err != nil {
		return nil, fmt.Errorf("natutil: WANIPConnection1 discovery: %w", err)
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("natutil: no WANIPConnection1 client found: %w", firstNonNil(errs, fmt.Errorf("none discovered")))
	}
	client := clients[0]

	externalIP, err := client.GetExternalIPAddress()
	if err != nil {
		return nil, fmt.Errorf("natutil: GetExternalIPAddress: %w", err)
	}
	if err := client.AddPortMapping("", uint16(port), "UDP", uint16(port), localIP().String(), true, description, uint32(MapLifetime.Seconds())); err != nil {
		return nil, fmt.Errorf("natutil: AddPortMapping: %w", err)
	}
	return net.ParseIP(externalIP), nil
}

func mapNATPMP(port int, description string) (net.IP, error) {
	gw, err := defaultGateway()
	if err != nil {
		return nil, err
	}
	client := natpmp.NewClient(gw)
	extAddr, err := client.GetExternalAddress()
	if err != nil {
		return nil, fmt.Errorf("natutil: GetExternalAddress: %w", err)
	}
	if _, err := client.AddPortMapping("udp", port, port, int(MapLifetime.Seconds())); err != nil {
		return nil, fmt.Errorf("natutil: AddPortMapping: %w", err)
	}
	return net.IP(extAddr.ExternalIPAddress[:]), nil
}

func firstNonNil(errs []error, fallback error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return fallback
}

// defaultGateway guesses the LAN gateway as the first non-loopback IPv4
// address' /24 .1, a best-effort approximation. NAT-PMP always uses this
// guess; no gateway address can be configured.
func defaultGateway() (net.IP, error) {
	ip := localIP()
	if ip == nil {
		return nil, fmt.Errorf("natutil: no local IPv4 address found")
	}
	gw := ip.To4()
	if gw == nil {
		return nil, fmt.Errorf("natutil: local address is not IPv4")
	}
	out := make(net.IP, 4)
	copy(out, gw)
	out[3] = 1
	return out, nil
}

func localIP() net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4
		}
	}
	return nil
}
