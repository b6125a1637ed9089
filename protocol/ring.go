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

package protocol

import (
	"context"
	"net"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/herijooj/ringhearts/log"
)

// dedupCacheSize bounds the lap-in-flight duplicate guard; a handful of
// frames can be outstanding per origin at once, four origins total.
const dedupCacheSize = 64

// Handler is invoked for every frame the ring transport delivers locally
// (destination_id == self or broadcast), and separately for every frame
// that completes a full lap back to its own origin.
type Handler interface {
	// HandleLocal processes a frame addressed to this peer (or broadcast).
	HandleLocal(f Frame)
	// HandleLapComplete is raised when a frame this peer originated has
	// traveled the whole ring and returned.
	HandleLapComplete(f Frame)
}

// Observer is an optional extension of Handler: a peer that implements it
// is shown every frame that transits its hop, whether or not it is
// addressed to this peer, right after the frame has been forwarded. Only
// the coordinator needs this, to track the live 2♣ holder and the pass
// barrier across PASS_CARDS frames.
type Observer interface {
	ObserveForwarded(f Frame)
}

// Ring owns the single UDP socket for one peer: it sends to the successor,
// and its Serve loop applies the ring-consumption rule (origin check, then
// duplicate check, then local-delivery-before-forwarding) to everything it
// receives.
type Ring struct {
	selfID    byte
	conn      net.PacketConn
	successor net.Addr
	handler   Handler
	log       *log.Logger

	nextSeq byte
	seen    *lru.Cache
}

// NewRing opens the UDP listener and resolves the successor address. The
// only fatal error in this whole system is here: a socket-open failure at
// startup.
func NewRing(selfID byte, listenAddr, successorAddr string, h Handler, lg *log.Logger) (*Ring, error) {
	conn, err := net.ListenPacket("udp", listenAddr)
	if err != nil {
		return nil, err
	}
	succ, err := net.ResolveUDPAddr("udp", successorAddr)
	if err != nil {
		conn.Close()
		return nil, err
	}
	cache, err := lru.New(dedupCacheSize)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Ring{
		selfID:    selfID,
		conn:      conn,
		successor: succ,
		handler:   h,
		log:       lg,
		seen:      cache,
	}, nil
}

// Close releases the UDP socket.
func (r *Ring) Close() error { return r.conn.Close() }

// LocalAddr is the address this ring is actually bound to (useful when
// listenAddr used port 0).
func (r *Ring) LocalAddr() net.Addr { return r.conn.LocalAddr() }

// Originate builds a frame with this peer as origin_id, a freshly
// allocated per-origin sequence number, and sends it to the successor.
// Callers (the token arbiter, the phase machine, the coordinator) must
// already hold the token before calling this for any action message.
func (r *Ring) Originate(t MessageType, destination byte, payload []byte) (Frame, error) {
	f := Frame{
		Type:          t,
		OriginID:      r.selfID,
		DestinationID: destination,
		SeqNum:        r.nextSeq,
		Payload:       payload,
	}
	r.nextSeq++
	return f, r.send(f)
}

func (r *Ring) send(f Frame) error {
	raw, err := Encode(f)
	if err != nil {
		return err
	}
	_, err = r.conn.WriteTo(raw, r.successor)
	return err
}

// Serve runs the receive loop until ctx is canceled or the socket errors.
func (r *Ring) Serve(ctx context.Context) error {
	// Unblock a pending ReadFrom once ctx is canceled.
	go func() {
		<-ctx.Done()
		r.conn.SetReadDeadline(time.Now())
	}()
	buf := make([]byte, HeaderSize+MaxPayload)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, _, err := r.conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return err
			}
		}
		raw := make([]byte, n)
		copy(raw, buf[:n])
		r.handleInbound(raw)
	}
}

func (r *Ring) handleInbound(raw []byte) {
	f, err := Decode(raw)
	if err != nil {
		r.log.Warn("dropping malformed frame", "err", err, "bytes", len(raw))
		return
	}

	if f.OriginID == r.selfID {
		// Rule 2: a full lap. Do not forward; raise the local signal.
		r.handler.HandleLapComplete(f)
		return
	}

	key := f.Key()
	if _, dup := r.seen.Get(key); dup {
		// Process-once semantics: forward the first occurrence only. The
		// ring should make duplicates impossible; the guard exists anyway.
		r.log.Warn("dropping duplicate frame", "type", f.Type, "origin", f.OriginID, "seq", f.SeqNum)
		return
	}
	r.seen.Add(key, struct{}{})

	// Rule 3: process locally first, then forward, so a downstream peer
	// never races ahead of our own state update (e.g. TOKEN_PASS).
	local := f.DestinationID == r.selfID || f.DestinationID == Broadcast
	if local {
		r.handler.HandleLocal(f)
	}
	if err := r.forwardRaw(raw); err != nil {
		r.log.Error("forward failed", "err", err, "type", f.Type)
	}
	// Observed after forwarding, so anything the observer emits in reaction
	// travels behind this frame on the next hop.
	if obs, ok := r.handler.(Observer); ok {
		obs.ObserveForwarded(f)
	}
}

// forwardRaw retransmits the exact bytes received, unmodified, to the
// successor. Forwarding never mutates header fields.
func (r *Ring) forwardRaw(raw []byte) error {
	_, err := r.conn.WriteTo(raw, r.successor)
	return err
}
