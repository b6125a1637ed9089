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

import "fmt"

// HeaderSize is the fixed 5-byte frame header: type, origin_id,
// destination_id, seq_num, payload_len.
const HeaderSize = 5

// MaxPayload is the largest payload a single-byte payload_len can declare.
const MaxPayload = 255

// Frame is one decoded ring message: the fixed header plus its payload.
type Frame struct {
	Type          MessageType
	OriginID      byte
	DestinationID byte
	SeqNum        byte
	Payload       []byte
}

// Key identifies a frame for duplicate-suppression and lap-complete
// bookkeeping: a frame is uniquely identified by who originated it, its
// per-origin sequence number, and its type.
type Key struct {
	OriginID byte
	SeqNum   byte
	Type     MessageType
}

func (f Frame) Key() Key {
	return Key{OriginID: f.OriginID, SeqNum: f.SeqNum, Type: f.Type}
}

// Encode serializes a frame to its wire bytes. All fields are single
// unsigned bytes or raw payload bytes; there is no endianness to worry
// about.
func Encode(f Frame) ([]byte, error) {
	if len(f.Payload) > MaxPayload {
		return nil, fmt.Errorf("protocol: payload of %d bytes exceeds max %d", len(f.Payload), MaxPayload)
	}
	out := make([]byte, HeaderSize+len(f.Payload))
	out[0] = byte(f.Type)
	out[1] = f.OriginID
	out[2] = f.DestinationID
	out[3] = f.SeqNum
	out[4] = byte(len(f.Payload))
	copy(out[HeaderSize:], f.Payload)
	return out, nil
}

// Decode parses wire bytes into a Frame. It rejects frames shorter than
// the fixed header and frames whose declared payload_len disagrees with
// the number of bytes actually present.
func Decode(raw []byte) (Frame, error) {
	if len(raw) < HeaderSize {
		return Frame{}, fmt.Errorf("protocol: frame of %d bytes shorter than header", len(raw))
	}
	payloadLen := int(raw[4])
	rest := raw[HeaderSize:]
	if len(rest) != payloadLen {
		return Frame{}, fmt.Errorf("protocol: payload_len=%d disagrees with %d bytes present", payloadLen, len(rest))
	}
	var payload []byte
	if payloadLen > 0 {
		payload = make([]byte, payloadLen)
		copy(payload, rest)
	}
	return Frame{
		Type:          MessageType(raw[0]),
		OriginID:      raw[1],
		DestinationID: raw[2],
		SeqNum:        raw[3],
		Payload:       payload,
	}, nil
}
