// Package podcast implements the client side of the podcast TTS wire
// protocol: a binary-framed, event-driven conversation over a persistent
// websocket that turns a two-host script into one mp3 byte stream.
package podcast

import "encoding/binary"

// MsgType is the frame class carried in the high nibble of header byte 1.
type MsgType byte

const (
	MsgTypeFullClientRequest  MsgType = 0x01
	MsgTypeFullServerResponse MsgType = 0x09
	MsgTypeAudioOnlyServer    MsgType = 0x0B
	MsgTypeError              MsgType = 0x0F
)

// Protocol event codes. For MsgTypeError frames the event slot carries the
// server error code instead.
const (
	EventConnectionStart      uint32 = 1
	EventFinishConnection     uint32 = 2
	EventConnectionStarted    uint32 = 50
	EventConnectionFinished   uint32 = 52
	EventStartSession         uint32 = 100
	EventFinishSession        uint32 = 102
	EventSessionStarted       uint32 = 150
	EventSessionFinished      uint32 = 152
	EventUsageResponse        uint32 = 154
	EventPodcastRoundStart    uint32 = 360
	EventPodcastRoundResponse uint32 = 361
	EventPodcastRoundEnd      uint32 = 362
	EventPodcastEnd           uint32 = 363
)

const (
	headerVersion     = 0x11 // version 1, header size 1 (x4 bytes)
	serializationJSON = 0x10
	flagWithEvent     = 0x04
)

// Frame is one discrete message on the socket.
//
// Wire layout: a 4-byte header (version/size, type nibble + event flag,
// serialization marker, reserved), then an optional big-endian uint32 event
// code (present iff Event > 0), an optional length-prefixed UTF-8 session id
// (present iff non-empty), and a mandatory length-prefixed payload.
type Frame struct {
	Type      MsgType
	Event     uint32
	SessionID string
	Payload   []byte
}

// Marshal encodes the frame for transmission.
func (f Frame) Marshal() []byte {
	buf := make([]byte, 0, 16+len(f.SessionID)+len(f.Payload))

	flags := byte(0)
	if f.Event > 0 {
		flags = flagWithEvent
	}
	buf = append(buf, headerVersion, byte(f.Type)<<4|flags, serializationJSON, 0x00)

	if f.Event > 0 {
		buf = binary.BigEndian.AppendUint32(buf, f.Event)
	}
	if f.SessionID != "" {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(f.SessionID)))
		buf = append(buf, f.SessionID...)
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(f.Payload)))
	buf = append(buf, f.Payload...)
	return buf
}

// UnmarshalFrame decodes one inbound frame. It never fails: truncated or
// malformed input degrades to a frame with event 0 and an empty payload so
// event dispatch can keep moving. Error frames short-circuit after the code:
// bytes [4:8] are the server error code and everything after is the message.
func UnmarshalFrame(data []byte) Frame {
	if len(data) < 4 {
		return Frame{}
	}

	t := MsgType(data[1] >> 4)

	if t == MsgTypeError {
		if len(data) < 8 {
			return Frame{Type: MsgTypeError}
		}
		return Frame{
			Type:    MsgTypeError,
			Event:   binary.BigEndian.Uint32(data[4:8]),
			Payload: data[8:],
		}
	}

	if len(data) < 8 {
		return Frame{Type: t}
	}
	event := binary.BigEndian.Uint32(data[4:8])

	if len(data) < 12 {
		return Frame{Type: t, Event: event}
	}
	sidLen := int(binary.BigEndian.Uint32(data[8:12]))
	if sidLen < 0 || len(data) < 12+sidLen+4 {
		return Frame{Type: t, Event: event}
	}

	payloadOff := 12 + sidLen + 4
	payloadLen := int(binary.BigEndian.Uint32(data[12+sidLen : payloadOff]))
	if payloadLen < 0 || payloadLen > len(data)-payloadOff {
		payloadLen = len(data) - payloadOff
	}

	return Frame{
		Type:      t,
		Event:     event,
		SessionID: string(data[12 : 12+sidLen]),
		Payload:   data[payloadOff : payloadOff+payloadLen],
	}
}
