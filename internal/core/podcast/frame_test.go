package podcast

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		frame Frame
	}{
		{"event and session", Frame{Type: MsgTypeFullServerResponse, Event: EventSessionStarted, SessionID: "sess-1", Payload: []byte(`{"ok":true}`)}},
		{"audio chunk", Frame{Type: MsgTypeAudioOnlyServer, Event: EventPodcastRoundResponse, SessionID: "sess-1", Payload: []byte{0x01, 0x02, 0x03}}},
		{"empty payload", Frame{Type: MsgTypeFullServerResponse, Event: EventPodcastEnd, SessionID: "sess-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := UnmarshalFrame(tc.frame.Marshal())
			if got.Type != tc.frame.Type || got.Event != tc.frame.Event || got.SessionID != tc.frame.SessionID {
				t.Fatalf("got %+v, want %+v", got, tc.frame)
			}
			if !bytes.Equal(got.Payload, tc.frame.Payload) {
				t.Fatalf("payload %q, want %q", got.Payload, tc.frame.Payload)
			}
		})
	}
}

func TestFrameAbsentFields(t *testing.T) {
	// No event, no session, empty payload: header plus a zero payload length.
	f := Frame{Type: MsgTypeFullClientRequest}
	got := UnmarshalFrame(f.Marshal())
	if got.Type != MsgTypeFullClientRequest || got.Event != 0 || got.SessionID != "" || len(got.Payload) != 0 {
		t.Fatalf("got %+v, want absent event/session and empty payload", got)
	}

	// Event present, session absent, empty payload.
	f = Frame{Type: MsgTypeFullServerResponse, Event: EventConnectionStarted}
	got = UnmarshalFrame(f.Marshal())
	if got.Event != EventConnectionStarted || got.SessionID != "" {
		t.Fatalf("got %+v, want event %d with no session", got, EventConnectionStarted)
	}
}

func TestFrameHeaderLayout(t *testing.T) {
	data := Frame{Type: MsgTypeFullClientRequest, Event: EventStartSession, SessionID: "s", Payload: []byte("{}")}.Marshal()
	if data[0] != 0x11 {
		t.Fatalf("version/header byte = %#x, want 0x11", data[0])
	}
	if data[1] != byte(MsgTypeFullClientRequest)<<4|0x04 {
		t.Fatalf("type byte = %#x, want event flag set", data[1])
	}
	if data[2] != 0x10 {
		t.Fatalf("serialization byte = %#x, want 0x10", data[2])
	}
	if e := binary.BigEndian.Uint32(data[4:8]); e != EventStartSession {
		t.Fatalf("event = %d, want %d", e, EventStartSession)
	}
}

func TestFrameNoEventFlagWhenZero(t *testing.T) {
	data := Frame{Type: MsgTypeFullClientRequest, Payload: []byte("{}")}.Marshal()
	if data[1]&0x04 != 0 {
		t.Fatalf("event flag set on frame without event")
	}
	// Payload length directly follows the header.
	if n := binary.BigEndian.Uint32(data[4:8]); n != 2 {
		t.Fatalf("payload length = %d, want 2", n)
	}
}

func TestTruncatedFrameTolerance(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{0x11},
		{0x11, 0x91, 0x10},
		{0x11, 0x91, 0x10, 0x00},
		{0x11, 0x91, 0x10, 0x00, 0x00, 0x00},
		{0x11, 0x91, 0x10, 0x00, 0x00, 0x00, 0x00},
	} {
		got := UnmarshalFrame(data)
		if got.Event != 0 || len(got.Payload) != 0 {
			t.Fatalf("decode(%v) = %+v, want event 0 and empty payload", data, got)
		}
	}
}

func TestErrorFrameShortCircuit(t *testing.T) {
	data := []byte{0x11, byte(MsgTypeError) << 4, 0xFF, 0xFF}
	data = binary.BigEndian.AppendUint32(data, 500)
	data = append(data, "bad request"...)

	got := UnmarshalFrame(data)
	if got.Type != MsgTypeError {
		t.Fatalf("type = %#x, want error", got.Type)
	}
	if got.Event != 500 {
		t.Fatalf("code = %d, want 500", got.Event)
	}
	if string(got.Payload) != "bad request" {
		t.Fatalf("payload = %q, want %q", got.Payload, "bad request")
	}
}

func TestErrorFrameTruncated(t *testing.T) {
	got := UnmarshalFrame([]byte{0x11, byte(MsgTypeError) << 4, 0x10, 0x00})
	if got.Type != MsgTypeError || got.Event != 0 || len(got.Payload) != 0 {
		t.Fatalf("got %+v, want empty error frame", got)
	}
}
