package podcast

import (
	"context"
	"fmt"
	"log"
	"time"
)

// State is the protocol session's position in the handshake lifecycle.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateSessionStarting
	StateSessionActive
	StateSessionFinishing
	StateClosed
	StateErrored
)

var stateNames = map[State]string{
	StateDisconnected:     "disconnected",
	StateConnecting:       "connecting",
	StateConnected:        "connected",
	StateSessionStarting:  "session-starting",
	StateSessionActive:    "session-active",
	StateSessionFinishing: "session-finishing",
	StateClosed:           "closed",
	StateErrored:          "errored",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var validNext = map[State][]State{
	StateDisconnected:     {StateConnecting},
	StateConnecting:       {StateConnected},
	StateConnected:        {StateSessionStarting},
	StateSessionStarting:  {StateSessionActive},
	StateSessionActive:    {StateSessionFinishing, StateClosed},
	StateSessionFinishing: {StateClosed},
}

// DefaultWaitTimeout bounds every wait for an expected server event. The
// remote gives no liveness guarantees, so an unbounded wait would hang the
// request forever on a silent peer.
const DefaultWaitTimeout = 30 * time.Second

// Session drives one synthesis conversation over an exclusively owned
// transport: connection handshake, session negotiation, audio collection,
// teardown. It is not safe for concurrent use; each generation request gets
// its own Session.
type Session struct {
	tr          Transport
	id          string
	waitTimeout time.Duration
	state       State
	audio       assembler
}

func NewSession(tr Transport, id string, waitTimeout time.Duration) *Session {
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	return &Session{tr: tr, id: id, waitTimeout: waitTimeout}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State { return s.state }

func (s *Session) transition(to State) error {
	if to == StateErrored {
		s.state = StateErrored
		return nil
	}
	for _, next := range validNext[s.state] {
		if next == to {
			s.state = to
			return nil
		}
	}
	return fmt.Errorf("illegal session transition %s -> %s", s.state, to)
}

// StartConnection performs the connection-level handshake: ConnectionStart
// out, ConnectionStarted back.
func (s *Session) StartConnection(ctx context.Context) error {
	if err := s.transition(StateConnecting); err != nil {
		return err
	}
	if err := s.send(ctx, Frame{Type: MsgTypeFullClientRequest, Event: EventConnectionStart, Payload: []byte("{}")}); err != nil {
		return err
	}
	if _, err := s.waitFor(ctx, MsgTypeFullServerResponse, EventConnectionStarted); err != nil {
		return err
	}
	return s.transition(StateConnected)
}

// StartSession negotiates the synthesis session, carrying the full request
// payload in one StartSession frame.
func (s *Session) StartSession(ctx context.Context, payload []byte) error {
	if err := s.transition(StateSessionStarting); err != nil {
		return err
	}
	if err := s.send(ctx, Frame{Type: MsgTypeFullClientRequest, Event: EventStartSession, SessionID: s.id, Payload: payload}); err != nil {
		return err
	}
	if _, err := s.waitFor(ctx, MsgTypeFullServerResponse, EventSessionStarted); err != nil {
		return err
	}
	return s.transition(StateSessionActive)
}

// FinishSession tells the server no further client data follows. The server
// keeps streaming audio until it signals the end itself.
func (s *Session) FinishSession(ctx context.Context) error {
	if err := s.transition(StateSessionFinishing); err != nil {
		return err
	}
	return s.send(ctx, Frame{Type: MsgTypeFullClientRequest, Event: EventFinishSession, SessionID: s.id, Payload: []byte("{}")})
}

// CollectAudio consumes server events until a terminal one, appending every
// audio-bearing payload in arrival order. Round boundary events are
// informational and never gate the append; usage reports are logged and
// dropped. Returns the complete buffer, or the carried error with any partial
// audio discarded.
func (s *Session) CollectAudio(ctx context.Context) ([]byte, error) {
	for {
		frame, err := s.receive(ctx)
		if err != nil {
			s.transition(StateErrored)
			return nil, &TransportError{Op: "receive", Err: err}
		}

		switch frame.Type {
		case MsgTypeAudioOnlyServer:
			s.audio.append(frame.Payload)

		case MsgTypeError:
			s.transition(StateErrored)
			return nil, &ProtocolError{Code: frame.Event, Message: string(frame.Payload)}

		case MsgTypeFullServerResponse:
			switch frame.Event {
			case EventPodcastEnd, EventSessionFinished:
				if err := s.transition(StateClosed); err != nil {
					return nil, err
				}
				log.Printf("podcast session %s complete: %d audio bytes", s.id, s.audio.size())
				return s.audio.finalize(), nil
			case EventPodcastRoundStart, EventPodcastRoundEnd:
				// Round boundaries only mark which utterance is being
				// synthesized.
			case EventUsageResponse:
				log.Printf("podcast session %s usage: %s", s.id, frame.Payload)
			}
		}
	}
}

// Shutdown gives the connection a best-effort graceful close: FinishConnection
// out, then transport close. It runs on every exit path, including error
// paths, and never overrides the original failure.
func (s *Session) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.tr.Send(ctx, Frame{Type: MsgTypeFullClientRequest, Event: EventFinishConnection, Payload: []byte("{}")}.Marshal()); err != nil {
		log.Printf("podcast session %s: finish connection: %v", s.id, err)
	}
	if err := s.tr.Close(); err != nil {
		log.Printf("podcast session %s: close transport: %v", s.id, err)
	}
	s.state = StateDisconnected
}

func (s *Session) send(ctx context.Context, f Frame) error {
	ctx, cancel := context.WithTimeout(ctx, s.waitTimeout)
	defer cancel()
	if err := s.tr.Send(ctx, f.Marshal()); err != nil {
		s.transition(StateErrored)
		return &TransportError{Op: "send", Err: err}
	}
	return nil
}

func (s *Session) receive(ctx context.Context) (Frame, error) {
	ctx, cancel := context.WithTimeout(ctx, s.waitTimeout)
	defer cancel()
	data, err := s.tr.Receive(ctx)
	if err != nil {
		return Frame{}, err
	}
	return UnmarshalFrame(data), nil
}

// waitFor discards frames until the expected (type, event) pair arrives. An
// error frame aborts the wait immediately with the carried code and message.
func (s *Session) waitFor(ctx context.Context, t MsgType, event uint32) (Frame, error) {
	for {
		frame, err := s.receive(ctx)
		if err != nil {
			s.transition(StateErrored)
			return Frame{}, &TransportError{Op: fmt.Sprintf("wait for event %d", event), Err: err}
		}
		if frame.Type == MsgTypeError {
			s.transition(StateErrored)
			return Frame{}, &ProtocolError{Code: frame.Event, Message: string(frame.Payload)}
		}
		if frame.Type == t && frame.Event == event {
			return frame, nil
		}
	}
}
